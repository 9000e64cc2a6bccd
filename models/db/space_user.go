package dbmodels

import (
	"fmt"
	"hr-recruitment-backend/models"
)

type Space struct {
	BaseModel
	OrganizationName string `gorm:"type:varchar(255)"`
	DirectorName     string `gorm:"type:varchar(255)"`
	IsActive         bool
}

type SpaceUser struct {
	BaseSpaceModel
	FirstName    string `gorm:"type:varchar(255)"`
	LastName     string `gorm:"type:varchar(255)"`
	MiddleName   string `gorm:"type:varchar(255)"`
	Email        string `gorm:"type:varchar(255);index"`
	PasswordHash string `gorm:"type:varchar(255)"`
	Role         models.UserRole `gorm:"type:varchar(50)"`
	IsActive     bool
}

func (u SpaceUser) GetFullName() string {
	return fmt.Sprintf("%v %v %v", u.LastName, u.FirstName, u.MiddleName)
}
