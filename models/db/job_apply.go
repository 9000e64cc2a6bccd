package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"hr-recruitment-backend/models"
)

type JobApply struct {
	BaseSpaceModel
	JobID      string `gorm:"type:varchar(36);index"`
	Job        *Job   `gorm:"foreignKey:JobID"`
	FirstName  string `gorm:"type:varchar(255)"`
	LastName   string `gorm:"type:varchar(255)"`
	MiddleName string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(255)"`
	Email      string `gorm:"type:varchar(255);index"`
	Status     models.StageKey `gorm:"type:varchar(50);index"`
	Remarks    string
	Params     ApplyParams `gorm:"type:jsonb"`
	ResumePath string      `gorm:"type:varchar(512)"`
}

func (a JobApply) GetFIO() string {
	return fmt.Sprintf("%v %v %v", a.LastName, a.FirstName, a.MiddleName)
}

// ApplyParams - служебные флаги отклика
type ApplyParams struct {
	Duplicate             bool `json:"duplicate"`              // Отмечен как дубликат
	Rostered              bool `json:"rostered"`               // Отложен до ручного решения, не участвует в автопереводе
	ConfirmationEmailSent bool `json:"confirmation_email_sent"` // Отправлено письмо-подтверждение
}

func (j ApplyParams) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ApplyParams) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// JobApplyStage - неизменяемая запись аудита смены статуса отклика
type JobApplyStage struct {
	BaseModel
	JobApplyID string          `gorm:"type:varchar(36);index"`
	Status     models.StageKey `gorm:"type:varchar(50)"`
	Remarks    string
}
