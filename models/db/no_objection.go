package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"hr-recruitment-backend/models"
)

// NoObjection - ручной гейт согласования: либо по одному отклику, либо по всему
// пулу вакансии на указанном этапе
type NoObjection struct {
	BaseSpaceModel
	Title               string  `gorm:"type:varchar(100)"`
	JobID               string  `gorm:"type:varchar(36);index"`
	Job                 *Job    `gorm:"foreignKey:JobID"`
	JobApplyID          *string `gorm:"type:varchar(36)"` // заполнен только в режиме одного кандидата
	JobApply            *JobApply `gorm:"foreignKey:JobApplyID"`
	Stage               models.StageKey `gorm:"type:varchar(50);index"`
	Score               float64
	Categories          StringList `gorm:"type:jsonb"`
	EmailTemplateID     *string    `gorm:"type:varchar(36)"`
	ReportTemplateID    *string    `gorm:"type:varchar(36)"`
	ModifiedTemplate    string     // шаблон, скорректированный HR
	Status              models.NoObjectionStatus `gorm:"type:varchar(15);index"`
	Verified            bool
	ResponsiblePersonID string     `gorm:"type:varchar(36)"`
	ResponsiblePerson   *SpaceUser `gorm:"foreignKey:ResponsiblePersonID"`
	Remarks             string     `gorm:"type:varchar(200)"`
}

type StringList []string

func (j StringList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StringList) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
