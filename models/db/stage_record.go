package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"hr-recruitment-backend/models"
)

// StageRecord - рабочая запись этапа: оценка кандидата на конкретном шаге.
// Наличие записи вида kind у отклика означает "кандидат дошел до этапа kind".
// Уникальный индекс (job_apply_id, kind) - страховка от двойного перевода.
type StageRecord struct {
	BaseModel
	JobApplyID          string            `gorm:"type:varchar(36);index;uniqueIndex:uq_stage_records_apply_kind"`
	JobApply            *JobApply         `gorm:"foreignKey:JobApplyID"`
	Kind                models.RecordKind `gorm:"type:varchar(50);uniqueIndex:uq_stage_records_apply_kind"`
	Score               *float64
	Category            string              `gorm:"type:varchar(50)"`
	Status              models.RecordStatus `gorm:"type:varchar(50)"`
	Verified            bool
	ResponsiblePersonID *string    `gorm:"type:varchar(36)"`
	ResponsiblePerson   *SpaceUser `gorm:"foreignKey:ResponsiblePersonID"`
	QuestionSetID       *string    `gorm:"type:varchar(36)"`
	EmailTemplateID     *string    `gorm:"type:varchar(36)"`
	Data                RecordData `gorm:"type:jsonb"`
}

// RecordData - ответы кандидата и прочие данные оценки
type RecordData struct {
	Answers map[string]string `json:"answers"`
	Notes   string            `json:"notes"`
}

func (j RecordData) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *RecordData) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
