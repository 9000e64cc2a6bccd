package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

type QuestionSet struct {
	BaseSpaceModel
	Title     string    `gorm:"type:varchar(255)"`
	Questions Questions `gorm:"type:jsonb"`
}

type Questions []Question

type Question struct {
	Order    int    `json:"order"`
	Text     string `json:"text"`
	MaxScore int    `json:"max_score"`
}

func (j Questions) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *Questions) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
