package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"hr-recruitment-backend/models"

	"github.com/pkg/errors"
)

type Job struct {
	BaseSpaceModel
	Title     string `gorm:"type:varchar(255)"`
	AuthorID  string
	Author    *SpaceUser       `gorm:"foreignKey:AuthorID"`
	Status    models.JobStatus `gorm:"type:varchar(50)"`
	Stages    StageList        `gorm:"type:jsonb"`
	HiringInfo HiringInfo      `gorm:"type:jsonb"`
}

// StageList - упорядоченный список включенных этапов вакансии
type StageList []models.StageKey

func (j StageList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StageList) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// HiringInfo - конфигурация найма вакансии: набор вопросов и шаблон письма
// кандидату на каждый опциональный этап, допустимые категории и пороги баллов
type HiringInfo struct {
	Categories     []string          `json:"categories"`
	Letters        map[string]string `json:"letters"`       // слот этапа -> ид шаблона письма
	QuestionSets   map[string]string `json:"question_sets"` // этап -> ид набора вопросов
	WrittenScore   float64           `json:"written_score"`
	InterviewScore float64           `json:"interview_score"`
}

func (j HiringInfo) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *HiringInfo) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// LetterTemplateID - ид шаблона письма для слота, пусто если не настроен
func (j Job) LetterTemplateID(slot string) string {
	if slot == "" || j.HiringInfo.Letters == nil {
		return ""
	}
	return j.HiringInfo.Letters[slot]
}

// ValidateStages - обязательны applied, selected, rejected и хотя бы один
// промежуточный этап; все этапы должны быть известны и без повторов
func (j Job) ValidateStages() error {
	required := map[models.StageKey]bool{
		models.StageApplied:  false,
		models.StageSelected: false,
		models.StageRejected: false,
	}
	seen := map[models.StageKey]bool{}
	intermediate := 0
	for _, stage := range j.Stages {
		if !models.IsKnownStage(stage) {
			return errors.Errorf("неизвестный этап: %v", stage)
		}
		if seen[stage] {
			return errors.Errorf("этап указан повторно: %v", stage)
		}
		seen[stage] = true
		if _, ok := required[stage]; ok {
			required[stage] = true
			continue
		}
		intermediate++
	}
	for stage, found := range required {
		if !found {
			return errors.Errorf("в списке этапов отсутствует обязательный этап: %v", stage)
		}
	}
	if intermediate == 0 {
		return errors.New("в списке этапов должен быть хотя бы один промежуточный этап")
	}
	return nil
}
