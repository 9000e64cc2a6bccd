package recruitmentapimodels

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
)

// ForwardData - критерии перевода пачки откликов на следующий этап.
// Все поля опциональны: пустые категории - без фильтра по категориям,
// отсутствие score - без порога баллов.
type ForwardData struct {
	Categories        []string `json:"categories"`
	Score             *float64 `json:"score"`
	ResponsiblePerson string   `json:"responsible_person"` // ид проверяющего на следующем этапе
	QuestionSet       string   `json:"question_set"`       // ид набора вопросов следующего этапа
}

func (d ForwardData) Validate() error {
	if d.Score != nil && (*d.Score < 0 || *d.Score > 100) {
		return errors.New("порог баллов должен быть в диапазоне 0-100")
	}
	return nil
}

// StageRecordView - рабочая запись этапа в списочных ручках
type StageRecordView struct {
	ID            string              `json:"id"`
	JobApplyID    string              `json:"job_apply_id"`
	CandidateName string              `json:"candidate_name"`
	CandidateEmail string             `json:"candidate_email"`
	Kind          models.RecordKind   `json:"kind"`
	Score         *float64            `json:"score,omitempty"`
	Category      string              `json:"category,omitempty"`
	Status        models.RecordStatus `json:"status"`
	Verified      bool                `json:"verified"`
	ApplyStatus   models.StageKey     `json:"apply_status"`
}

func StageRecordConvert(rec dbmodels.StageRecord) StageRecordView {
	view := StageRecordView{
		ID:         rec.ID,
		JobApplyID: rec.JobApplyID,
		Kind:       rec.Kind,
		Score:      rec.Score,
		Category:   rec.Category,
		Status:     rec.Status,
		Verified:   rec.Verified,
	}
	if rec.JobApply != nil {
		view.CandidateName = rec.JobApply.GetFIO()
		view.CandidateEmail = rec.JobApply.Email
		view.ApplyStatus = rec.JobApply.Status
	}
	return view
}

// StageRecordData - данные оценки кандидата на этапе
type StageRecordData struct {
	Score    *float64            `json:"score"`
	Category string              `json:"category"`
	Status   models.RecordStatus `json:"status"`
	Verified *bool               `json:"verified"`
	Notes    string              `json:"notes"`
}

func (d StageRecordData) Validate() error {
	if d.Score != nil && (*d.Score < 0 || *d.Score > 100) {
		return errors.New("балл должен быть в диапазоне 0-100")
	}
	if d.Status != "" &&
		d.Status != models.RecordStatusPending &&
		d.Status != models.RecordStatusProgress &&
		d.Status != models.RecordStatusCompleted {
		return errors.New("неизвестный статус записи этапа")
	}
	return nil
}
