package noobjectionapimodels

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
)

type NoObjectionData struct {
	Title             string          `json:"title"`
	JobID             string          `json:"job_id"`
	JobApplyID        string          `json:"job_apply_id,omitempty"`
	Stage             models.StageKey `json:"stage"`
	Score             *float64        `json:"score,omitempty"`
	Categories        []string        `json:"categories,omitempty"`
	EmailTemplateID   string          `json:"email_template_id,omitempty"`
	ReportTemplateID  string          `json:"report_template_id,omitempty"`
	ResponsiblePerson string          `json:"responsible_person"`
}

func (d NoObjectionData) Validate() error {
	if d.Title == "" {
		return errors.New("не указано название согласования")
	}
	if d.JobID == "" {
		return errors.New("не указана вакансия")
	}
	if !models.IsKnownStage(d.Stage) {
		return errors.New("указан неизвестный этап")
	}
	if d.ResponsiblePerson == "" {
		return errors.New("не указан ответственный за согласование")
	}
	if d.Score != nil && (*d.Score < 0 || *d.Score > 100) {
		return errors.New("проходной балл должен быть в диапазоне от 0 до 100")
	}
	return nil
}

type TemplateData struct {
	Text string `json:"text"`
}

func (d TemplateData) Validate() error {
	if d.Text == "" {
		return errors.New("текст служебной записки не может быть пустым")
	}
	return nil
}

type VerifyData struct {
	Approved bool   `json:"approved"`
	Remarks  string `json:"remarks,omitempty"`
}

func (d VerifyData) Validate() error {
	if !d.Approved && d.Remarks == "" {
		return errors.New("при отказе необходимо указать причину")
	}
	return nil
}

type ListFilter struct {
	JobID    string                     `json:"job_id"`
	Statuses []models.NoObjectionStatus `json:"statuses"`
}

type NoObjectionView struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	JobID             string                    `json:"job_id"`
	JobTitle          string                    `json:"job_title,omitempty"`
	JobApplyID        string                    `json:"job_apply_id,omitempty"`
	ApplicantFIO      string                    `json:"applicant_fio,omitempty"`
	Stage             models.StageKey           `json:"stage"`
	StageName         string                    `json:"stage_name"`
	Score             float64                   `json:"score"`
	Categories        []string                  `json:"categories,omitempty"`
	Status            models.NoObjectionStatus  `json:"status"`
	Verified          bool                      `json:"verified"`
	ResponsiblePerson string                    `json:"responsible_person"`
	Remarks           string                    `json:"remarks,omitempty"`
	ModifiedTemplate  string                    `json:"modified_template,omitempty"`
}

func NoObjectionConvert(rec dbmodels.NoObjection, stageName string) NoObjectionView {
	view := NoObjectionView{
		ID:                rec.ID,
		Title:             rec.Title,
		JobID:             rec.JobID,
		Stage:             rec.Stage,
		StageName:         stageName,
		Score:             rec.Score,
		Categories:        rec.Categories,
		Status:            rec.Status,
		Verified:          rec.Verified,
		ResponsiblePerson: rec.ResponsiblePersonID,
		Remarks:           rec.Remarks,
		ModifiedTemplate:  rec.ModifiedTemplate,
	}
	if rec.Job != nil {
		view.JobTitle = rec.Job.Title
	}
	if rec.JobApplyID != nil {
		view.JobApplyID = *rec.JobApplyID
	}
	if rec.JobApply != nil {
		view.ApplicantFIO = rec.JobApply.GetFIO()
	}
	return view
}
