package applicantapimodels

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
)

type ApplyData struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func (d ApplyData) Validate() error {
	if d.LastName == "" || d.FirstName == "" {
		return errors.New("не указаны фамилия и имя кандидата")
	}
	if d.Email == "" {
		return errors.New("не указан email кандидата")
	}
	return nil
}

type ApplyView struct {
	ID        string               `json:"id"`
	JobID     string               `json:"job_id"`
	FIO       string               `json:"fio"`
	Phone     string               `json:"phone"`
	Email     string               `json:"email"`
	Status    models.StageKey      `json:"status"`
	Remarks   string               `json:"remarks,omitempty"`
	Duplicate bool                 `json:"duplicate"`
	Rostered  bool                 `json:"rostered"`
	History   []ApplyStageView     `json:"history,omitempty"`
}

type ApplyStageView struct {
	Status    models.StageKey `json:"status"`
	Remarks   string          `json:"remarks,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func ApplyConvert(rec dbmodels.JobApply) ApplyView {
	return ApplyView{
		ID:        rec.ID,
		JobID:     rec.JobID,
		FIO:       rec.GetFIO(),
		Phone:     rec.Phone,
		Email:     rec.Email,
		Status:    rec.Status,
		Remarks:   rec.Remarks,
		Duplicate: rec.Params.Duplicate,
		Rostered:  rec.Params.Rostered,
	}
}

func ApplyStageConvert(rec dbmodels.JobApplyStage) ApplyStageView {
	return ApplyStageView{
		Status:    rec.Status,
		Remarks:   rec.Remarks,
		CreatedAt: rec.CreatedAt.Format("02.01.2006 15:04:05"),
	}
}

// ApplyFlags - ручное управление служебными флагами отклика
type ApplyFlags struct {
	Rostered  *bool `json:"rostered"`
	Duplicate *bool `json:"duplicate"`
}
