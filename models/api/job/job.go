package jobapimodels

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
)

type JobData struct {
	Title      string              `json:"title"`
	Stages     []models.StageKey   `json:"stages"`
	HiringInfo dbmodels.HiringInfo `json:"hiring_info"`
}

func (d JobData) Validate() error {
	if d.Title == "" {
		return errors.New("не указано название вакансии")
	}
	job := dbmodels.Job{
		Stages:     d.Stages,
		HiringInfo: d.HiringInfo,
	}
	return job.ValidateStages()
}

type JobView struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Status     models.JobStatus    `json:"status"`
	Stages     []models.StageKey   `json:"stages"`
	HiringInfo dbmodels.HiringInfo `json:"hiring_info"`
	StageNames []StageNameView     `json:"stage_names"`
}

type StageNameView struct {
	Key         models.StageKey `json:"key"`
	DisplayName string          `json:"display_name"`
}

func JobConvert(rec dbmodels.Job, names []StageNameView) JobView {
	return JobView{
		ID:         rec.ID,
		Title:      rec.Title,
		Status:     rec.Status,
		Stages:     rec.Stages,
		HiringInfo: rec.HiringInfo,
		StageNames: names,
	}
}
