package job

import (
	"github.com/pkg/errors"

	"hr-recruitment-backend/db"
	applystore "hr-recruitment-backend/lib/applicant/store"
	jobstore "hr-recruitment-backend/lib/job/store"
	"hr-recruitment-backend/lib/recruitment/stages"
	"hr-recruitment-backend/models"
	jobapimodels "hr-recruitment-backend/models/api/job"
	dbmodels "hr-recruitment-backend/models/db"
)

type Provider interface {
	Create(spaceID, authorID string, data jobapimodels.JobData) (string, error)
	Update(spaceID, id string, data jobapimodels.JobData) error
	GetByID(spaceID, id string) (*jobapimodels.JobView, error)
	List(spaceID string) ([]jobapimodels.JobView, error)
}

var Instance Provider

// ErrStagesLocked - список этапов заморожен после продвижения первых откликов
var ErrStagesLocked = errors.New("список этапов нельзя менять: по вакансии уже есть продвинутые отклики")

func NewHandler() {
	Instance = &impl{
		jobs:    jobstore.NewInstance(db.DB),
		applies: applystore.NewInstance(db.DB),
	}
}

type impl struct {
	jobs    jobstore.Provider
	applies applystore.Provider
}

func (i impl) Create(spaceID, authorID string, data jobapimodels.JobData) (string, error) {
	rec := dbmodels.Job{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		Title:          data.Title,
		AuthorID:       authorID,
		Status:         models.JobStatusDraft,
		Stages:         dbmodels.StageList(data.Stages),
		HiringInfo:     data.HiringInfo,
	}
	if err := rec.ValidateStages(); err != nil {
		return "", err
	}
	return i.jobs.Create(rec)
}

func (i impl) Update(spaceID, id string, data jobapimodels.JobData) error {
	rec, err := i.jobs.GetByID(spaceID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return errors.New("вакансия не найдена")
	}
	updMap := map[string]interface{}{
		"title":       data.Title,
		"hiring_info": data.HiringInfo,
	}
	newStages := dbmodels.StageList(data.Stages)
	if !sameStages(rec.Stages, newStages) {
		check := *rec
		check.Stages = newStages
		if err := check.ValidateStages(); err != nil {
			return err
		}
		advanced, err := i.applies.CountAdvanced(id)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки откликов")
		}
		if advanced > 0 {
			return ErrStagesLocked
		}
		updMap["stages"] = newStages
	}
	return i.jobs.Update(spaceID, id, updMap)
}

func (i impl) GetByID(spaceID, id string) (*jobapimodels.JobView, error) {
	rec, err := i.jobs.GetByID(spaceID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return nil, nil
	}
	view := jobapimodels.JobConvert(*rec, stageNames(rec.Stages))
	return &view, nil
}

func (i impl) List(spaceID string) ([]jobapimodels.JobView, error) {
	list, err := i.jobs.List(spaceID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансий")
	}
	views := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		views = append(views, jobapimodels.JobConvert(rec, stageNames(rec.Stages)))
	}
	return views, nil
}

func stageNames(list dbmodels.StageList) []jobapimodels.StageNameView {
	names := make([]jobapimodels.StageNameView, 0, len(list))
	for _, stage := range list {
		names = append(names, jobapimodels.StageNameView{
			Key:         stage,
			DisplayName: stages.DisplayName(stage),
		})
	}
	return names
}

func sameStages(a dbmodels.StageList, b dbmodels.StageList) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
