package stagerecord

import (
	"github.com/pkg/errors"

	"hr-recruitment-backend/db"
	jobstore "hr-recruitment-backend/lib/job/store"
	"hr-recruitment-backend/lib/recruitment/stages"
	stagerecordstore "hr-recruitment-backend/lib/stage-record/store"
	"hr-recruitment-backend/models"
	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
)

// StageListMode - разрез списочной ручки этапа
type StageListMode string

const (
	// StageListPending - кандидаты, еще не переведенные на следующий этап
	StageListPending StageListMode = "Pending"
	// StageListForwarded - кандидаты, уже ушедшие дальше
	StageListForwarded StageListMode = "Forwarded"
)

type Provider interface {
	ListByStage(spaceID, jobID string, stage models.StageKey, mode StageListMode) ([]recruitmentapimodels.StageRecordView, error)
	UpdateRecord(spaceID, id string, data recruitmentapimodels.StageRecordData) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		records: stagerecordstore.NewInstance(db.DB),
		jobs:    jobstore.NewInstance(db.DB),
	}
}

type impl struct {
	records stagerecordstore.Provider
	jobs    jobstore.Provider
}

// ListByStage - рабочие записи этапа с разбиением pending/forwarded по
// наличию записи следующего этапа
func (i impl) ListByStage(spaceID, jobID string, stage models.StageKey, mode StageListMode) ([]recruitmentapimodels.StageRecordView, error) {
	kind := stages.RecordKind(stage)
	if kind == models.KindNone {
		return nil, errors.Errorf("у этапа %v нет рабочих записей", stage)
	}
	job, err := i.jobs.GetByID(spaceID, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return nil, errors.New("вакансия не найдена")
	}
	filter, err := stages.Partition(*job, stage, mode != StageListForwarded)
	if err != nil {
		return nil, err
	}
	list, err := i.records.ListForJob(spaceID, kind, filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения записей этапа")
	}
	views := make([]recruitmentapimodels.StageRecordView, 0, len(list))
	for _, rec := range list {
		views = append(views, recruitmentapimodels.StageRecordConvert(rec))
	}
	return views, nil
}

// UpdateRecord - оценка кандидата на этапе: балл, категория, статус, отметка
// подтверждения, заметки
func (i impl) UpdateRecord(spaceID, id string, data recruitmentapimodels.StageRecordData) error {
	rec, err := i.records.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения записи этапа")
	}
	if rec == nil {
		return errors.New("запись этапа не найдена")
	}
	if rec.JobApply == nil || rec.JobApply.SpaceID != spaceID {
		return errors.New("запись этапа не найдена")
	}
	updMap := map[string]interface{}{}
	if data.Score != nil {
		updMap["score"] = *data.Score
	}
	if data.Category != "" {
		updMap["category"] = data.Category
	}
	if data.Status != "" {
		updMap["status"] = data.Status
	}
	if data.Verified != nil {
		updMap["verified"] = *data.Verified
	}
	if data.Notes != "" {
		recData := rec.Data
		recData.Notes = data.Notes
		updMap["data"] = recData
	}
	return i.records.Update(id, updMap)
}
