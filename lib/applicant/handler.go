package applicant

import (
	"context"
	"path"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-recruitment-backend/db"
	applystore "hr-recruitment-backend/lib/applicant/store"
	applyhistorystore "hr-recruitment-backend/lib/apply-history/store"
	filestorage "hr-recruitment-backend/lib/file-storage"
	jobstore "hr-recruitment-backend/lib/job/store"
	"hr-recruitment-backend/lib/notification"
	"hr-recruitment-backend/models"
	applicantapimodels "hr-recruitment-backend/models/api/applicant"
	dbmodels "hr-recruitment-backend/models/db"
)

type Provider interface {
	Apply(spaceID, jobID string, data applicantapimodels.ApplyData) (string, error)
	GetByID(spaceID, id string) (*applicantapimodels.ApplyView, error)
	List(spaceID, jobID string, filter dbmodels.ApplyListFilter) ([]applicantapimodels.ApplyView, error)
	SetFlags(spaceID, id string, flags applicantapimodels.ApplyFlags) error
	UploadResume(ctx context.Context, spaceID, id string, body []byte, fileName string) error
	GetResume(ctx context.Context, spaceID, id string) (fileName string, body []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		applies: applystore.NewInstance(db.DB),
		history: applyhistorystore.NewInstance(db.DB),
		jobs:    jobstore.NewInstance(db.DB),
	}
}

type impl struct {
	applies applystore.Provider
	history applyhistorystore.Provider
	jobs    jobstore.Provider
}

// Apply - прием отклика: статус applied, первая строка аудита, пометка
// дубликата по email в рамках вакансии, подтверждение кандидату после записи
func (i impl) Apply(spaceID, jobID string, data applicantapimodels.ApplyData) (string, error) {
	job, err := i.jobs.GetByID(spaceID, jobID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return "", errors.New("вакансия не найдена")
	}
	duplicate, err := i.applies.IsExistByEmail(spaceID, jobID, data.Email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки дубликатов")
	}
	rec := dbmodels.JobApply{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		JobID:          jobID,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		MiddleName:     data.MiddleName,
		Phone:          data.Phone,
		Email:          data.Email,
		Status:         models.StageApplied,
		Params:         dbmodels.ApplyParams{Duplicate: duplicate},
	}
	id, err := i.applies.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения отклика")
	}
	if err := i.history.BulkCreate([]string{id}, models.StageApplied, ""); err != nil {
		return "", err
	}
	log.
		WithField("job_id", jobID).
		WithField("apply_id", id).
		Info("job apply received")
	if notification.Instance != nil {
		rec.ID = id
		go notification.Instance.SendApplyConfirmation(rec, *job)
	}
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (*applicantapimodels.ApplyView, error) {
	rec, err := i.applies.GetByID(spaceID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return nil, nil
	}
	view := applicantapimodels.ApplyConvert(*rec)
	rows, err := i.history.List(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории отклика")
	}
	for _, row := range rows {
		view.History = append(view.History, applicantapimodels.ApplyStageConvert(row))
	}
	return &view, nil
}

func (i impl) List(spaceID, jobID string, filter dbmodels.ApplyListFilter) ([]applicantapimodels.ApplyView, error) {
	list, err := i.applies.List(spaceID, jobID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения откликов")
	}
	views := make([]applicantapimodels.ApplyView, 0, len(list))
	for _, rec := range list {
		views = append(views, applicantapimodels.ApplyConvert(rec))
	}
	return views, nil
}

// SetFlags - ручное управление флагами rostered/duplicate
func (i impl) SetFlags(spaceID, id string, flags applicantapimodels.ApplyFlags) error {
	rec, err := i.applies.GetByID(spaceID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return errors.New("отклик не найден")
	}
	params := rec.Params
	if flags.Rostered != nil {
		params.Rostered = *flags.Rostered
	}
	if flags.Duplicate != nil {
		params.Duplicate = *flags.Duplicate
	}
	return i.applies.Update(id, map[string]interface{}{"params": params})
}

func (i impl) UploadResume(ctx context.Context, spaceID, id string, body []byte, fileName string) error {
	rec, err := i.applies.GetByID(spaceID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return errors.New("отклик не найден")
	}
	path, err := filestorage.Instance.UploadResume(ctx, spaceID, id, body, fileName)
	if err != nil {
		return err
	}
	return i.applies.Update(id, map[string]interface{}{"resume_path": path})
}

func (i impl) GetResume(ctx context.Context, spaceID, id string) (string, []byte, error) {
	rec, err := i.applies.GetByID(spaceID, id)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return "", nil, errors.New("отклик не найден")
	}
	if rec.ResumePath == "" {
		return "", nil, errors.New("резюме не загружено")
	}
	body, err := filestorage.Instance.GetFile(ctx, rec.ResumePath)
	if err != nil {
		return "", nil, err
	}
	return path.Base(rec.ResumePath), body, nil
}
