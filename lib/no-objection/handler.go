package noobjection

import (
	"database/sql"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-recruitment-backend/db"
	applystore "hr-recruitment-backend/lib/applicant/store"
	applyhistorystore "hr-recruitment-backend/lib/apply-history/store"
	jobstore "hr-recruitment-backend/lib/job/store"
	messagetemplatestore "hr-recruitment-backend/lib/message-template/store"
	noobjectionstore "hr-recruitment-backend/lib/no-objection/store"
	recruitmentprocess "hr-recruitment-backend/lib/recruitment/process"
	"hr-recruitment-backend/lib/recruitment/stages"
	stagerecordstore "hr-recruitment-backend/lib/stage-record/store"
	"hr-recruitment-backend/lib/utils/helpers"
	"hr-recruitment-backend/models"
	noobjectionapimodels "hr-recruitment-backend/models/api/noobjection"
	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
	dbmodels "hr-recruitment-backend/models/db"
)

type Provider interface {
	Create(spaceID string, data noobjectionapimodels.NoObjectionData) (string, error)
	Complete(spaceID, id string, data noobjectionapimodels.TemplateData) error
	Verify(spaceID, userID, id string, data noobjectionapimodels.VerifyData) error
	Memorandum(spaceID, id string) (string, error)
	GetByID(spaceID, id string) (*noobjectionapimodels.NoObjectionView, error)
	List(spaceID, jobID string, statuses []models.NoObjectionStatus) ([]noobjectionapimodels.NoObjectionView, error)
}

var Instance Provider

var (
	// ErrAlreadyResolved - Approved/Denied терминальны
	ErrAlreadyResolved = errors.New("согласование уже разрешено, повторное решение невозможно")
	// ErrIncompletePreconditions - по этапу есть незавершенные записи
	ErrIncompletePreconditions = errors.New("по этапу остались незавершенные записи, завершение согласования невозможно")
	ErrAlreadyCompleted        = errors.New("согласование уже передано на подпись")
	ErrNotCompleted            = errors.New("согласование еще не передано на подпись")
	ErrNotResponsible          = errors.New("решение может принять только ответственный за согласование")
)

// Notifier - уведомление ответственного о переданном на подпись согласовании
type Notifier interface {
	NotifyVerifier(gate dbmodels.NoObjection)
}

type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type stores struct {
	gates     noobjectionstore.Provider
	jobs      jobstore.Provider
	applies   applystore.Provider
	history   applyhistorystore.Provider
	records   stagerecordstore.Provider
	templates messagetemplatestore.Provider
}

func newStores(tx *gorm.DB) stores {
	return stores{
		gates:     noobjectionstore.NewInstance(tx),
		jobs:      jobstore.NewInstance(tx),
		applies:   applystore.NewInstance(tx),
		history:   applyhistorystore.NewInstance(tx),
		records:   stagerecordstore.NewInstance(tx),
		templates: messagetemplatestore.NewInstance(tx),
	}
}

func NewHandler(process recruitmentprocess.Provider, notifier Notifier) {
	Instance = &impl{
		tx:       db.DB,
		stores:   newStores,
		main:     newStores(db.DB),
		process:  process,
		notifier: notifier,
	}
}

type impl struct {
	tx       txRunner
	stores   func(tx *gorm.DB) stores
	main     stores
	process  recruitmentprocess.Provider
	notifier Notifier
}

func (i impl) Create(spaceID string, data noobjectionapimodels.NoObjectionData) (string, error) {
	job, err := i.main.jobs.GetByID(spaceID, data.JobID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return "", errors.New("вакансия не найдена")
	}
	if !containsStage(job.Stages, data.Stage) {
		return "", errors.Errorf("этап %v не входит в список этапов вакансии", data.Stage)
	}
	active, err := i.main.gates.IsExistActive(data.JobID, data.Stage)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки согласований")
	}
	if active {
		return "", errors.New("по этапу уже есть активное согласование")
	}
	rec := dbmodels.NoObjection{
		BaseSpaceModel:      dbmodels.BaseSpaceModel{SpaceID: spaceID},
		Title:               data.Title,
		JobID:               data.JobID,
		Stage:               data.Stage,
		Categories:          data.Categories,
		ResponsiblePersonID: data.ResponsiblePerson,
		Status:              models.NoObjectionStatusPending,
	}
	if data.Score != nil {
		rec.Score = *data.Score
	}
	if data.JobApplyID != "" {
		apply, err := i.main.applies.GetByID(spaceID, data.JobApplyID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения отклика")
		}
		if apply == nil {
			return "", errors.New("отклик не найден")
		}
		if apply.JobID != data.JobID {
			return "", errors.New("отклик относится к другой вакансии")
		}
		applyID := data.JobApplyID
		rec.JobApplyID = &applyID
	}
	if data.EmailTemplateID != "" {
		tplID := data.EmailTemplateID
		rec.EmailTemplateID = &tplID
	}
	if data.ReportTemplateID != "" {
		tplID := data.ReportTemplateID
		rec.ReportTemplateID = &tplID
	}
	return i.main.gates.Create(rec)
}

// Complete - HR завершает подготовку: фиксирует текст служебной записки и
// передает согласование на подпись ответственному
func (i impl) Complete(spaceID, id string, data noobjectionapimodels.TemplateData) error {
	gate, err := i.getGate(spaceID, id)
	if err != nil {
		return err
	}
	if gate.Status.IsResolved() {
		return ErrAlreadyResolved
	}
	if gate.Status == models.NoObjectionStatusCompleted {
		return ErrAlreadyCompleted
	}
	if err := i.checkStageFinished(*gate); err != nil {
		return err
	}
	err = i.main.gates.Update(id, map[string]interface{}{
		"modified_template": data.Text,
		"status":            models.NoObjectionStatusCompleted,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка завершения согласования")
	}
	if i.notifier != nil {
		gate.ModifiedTemplate = data.Text
		gate.Status = models.NoObjectionStatusCompleted
		go i.notifier.NotifyVerifier(*gate)
	}
	return nil
}

// Verify - решение ответственного. Approved запускает перевод через процесс
// подбора, Denied по одному отклику отклоняет кандидата с указанием причины
func (i impl) Verify(spaceID, userID, id string, data noobjectionapimodels.VerifyData) error {
	gate, err := i.getGate(spaceID, id)
	if err != nil {
		return err
	}
	if gate.Status.IsResolved() {
		return ErrAlreadyResolved
	}
	if gate.Status != models.NoObjectionStatusCompleted {
		return ErrNotCompleted
	}
	if gate.ResponsiblePersonID != userID {
		return ErrNotResponsible
	}
	if !data.Approved {
		return i.deny(*gate, data.Remarks)
	}
	job, err := i.main.jobs.GetByID(spaceID, gate.JobID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return errors.New("вакансия не найдена")
	}
	variant := recruitmentprocess.NoObjectionPool(gate.Stage)
	if gate.JobApplyID != nil {
		variant = recruitmentprocess.NoObjectionSingle(gate.Stage, *gate.JobApplyID)
	}
	forwardData := recruitmentapimodels.ForwardData{
		Categories: gate.Categories,
	}
	if gate.Score > 0 {
		threshold := gate.Score
		forwardData.Score = &threshold
	}
	// решение сохраняется до перевода, чтобы сбой записи не оставил
	// переведенную пачку за незакрытым согласованием
	err = i.main.gates.Update(id, map[string]interface{}{
		"status":   models.NoObjectionStatusApproved,
		"verified": true,
		"remarks":  data.Remarks,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения решения")
	}
	if err := i.process.Forward(spaceID, *job, variant, forwardData); err != nil {
		revertErr := i.main.gates.Update(id, map[string]interface{}{
			"status": models.NoObjectionStatusCompleted,
		})
		if revertErr != nil {
			log.
				WithError(revertErr).
				WithField("no_objection_id", id).
				Error("failed to revert no-objection decision")
		}
		return err
	}
	log.
		WithField("no_objection_id", id).
		WithField("job_id", gate.JobID).
		Info("no-objection approved")
	return nil
}

func (i impl) deny(gate dbmodels.NoObjection, remarks string) error {
	return i.tx.Transaction(func(tx *gorm.DB) error {
		st := i.stores(tx)
		if gate.JobApplyID != nil {
			applyIDs := []string{*gate.JobApplyID}
			if err := st.applies.UpdateStatus(applyIDs, models.StageRejected, remarks); err != nil {
				return errors.Wrap(err, "ошибка отклонения кандидата")
			}
			if err := st.history.BulkCreate(applyIDs, models.StageRejected, remarks); err != nil {
				return err
			}
		}
		return st.gates.Update(gate.ID, map[string]interface{}{
			"status":  models.NoObjectionStatusDenied,
			"remarks": remarks,
		})
	})
}

// Memorandum - текст служебной записки: скорректированный HR вариант либо
// шаблон отчета, заполненный статистикой воронки
func (i impl) Memorandum(spaceID, id string) (string, error) {
	gate, err := i.getGate(spaceID, id)
	if err != nil {
		return "", err
	}
	text := gate.ModifiedTemplate
	if text == "" {
		if gate.ReportTemplateID == nil {
			return "", errors.New("шаблон служебной записки не настроен")
		}
		tpl, err := i.main.templates.GetByID(spaceID, *gate.ReportTemplateID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения шаблона")
		}
		if tpl == nil {
			return "", errors.New("шаблон служебной записки не найден")
		}
		text = tpl.Message
	}
	job, err := i.main.jobs.GetByID(spaceID, gate.JobID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return "", errors.New("вакансия не найдена")
	}
	list, err := i.main.applies.List(spaceID, gate.JobID, dbmodels.ApplyListFilter{})
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения откликов")
	}
	total := len(list)
	rejected := 0
	duplicates := 0
	shortlisted := 0
	for _, apply := range list {
		if apply.Status == models.StageRejected {
			rejected++
		}
		if apply.Params.Duplicate {
			duplicates++
		}
		if apply.Status == models.StageShortlisted {
			shortlisted++
		}
	}
	values := map[string]string{
		"job_title":        job.Title,
		"stage":            stages.DisplayName(gate.Stage),
		"total_applicants": helpers.FormatCount(total),
		"rejected":         helpers.FormatCount(rejected),
		"duplicates":       helpers.FormatCount(duplicates),
		"shortlisted":      helpers.FormatCount(shortlisted),
		"written_score":    helpers.FormatScore(job.HiringInfo.WrittenScore),
		"interview_score":  helpers.FormatScore(job.HiringInfo.InterviewScore),
	}
	if gate.JobApply != nil {
		values["candidate"] = gate.JobApply.GetFIO()
	}
	return helpers.ReplacePlaceholders(text, values), nil
}

func (i impl) GetByID(spaceID, id string) (*noobjectionapimodels.NoObjectionView, error) {
	gate, err := i.main.gates.GetByID(spaceID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения согласования")
	}
	if gate == nil {
		return nil, nil
	}
	view := noobjectionapimodels.NoObjectionConvert(*gate, stages.DisplayName(gate.Stage))
	return &view, nil
}

func (i impl) List(spaceID, jobID string, statuses []models.NoObjectionStatus) ([]noobjectionapimodels.NoObjectionView, error) {
	list, err := i.main.gates.List(spaceID, jobID, statuses)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения согласований")
	}
	views := make([]noobjectionapimodels.NoObjectionView, 0, len(list))
	for _, gate := range list {
		views = append(views, noobjectionapimodels.NoObjectionConvert(gate, stages.DisplayName(gate.Stage)))
	}
	return views, nil
}

func (i impl) getGate(spaceID, id string) (*dbmodels.NoObjection, error) {
	gate, err := i.main.gates.GetByID(spaceID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения согласования")
	}
	if gate == nil {
		return nil, errors.New("согласование не найдено")
	}
	return gate, nil
}

// checkStageFinished - все записи этапа должны быть завершены до передачи на
// подпись; для единичного согласования проверяется только запись кандидата
func (i impl) checkStageFinished(gate dbmodels.NoObjection) error {
	kind := stages.RecordKind(gate.Stage)
	if kind == models.KindNone {
		return nil
	}
	if gate.JobApplyID != nil {
		recs, err := i.main.records.ListByApplies([]string{*gate.JobApplyID}, kind)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки записей этапа")
		}
		for _, rec := range recs {
			if rec.Status != models.RecordStatusCompleted {
				return ErrIncompletePreconditions
			}
		}
		return nil
	}
	count, err := i.main.records.CountUnfinished(gate.JobID, kind)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки записей этапа")
	}
	if count > 0 {
		return ErrIncompletePreconditions
	}
	return nil
}

func containsStage(list []models.StageKey, v models.StageKey) bool {
	for _, stage := range list {
		if stage == v {
			return true
		}
	}
	return false
}
