package recruitmentprocess

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-recruitment-backend/db"
	applystore "hr-recruitment-backend/lib/applicant/store"
	applyhistorystore "hr-recruitment-backend/lib/apply-history/store"
	jobstore "hr-recruitment-backend/lib/job/store"
	"hr-recruitment-backend/lib/metrics"
	"hr-recruitment-backend/lib/recruitment/stages"
	stagerecordstore "hr-recruitment-backend/lib/stage-record/store"
	"hr-recruitment-backend/models"
	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
	dbmodels "hr-recruitment-backend/models/db"
)

type Provider interface {
	Forward(spaceID string, job dbmodels.Job, variant Variant, data recruitmentapimodels.ForwardData) error
	ForwardStage(spaceID, jobID string, stage models.StageKey, data recruitmentapimodels.ForwardData) error
}

var Instance Provider

var (
	// ErrStageUnfinished - на этапе остались записи не в статусе Completed
	ErrStageUnfinished = errors.New("на этапе есть незавершенные записи, перевод невозможен")
	// ErrTerminalStage - перевод с финального этапа невозможен
	ErrTerminalStage = errors.New("кандидат уже на финальном этапе")
)

// Notifier - отправка писем кандидатам после фиксации перевода
type Notifier interface {
	NotifyStage(job dbmodels.Job, applyIDs []string, stage models.StageKey)
}

type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type stores struct {
	applies applystore.Provider
	history applyhistorystore.Provider
	records stagerecordstore.Provider
}

func newStores(tx *gorm.DB) stores {
	return stores{
		applies: applystore.NewInstance(tx),
		history: applyhistorystore.NewInstance(tx),
		records: stagerecordstore.NewInstance(tx),
	}
}

func NewHandler(notifier Notifier) {
	Instance = &impl{
		tx:       db.DB,
		stores:   newStores,
		main:     newStores(db.DB),
		jobs:     jobstore.NewInstance(db.DB),
		notifier: notifier,
	}
}

type impl struct {
	tx       txRunner
	stores   func(tx *gorm.DB) stores
	main     stores
	jobs     jobstore.Provider
	notifier Notifier
}

// ForwardStage - перевод по ид вакансии: вариант подбирается по этапу
func (i impl) ForwardStage(spaceID, jobID string, stage models.StageKey, data recruitmentapimodels.ForwardData) error {
	job, err := i.jobs.GetByID(spaceID, jobID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return errors.New("вакансия не найдена")
	}
	return i.Forward(spaceID, *job, variantFor(stage), data)
}

// Forward - перевод откликов вакансии с этапа variant.Stage на следующий:
// отбор, системные отклонения, завершение текущих записей, создание записей
// следующего этапа и смена статусов - в одной транзакции. Письма уходят
// строго после коммита.
func (i impl) Forward(spaceID string, job dbmodels.Job, variant Variant, data recruitmentapimodels.ForwardData) error {
	if variant.Stage.IsTerminal() {
		return ErrTerminalStage
	}
	next, err := stages.Next(job.Stages, variant.Stage)
	if err != nil {
		return err
	}
	if next == stages.NoNextStage {
		return nil
	}
	currentKind := stages.RecordKind(variant.Stage)
	if variant.RequireFinished && currentKind != models.KindNone {
		count, err := i.main.records.CountUnfinished(job.ID, currentKind)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки записей этапа")
		}
		if count > 0 {
			return ErrStageUnfinished
		}
	}
	defer func(start time.Time) {
		metrics.ForwardDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	forwarded := []string{}
	rejected := 0
	err = i.tx.Transaction(func(tx *gorm.DB) error {
		st := i.stores(tx)
		eligible, stragglers, err := i.selectApplies(st, spaceID, job, variant, next, data)
		if err != nil {
			return err
		}
		if len(stragglers) != 0 {
			if err := st.applies.UpdateStatus(stragglers, models.StageRejected, models.SystemRejectRemarks); err != nil {
				return errors.Wrap(err, "ошибка отклонения кандидатов")
			}
			if err := st.history.BulkCreate(stragglers, models.StageRejected, models.SystemRejectRemarks); err != nil {
				return err
			}
			rejected = len(stragglers)
		}
		if len(eligible) == 0 {
			return nil
		}
		if currentKind != models.KindNone {
			if err := st.records.CompleteByApplies(eligible, currentKind); err != nil {
				return errors.Wrap(err, "ошибка завершения записей этапа")
			}
			// аудит фиксирует пройденный этап, новый статус виден по отклику
			if err := st.history.BulkCreate(eligible, variant.Stage, ""); err != nil {
				return err
			}
		}
		if variant.CompleteOnly {
			return nil
		}
		if !next.IsTerminal() && stages.HasRecordKind(next) {
			if err := i.openNextStage(st, job, variant, next, eligible, data); err != nil {
				return err
			}
		}
		if err := st.applies.UpdateStatus(eligible, next, ""); err != nil {
			return errors.Wrap(err, "ошибка смены статуса откликов")
		}
		// финальный selected фиксируется в истории явно, у него нет рабочей записи
		if next == models.StageSelected {
			if err := st.history.BulkCreate(eligible, models.StageSelected, ""); err != nil {
				return err
			}
		}
		forwarded = eligible
		return nil
	})
	if err != nil {
		return err
	}
	if rejected != 0 {
		metrics.SystemRejections.Add(float64(rejected))
	}
	if len(forwarded) == 0 {
		return nil
	}
	metrics.StageForwards.WithLabelValues(next.ToString()).Add(float64(len(forwarded)))
	log.
		WithField("job_id", job.ID).
		WithField("stage", next.ToString()).
		WithField("count", len(forwarded)).
		Info("job applies forwarded")
	if i.notifier != nil && letterWorthy(next) {
		go i.notifier.NotifyStage(job, forwarded, next)
	}
	return nil
}

// selectApplies - кандидаты на перевод. candidates - все, кто на этапе и еще
// не переведен; eligible - прошедшие критерии; stragglers - разница, когда
// вариант требует системного отклонения
func (i impl) selectApplies(st stores, spaceID string, job dbmodels.Job, variant Variant, next models.StageKey, data recruitmentapimodels.ForwardData) (eligible, stragglers []string, err error) {
	if variant.SingleApplyID != "" {
		rec, err := st.applies.GetByID(spaceID, variant.SingleApplyID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "ошибка получения отклика")
		}
		if rec == nil {
			return nil, nil, errors.New("отклик не найден")
		}
		// финальный статус не пересматривается
		if rec.Status.IsTerminal() {
			return nil, nil, nil
		}
		return []string{variant.SingleApplyID}, nil, nil
	}
	currentKind := stages.RecordKind(variant.Stage)
	base := dbmodels.ApplyEligibilityFilter{
		JobID:           job.ID,
		HasRecordOf:     currentKind,
		ExcludeStatuses: []models.StageKey{models.StageSelected, models.StageRejected},
		ExcludeRostered: true,
	}
	if stages.HasRecordKind(next) {
		base.MissingRecordOf = stages.RecordKind(next)
	}
	candidates, err := st.applies.ListIDs(spaceID, base)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка отбора кандидатов")
	}
	hasCriteria := variant.RequireVerified || variant.RequireCompleted ||
		(!variant.IgnoreCriteria && (len(data.Categories) != 0 || data.Score != nil))
	if !hasCriteria {
		return candidates, nil, nil
	}
	crit := base
	crit.RecordVerified = variant.RequireVerified
	crit.RecordCompleted = variant.RequireCompleted
	if !variant.IgnoreCriteria {
		cats := data.Categories
		if len(cats) != 0 {
			// категории запроса сужаются до допустимых для вакансии
			cats = intersectCategories(job.HiringInfo.Categories, cats)
			if len(cats) == 0 {
				if variant.RejectStragglers {
					stragglers = candidates
				}
				return nil, stragglers, nil
			}
		}
		crit.Categories = cats
		crit.ScoreGte = data.Score
	}
	eligible, err = st.applies.ListIDs(spaceID, crit)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка отбора кандидатов")
	}
	if variant.RejectStragglers {
		stragglers = diff(candidates, eligible)
	}
	return eligible, stragglers, nil
}

// openNextStage - создать рабочие записи следующего этапа по его спецификации
func (i impl) openNextStage(st stores, job dbmodels.Job, variant Variant, next models.StageKey, eligible []string, data recruitmentapimodels.ForwardData) error {
	nextKind := stages.RecordKind(next)
	spec := stages.SpecOf(nextKind)
	var prev map[string]dbmodels.StageRecord
	if variant.CopyForward {
		list, err := st.records.ListByApplies(eligible, stages.RecordKind(variant.Stage))
		if err != nil {
			return errors.Wrap(err, "ошибка чтения записей текущего этапа")
		}
		prev = make(map[string]dbmodels.StageRecord, len(list))
		for _, rec := range list {
			prev[rec.JobApplyID] = rec
		}
	}
	letterID := ""
	if spec.WithLetter {
		letterID = job.LetterTemplateID(stages.LetterSlot(next))
	}
	questionSetID := ""
	if spec.WithQuestionSet {
		questionSetID = data.QuestionSet
		if questionSetID == "" && job.HiringInfo.QuestionSets != nil {
			questionSetID = job.HiringInfo.QuestionSets[next.ToString()]
		}
	}
	recs := make([]dbmodels.StageRecord, 0, len(eligible))
	for _, applyID := range eligible {
		rec := dbmodels.StageRecord{
			JobApplyID: applyID,
			Kind:       nextKind,
			Status:     models.RecordStatusPending,
		}
		if spec.WithResponsible && data.ResponsiblePerson != "" {
			responsible := data.ResponsiblePerson
			rec.ResponsiblePersonID = &responsible
		}
		if questionSetID != "" {
			qsID := questionSetID
			rec.QuestionSetID = &qsID
		}
		if letterID != "" {
			tplID := letterID
			rec.EmailTemplateID = &tplID
		}
		if src, ok := prev[applyID]; ok {
			rec.Score = src.Score
			rec.Category = src.Category
			rec.Data = src.Data
		}
		recs = append(recs, rec)
	}
	_, err := st.records.BulkCreate(recs)
	return err
}

// letterWorthy - после selected/rejected/salary_declared письма не уходят
func letterWorthy(stage models.StageKey) bool {
	if stage.IsTerminal() || stage == models.StageSalaryDeclared {
		return false
	}
	return stages.LetterSlot(stage) != ""
}

// intersectCategories - пересечение категорий запроса с допустимыми для
// вакансии. Пустой список вакансии означает, что ограничение не настроено
func intersectCategories(allowed, requested []string) []string {
	if len(allowed) == 0 {
		return requested
	}
	ok := make(map[string]bool, len(allowed))
	for _, category := range allowed {
		ok[category] = true
	}
	out := []string{}
	for _, category := range requested {
		if ok[category] {
			out = append(out, category)
		}
	}
	return out
}

func diff(from, exclude []string) []string {
	seen := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		seen[id] = true
	}
	out := []string{}
	for _, id := range from {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}
