package notification

import (
	log "github.com/sirupsen/logrus"

	"hr-recruitment-backend/db"
	applystore "hr-recruitment-backend/lib/applicant/store"
	"hr-recruitment-backend/lib/metrics"
	messagetemplatestore "hr-recruitment-backend/lib/message-template/store"
	"hr-recruitment-backend/lib/recruitment/stages"
	"hr-recruitment-backend/lib/smtp"
	spaceusersstore "hr-recruitment-backend/lib/space/users/store"
	"hr-recruitment-backend/lib/utils/helpers"
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"
)

// Provider - письма кандидатам и уведомления сотрудникам. Вызывается после
// коммита, вся обработка best-effort: ошибки уходят в лог, не вызывающему.
type Provider interface {
	NotifyStage(job dbmodels.Job, applyIDs []string, stage models.StageKey)
	NotifyVerifier(gate dbmodels.NoObjection)
	SendApplyConfirmation(apply dbmodels.JobApply, job dbmodels.Job)
}

var Instance Provider

func NewHandler(from string) {
	Instance = &impl{
		from:      from,
		templates: messagetemplatestore.NewInstance(db.DB),
		applies:   applystore.NewInstance(db.DB),
		users:     spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	from      string
	templates messagetemplatestore.Provider
	applies   applystore.Provider
	users     spaceusersstore.Provider
}

// NotifyStage - письмо каждому кандидату, достигшему этапа stage, по шаблону
// из конфигурации найма вакансии
func (i impl) NotifyStage(job dbmodels.Job, applyIDs []string, stage models.StageKey) {
	logger := log.
		WithField("job_id", job.ID).
		WithField("stage", stage.ToString())
	templateID := job.LetterTemplateID(stages.LetterSlot(stage))
	if templateID == "" {
		return
	}
	tpl, err := i.templates.GetByID(job.SpaceID, templateID)
	if err != nil || tpl == nil {
		logger.WithError(err).Error("шаблон письма этапа не найден")
		return
	}
	applies, err := i.applies.ListByIDs(applyIDs)
	if err != nil {
		logger.WithError(err).Error("ошибка получения откликов для рассылки")
		return
	}
	for _, apply := range applies {
		values := map[string]string{
			"candidate": apply.GetFIO(),
			"job_title": job.Title,
			"stage":     stages.DisplayName(stage),
		}
		message := helpers.ReplacePlaceholders(tpl.Message, values)
		subject := helpers.ReplacePlaceholders(tpl.Subject, values)
		if err := smtp.Instance.SendEMail(i.from, apply.Email, message, subject); err != nil {
			metrics.LettersSent.WithLabelValues("error").Inc()
			continue
		}
		metrics.LettersSent.WithLabelValues("ok").Inc()
	}
}

// NotifyVerifier - согласование передано на подпись ответственному
func (i impl) NotifyVerifier(gate dbmodels.NoObjection) {
	logger := log.WithField("no_objection_id", gate.ID)
	verifier, err := i.users.GetByID(gate.ResponsiblePersonID)
	if err != nil || verifier == nil {
		logger.WithError(err).Error("ответственный за согласование не найден")
		return
	}
	message := "Согласование \"" + gate.Title + "\" ожидает вашего решения"
	if err := smtp.Instance.SendEMail(i.from, verifier.Email, message, "Требуется решение по согласованию"); err != nil {
		logger.WithError(err).Error("ошибка уведомления ответственного")
	}
}

// SendApplyConfirmation - подтверждение кандидату о полученном отклике
func (i impl) SendApplyConfirmation(apply dbmodels.JobApply, job dbmodels.Job) {
	values := map[string]string{
		"candidate": apply.GetFIO(),
		"job_title": job.Title,
	}
	message := helpers.ReplacePlaceholders("Здравствуйте, {{candidate}}! Ваш отклик на вакансию \"{{job_title}}\" получен.", values)
	err := smtp.Instance.SendEMail(i.from, apply.Email, message, "Отклик получен")
	if err != nil {
		log.WithError(err).WithField("apply_id", apply.ID).Error("ошибка отправки подтверждения")
		return
	}
	params := apply.Params
	params.ConfirmationEmailSent = true
	if err := i.applies.Update(apply.ID, map[string]interface{}{"params": params}); err != nil {
		log.WithError(err).WithField("apply_id", apply.ID).Error("ошибка сохранения флага подтверждения")
	}
}
