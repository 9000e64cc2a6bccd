package recruitmentprocess

import (
	"hr-recruitment-backend/models"
)

// Variant - правила отбора и перевода для конкретного этапа. Значение, не
// состояние: конструкторы ниже задают все известные конфигурации.
type Variant struct {
	Stage            models.StageKey
	SingleApplyID    string // непустой - безусловный перевод одного отклика
	RequireVerified  bool   // только подтвержденные записи текущего этапа
	RequireCompleted bool   // только завершенные записи текущего этапа
	RequireFinished  bool   // отказ, пока на этапе есть незавершенные записи
	IgnoreCriteria   bool   // игнорировать score/categories из запроса
	CopyForward      bool   // перенести оценку текущей записи в следующую
	CompleteOnly     bool   // завершить записи этапа, статус откликов не менять
	RejectStragglers bool   // не прошедших отбор отклонить системно
}

// variantFor - конфигурация перевода для этапа ручных ручек API
func variantFor(stage models.StageKey) Variant {
	switch stage {
	case models.StageApplied:
		return ApplicantInitialization()
	case models.StageScreened:
		return PreScreeningForward()
	case models.StageReferenceVerified:
		return ReferenceCheckForward()
	case models.StageSalaryDeclared:
		return SalaryDeclarationForward()
	default:
		return Generic(stage)
	}
}

// Generic - ручной перевод пачки по критериям запроса; не прошедшие порог
// отклоняются, чтобы никто не завис на этапе молча
func Generic(stage models.StageKey) Variant {
	return Variant{
		Stage:            stage,
		RequireFinished:  true,
		RejectStragglers: true,
	}
}

// ApplicantInitialization - запуск воронки: все новые отклики на скрининг
func ApplicantInitialization() Variant {
	return Variant{
		Stage: models.StageApplied,
	}
}

// PreScreeningForward - оценка скрининга переносится в запись шортлиста
func PreScreeningForward() Variant {
	return Variant{
		Stage:            models.StageScreened,
		RequireFinished:  true,
		RejectStragglers: true,
		CopyForward:      true,
	}
}

// ReferenceCheckForward - дальше идут только завершенные и подтвержденные
// проверки рекомендаций, критерии запроса не применяются
func ReferenceCheckForward() Variant {
	return Variant{
		Stage:            models.StageReferenceVerified,
		RequireVerified:  true,
		RequireCompleted: true,
		IgnoreCriteria:   true,
	}
}

// SalaryDeclarationForward - этап закрывается, но кандидат не становится
// selected автоматически: финальное решение принимается через согласование
func SalaryDeclarationForward() Variant {
	return Variant{
		Stage:          models.StageSalaryDeclared,
		IgnoreCriteria: true,
		CompleteOnly:   true,
	}
}

// NoObjectionPool - одобренное согласование по пулу вакансии: проходят
// подтвержденные записи по критериям гейта, остальные отклоняются системой
func NoObjectionPool(stage models.StageKey) Variant {
	return Variant{
		Stage:            stage,
		RequireVerified:  true,
		RejectStragglers: true,
	}
}

// NoObjectionSingle - одобренное согласование по одному отклику
func NoObjectionSingle(stage models.StageKey, applyID string) Variant {
	return Variant{
		Stage:         stage,
		SingleApplyID: applyID,
	}
}
