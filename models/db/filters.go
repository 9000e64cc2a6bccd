package dbmodels

import "hr-recruitment-backend/models"

// ApplyEligibilityFilter - выборка откликов вакансии для движка переводов.
// HasRecordOf/MissingRecordOf - наличие/отсутствие рабочей записи вида,
// Categories/ScoreGte применяются к записи HasRecordOf.
type ApplyEligibilityFilter struct {
	JobID           string
	ApplyIDs        []string
	HasRecordOf     models.RecordKind
	MissingRecordOf models.RecordKind
	Categories      []string
	ScoreGte        *float64
	RecordVerified  bool
	RecordCompleted bool
	ExcludeStatuses []models.StageKey
	ExcludeRostered bool
}

// ApplyListFilter - фильтр списочных ручек по откликам
type ApplyListFilter struct {
	Search   string          `json:"search"`
	Statuses []models.StageKey `json:"statuses"`
}
