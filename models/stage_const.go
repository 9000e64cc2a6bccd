package models

// StageKey - этап пайплайна подбора по вакансии
type StageKey string

const (
	StageApplied                 StageKey = "applied"
	StageScreened                StageKey = "screened"
	StageShortlisted             StageKey = "shortlisted"
	StagePreScreeningInterviewed StageKey = "pre_screening_interviewed"
	StageAssessmentTaken         StageKey = "assessment_taken"
	StageInterviewed             StageKey = "interviewed"
	StageReferenceVerified       StageKey = "reference_verified"
	StageSalaryDeclared          StageKey = "salary_declared"
	StageSelected                StageKey = "selected"
	StageRejected                StageKey = "rejected"
)

func (s StageKey) ToString() string {
	return string(s)
}

// IsTerminal - из Selected/Rejected переходов больше нет
func (s StageKey) IsTerminal() bool {
	return s == StageSelected || s == StageRejected
}

// KnownStages - полный набор этапов в каноническом порядке
var KnownStages = []StageKey{
	StageApplied,
	StageScreened,
	StageShortlisted,
	StagePreScreeningInterviewed,
	StageAssessmentTaken,
	StageInterviewed,
	StageReferenceVerified,
	StageSalaryDeclared,
	StageSelected,
	StageRejected,
}

func IsKnownStage(s StageKey) bool {
	for _, stage := range KnownStages {
		if stage == s {
			return true
		}
	}
	return false
}

// RecordKind - тип рабочей записи этапа (таблица stage_records, колонка kind)
type RecordKind string

const (
	KindPreScreening          RecordKind = "pre_screening"
	KindPostScreening         RecordKind = "post_screening"
	KindPreScreeningInterview RecordKind = "pre_screening_interview"
	KindAssessment            RecordKind = "assessment"
	KindInterview             RecordKind = "interview"
	KindReferenceCheck        RecordKind = "reference_check"
	KindSalaryDeclaration     RecordKind = "salary_declaration"
	// KindNone - у терминальных этапов рабочей записи нет
	KindNone RecordKind = ""
)

func (k RecordKind) ToString() string {
	return string(k)
}
