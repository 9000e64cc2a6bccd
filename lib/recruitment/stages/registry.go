package stages

import (
	"hr-recruitment-backend/models"
)

// Справочник этапов: статические таблицы соответствий, поведения нет.
// Промах по неизвестному этапу - ошибка вызывающего кода, не пользователя.

var displayNames = map[models.StageKey]string{
	models.StageApplied:                 "Application Received",
	models.StageScreened:                "Preliminary Shortlist",
	models.StageShortlisted:             "Final Shortlist",
	models.StagePreScreeningInterviewed: "Preliminary Screening Interview",
	models.StageAssessmentTaken:         "Assessment",
	models.StageInterviewed:             "Interview",
	models.StageReferenceVerified:       "Reference Check",
	models.StageSalaryDeclared:          "Salary Declaration",
	models.StageSelected:                "Selected Candidate",
	models.StageRejected:                "Rejected Candidate",
}

var recordKinds = map[models.StageKey]models.RecordKind{
	models.StageScreened:                models.KindPreScreening,
	models.StageShortlisted:             models.KindPostScreening,
	models.StagePreScreeningInterviewed: models.KindPreScreeningInterview,
	models.StageAssessmentTaken:         models.KindAssessment,
	models.StageInterviewed:             models.KindInterview,
	models.StageReferenceVerified:       models.KindReferenceCheck,
	models.StageSalaryDeclared:          models.KindSalaryDeclaration,
	models.StageSelected:                models.KindNone,
	models.StageRejected:                models.KindNone,
}

// letterSlots - слот hiring info с шаблоном письма кандидату о достижении этапа
var letterSlots = map[models.StageKey]string{
	models.StageScreened:                "pre_screening_letter",
	models.StageShortlisted:             "post_screening_letter",
	models.StagePreScreeningInterviewed: "pre_screening_interview_letter",
	models.StageAssessmentTaken:         "assessment_letter",
	models.StageInterviewed:             "interview_letter",
	models.StageReferenceVerified:       "reference_check_letter",
	models.StageSalaryDeclared:          "salary_declaration_letter",
}

// scoreForwarding - этапы с автопереводом по порогу баллов
var scoreForwarding = map[models.StageKey]bool{
	models.StageScreened:                true,
	models.StagePreScreeningInterviewed: true,
	models.StageAssessmentTaken:         true,
	models.StageReferenceVerified:       true,
}

// RecordSpec - какие атрибуты принимает рабочая запись этапа при создании
type RecordSpec struct {
	WithResponsible bool
	WithQuestionSet bool
	WithLetter      bool
}

var recordSpecs = map[models.RecordKind]RecordSpec{
	models.KindPreScreening:          {WithResponsible: true, WithQuestionSet: true, WithLetter: true},
	models.KindPostScreening:         {WithResponsible: true, WithQuestionSet: true, WithLetter: true},
	models.KindPreScreeningInterview: {WithResponsible: true, WithQuestionSet: true, WithLetter: true},
	models.KindAssessment:            {WithResponsible: true, WithQuestionSet: true, WithLetter: true},
	models.KindInterview:             {WithQuestionSet: true, WithLetter: true},
	models.KindReferenceCheck:        {WithLetter: true},
	models.KindSalaryDeclaration:     {},
}

func DisplayName(stage models.StageKey) string {
	return displayNames[stage]
}

// RecordKind - тип рабочей записи этапа, KindNone для applied и терминальных
func RecordKind(stage models.StageKey) models.RecordKind {
	return recordKinds[stage]
}

func HasRecordKind(stage models.StageKey) bool {
	return recordKinds[stage] != models.KindNone
}

// LetterSlot - слот шаблона письма при переводе НА этап stage
func LetterSlot(stage models.StageKey) string {
	return letterSlots[stage]
}

func SupportsScoreForwarding(stage models.StageKey) bool {
	return scoreForwarding[stage]
}

func SpecOf(kind models.RecordKind) RecordSpec {
	return recordSpecs[kind]
}
