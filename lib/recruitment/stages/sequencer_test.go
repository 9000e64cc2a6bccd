package stages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"
)

func TestNext(t *testing.T) {
	pipeline := []models.StageKey{
		models.StageApplied,
		models.StageScreened,
		models.StageSelected,
		models.StageRejected,
	}

	t.Run("следующий этап по списку", func(t *testing.T) {
		next, err := Next(pipeline, models.StageApplied)
		require.Nil(t, err)
		require.Equal(t, models.StageScreened, next)
	})
	t.Run("последний этап дает сентинел, не ошибку", func(t *testing.T) {
		next, err := Next(pipeline, models.StageRejected)
		require.Nil(t, err)
		require.Equal(t, NoNextStage, next)
	})
	t.Run("этап вне списка после перенастройки вакансии", func(t *testing.T) {
		_, err := Next(pipeline, models.StageAssessmentTaken)
		require.ErrorIs(t, err, ErrInvalidStage)
	})
}

func TestPartition(t *testing.T) {
	job := dbmodels.Job{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "job-1"}},
		Stages: dbmodels.StageList{
			models.StageApplied,
			models.StageScreened,
			models.StageShortlisted,
			models.StageSelected,
			models.StageRejected,
		},
	}

	t.Run("ожидающие перевода", func(t *testing.T) {
		filter, err := Partition(job, models.StageScreened, true)
		require.Nil(t, err)
		require.Equal(t, "job-1", filter.JobID)
		require.Equal(t, models.KindPostScreening, filter.NextKind)
		require.True(t, filter.NextIsNull)
		require.False(t, filter.SkipNextCheck)
	})
	t.Run("переведенные дальше", func(t *testing.T) {
		filter, err := Partition(job, models.StageScreened, false)
		require.Nil(t, err)
		require.False(t, filter.NextIsNull)
	})
	t.Run("перед терминальным этапом проверка записи опускается", func(t *testing.T) {
		filter, err := Partition(job, models.StageShortlisted, true)
		require.Nil(t, err)
		require.True(t, filter.SkipNextCheck)
	})
	t.Run("этап вне списка", func(t *testing.T) {
		_, err := Partition(job, models.StageInterviewed, true)
		require.ErrorIs(t, err, ErrInvalidStage)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("терминальные этапы без рабочих записей", func(t *testing.T) {
		require.Equal(t, models.KindNone, RecordKind(models.StageSelected))
		require.Equal(t, models.KindNone, RecordKind(models.StageRejected))
		require.False(t, HasRecordKind(models.StageApplied))
	})
	t.Run("у каждого промежуточного этапа есть запись и имя", func(t *testing.T) {
		for _, stage := range models.KnownStages {
			require.NotEmpty(t, DisplayName(stage), stage)
			if stage == models.StageApplied || stage.IsTerminal() {
				continue
			}
			require.True(t, HasRecordKind(stage), stage)
		}
	})
	t.Run("письмо уходит на этап прибытия", func(t *testing.T) {
		require.Equal(t, "post_screening_letter", LetterSlot(models.StageShortlisted))
		require.Empty(t, LetterSlot(models.StageSelected))
	})
	t.Run("автоперевод по баллам", func(t *testing.T) {
		require.True(t, SupportsScoreForwarding(models.StageScreened))
		require.False(t, SupportsScoreForwarding(models.StageSalaryDeclared))
	})
	t.Run("спецификация записей", func(t *testing.T) {
		require.True(t, SpecOf(models.KindPreScreening).WithQuestionSet)
		require.False(t, SpecOf(models.KindInterview).WithResponsible)
		require.Equal(t, RecordSpec{WithLetter: true}, SpecOf(models.KindReferenceCheck))
		require.Equal(t, RecordSpec{}, SpecOf(models.KindSalaryDeclaration))
	})
}
