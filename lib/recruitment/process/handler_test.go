package recruitmentprocess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hr-recruitment-backend/models"
	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
	dbmodels "hr-recruitment-backend/models/db"
)

func testJob(pipeline ...models.StageKey) dbmodels.Job {
	if len(pipeline) == 0 {
		pipeline = []models.StageKey{
			models.StageApplied,
			models.StageScreened,
			models.StageShortlisted,
			models.StageSelected,
			models.StageRejected,
		}
	}
	return dbmodels.Job{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "job-1"},
			SpaceID:   "space-1",
		},
		Title:  "Разработчик Go",
		Stages: dbmodels.StageList(pipeline),
	}
}

func score(v float64) *float64 {
	return &v
}

func TestForwardScoreThreshold(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageScreened, false)
	w.addApply("a2", job.ID, models.StageScreened, false)
	w.addApply("a3", job.ID, models.StageScreened, false)
	w.addRecord("a1", models.KindPreScreening, score(90), "", models.RecordStatusCompleted, false)
	w.addRecord("a2", models.KindPreScreening, score(60), "", models.RecordStatusCompleted, false)
	w.addRecord("a3", models.KindPreScreening, score(40), "", models.RecordStatusCompleted, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{Score: score(70)})
	require.Nil(t, err)

	t.Run("прошедший порог переведен", func(t *testing.T) {
		require.Equal(t, models.StageShortlisted, w.applies["a1"].Status)
		require.NotNil(t, w.findRecord("a1", models.KindPostScreening))
		require.Equal(t, models.RecordStatusCompleted, w.findRecord("a1", models.KindPreScreening).Status)
	})
	t.Run("не прошедшие отклонены", func(t *testing.T) {
		require.Equal(t, models.StageRejected, w.applies["a2"].Status)
		require.Equal(t, models.StageRejected, w.applies["a3"].Status)
		require.Nil(t, w.findRecord("a2", models.KindPostScreening))
		require.Nil(t, w.findRecord("a3", models.KindPostScreening))
	})
	t.Run("аудит ровно три строки", func(t *testing.T) {
		require.Len(t, w.history, 3)
		rows := w.historyOf("a1")
		require.Len(t, rows, 1)
		require.Equal(t, models.StageScreened, rows[0].Status)
		rows = w.historyOf("a2")
		require.Len(t, rows, 1)
		require.Equal(t, models.StageRejected, rows[0].Status)
		require.Equal(t, models.SystemRejectRemarks, rows[0].Remarks)
	})
}

func TestForwardIdempotent(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageScreened, false)
	w.addRecord("a1", models.KindPreScreening, score(90), "", models.RecordStatusCompleted, false)
	h := newTestHandler(w)
	data := recruitmentapimodels.ForwardData{Score: score(70)}

	err := h.Forward("space-1", job, Generic(models.StageScreened), data)
	require.Nil(t, err)
	recordsAfterFirst := len(w.records)
	historyAfterFirst := len(w.history)

	err = h.Forward("space-1", job, Generic(models.StageScreened), data)
	require.Nil(t, err)

	require.Equal(t, recordsAfterFirst, len(w.records))
	require.Equal(t, historyAfterFirst, len(w.history))
	require.Equal(t, models.StageShortlisted, w.applies["a1"].Status)
}

func TestForwardTerminalImmutability(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageSelected, false)
	w.addApply("a2", job.ID, models.StageRejected, false)
	w.addRecord("a1", models.KindPreScreening, score(90), "", models.RecordStatusCompleted, false)
	w.addRecord("a2", models.KindPreScreening, score(90), "", models.RecordStatusCompleted, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)
	require.Equal(t, models.StageSelected, w.applies["a1"].Status)
	require.Equal(t, models.StageRejected, w.applies["a2"].Status)
	require.Len(t, w.history, 0)

	t.Run("перевод с финального этапа запрещен", func(t *testing.T) {
		err := h.Forward("space-1", job, Generic(models.StageSelected), recruitmentapimodels.ForwardData{})
		require.ErrorIs(t, err, ErrTerminalStage)
	})
}

func TestForwardUnfinishedRecords(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageScreened, false)
	w.addRecord("a1", models.KindPreScreening, score(90), "", models.RecordStatusProgress, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{})
	require.ErrorIs(t, err, ErrStageUnfinished)
	require.Equal(t, models.StageScreened, w.applies["a1"].Status)
}

func TestApplicantInitialization(t *testing.T) {
	w := newWorld()
	job := testJob()
	job.HiringInfo = dbmodels.HiringInfo{
		Letters:      map[string]string{"pre_screening_letter": "tpl-1"},
		QuestionSets: map[string]string{"screened": "qs-1"},
	}
	w.addApply("a1", job.ID, models.StageApplied, false)
	w.addApply("a2", job.ID, models.StageApplied, true) // отложен вручную
	h := newTestHandler(w)

	err := h.Forward("space-1", job, ApplicantInitialization(), recruitmentapimodels.ForwardData{ResponsiblePerson: "user-1"})
	require.Nil(t, err)

	require.Equal(t, models.StageScreened, w.applies["a1"].Status)
	rec := w.findRecord("a1", models.KindPreScreening)
	require.NotNil(t, rec)
	require.Equal(t, models.RecordStatusPending, rec.Status)
	require.Equal(t, "user-1", *rec.ResponsiblePersonID)
	require.Equal(t, "qs-1", *rec.QuestionSetID)
	require.Equal(t, "tpl-1", *rec.EmailTemplateID)

	t.Run("отложенный кандидат не участвует", func(t *testing.T) {
		require.Equal(t, models.StageApplied, w.applies["a2"].Status)
		require.Nil(t, w.findRecord("a2", models.KindPreScreening))
	})
}

func TestPreScreeningCopyForward(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageScreened, false)
	w.addRecord("a1", models.KindPreScreening, score(88), "A", models.RecordStatusCompleted, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, PreScreeningForward(), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)

	rec := w.findRecord("a1", models.KindPostScreening)
	require.NotNil(t, rec)
	require.Equal(t, 88.0, *rec.Score)
	require.Equal(t, "A", rec.Category)
	require.Equal(t, models.RecordStatusPending, rec.Status)
}

func TestReferenceCheckForward(t *testing.T) {
	w := newWorld()
	job := testJob(
		models.StageApplied,
		models.StageReferenceVerified,
		models.StageSalaryDeclared,
		models.StageSelected,
		models.StageRejected,
	)
	w.addApply("a1", job.ID, models.StageReferenceVerified, false)
	w.addApply("a2", job.ID, models.StageReferenceVerified, false)
	w.addRecord("a1", models.KindReferenceCheck, nil, "", models.RecordStatusCompleted, true)
	w.addRecord("a2", models.KindReferenceCheck, nil, "", models.RecordStatusCompleted, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, ReferenceCheckForward(), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)

	require.Equal(t, models.StageSalaryDeclared, w.applies["a1"].Status)
	require.NotNil(t, w.findRecord("a1", models.KindSalaryDeclaration))

	t.Run("неподтвержденный остается, но не отклоняется", func(t *testing.T) {
		require.Equal(t, models.StageReferenceVerified, w.applies["a2"].Status)
		require.Nil(t, w.findRecord("a2", models.KindSalaryDeclaration))
	})
}

func TestSalaryDeclarationForward(t *testing.T) {
	w := newWorld()
	job := testJob(
		models.StageApplied,
		models.StageSalaryDeclared,
		models.StageSelected,
		models.StageRejected,
	)
	w.addApply("a1", job.ID, models.StageSalaryDeclared, false)
	w.addRecord("a1", models.KindSalaryDeclaration, nil, "", models.RecordStatusProgress, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, SalaryDeclarationForward(), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)

	// этап закрыт, но selected кандидат становится только через согласование
	require.Equal(t, models.StageSalaryDeclared, w.applies["a1"].Status)
	require.Equal(t, models.RecordStatusCompleted, w.findRecord("a1", models.KindSalaryDeclaration).Status)
	rows := w.historyOf("a1")
	require.Len(t, rows, 1)
	require.Equal(t, models.StageSalaryDeclared, rows[0].Status)
}

func TestNoObjectionPoolSweep(t *testing.T) {
	w := newWorld()
	job := testJob(
		models.StageApplied,
		models.StageInterviewed,
		models.StageReferenceVerified,
		models.StageSelected,
		models.StageRejected,
	)
	w.addApply("a1", job.ID, models.StageInterviewed, false)
	w.addApply("a2", job.ID, models.StageInterviewed, false)
	w.addApply("a3", job.ID, models.StageInterviewed, false)
	w.addApply("a4", job.ID, models.StageInterviewed, true) // отложен вручную
	w.addRecord("a1", models.KindInterview, score(85), "", models.RecordStatusCompleted, true)
	w.addRecord("a2", models.KindInterview, score(55), "", models.RecordStatusCompleted, true)
	w.addRecord("a3", models.KindInterview, score(95), "", models.RecordStatusCompleted, false) // не подтвержден
	w.addRecord("a4", models.KindInterview, score(99), "", models.RecordStatusCompleted, true)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, NoObjectionPool(models.StageInterviewed), recruitmentapimodels.ForwardData{Score: score(70)})
	require.Nil(t, err)

	t.Run("каждый кандидат либо переведен, либо отклонен", func(t *testing.T) {
		require.Equal(t, models.StageReferenceVerified, w.applies["a1"].Status)
		require.Equal(t, models.StageRejected, w.applies["a2"].Status)
		require.Equal(t, models.StageRejected, w.applies["a3"].Status)
		require.Equal(t, models.SystemRejectRemarks, w.applies["a2"].Remarks)
	})
	t.Run("отложенный не переведен и не отклонен", func(t *testing.T) {
		require.Equal(t, models.StageInterviewed, w.applies["a4"].Status)
	})
}

func TestNoObjectionSingleForward(t *testing.T) {
	w := newWorld()
	job := testJob(
		models.StageApplied,
		models.StageInterviewed,
		models.StageReferenceVerified,
		models.StageSelected,
		models.StageRejected,
	)
	w.addApply("a1", job.ID, models.StageInterviewed, false)
	w.addApply("a2", job.ID, models.StageInterviewed, false)
	w.addRecord("a1", models.KindInterview, score(10), "", models.RecordStatusCompleted, false)
	w.addRecord("a2", models.KindInterview, score(90), "", models.RecordStatusCompleted, true)
	h := newTestHandler(w)

	// единичное согласование переводит безусловно и не трогает остальных
	err := h.Forward("space-1", job, NoObjectionSingle(models.StageInterviewed, "a1"), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)

	require.Equal(t, models.StageReferenceVerified, w.applies["a1"].Status)
	require.NotNil(t, w.findRecord("a1", models.KindReferenceCheck))
	require.Equal(t, models.StageInterviewed, w.applies["a2"].Status)
	require.Nil(t, w.findRecord("a2", models.KindReferenceCheck))
}

func TestCategoryAllowList(t *testing.T) {
	t.Run("категория вне допустимых никого не переводит", func(t *testing.T) {
		w := newWorld()
		job := testJob()
		job.HiringInfo.Categories = []string{"A", "B"}
		w.addApply("a1", job.ID, models.StageScreened, false)
		w.addRecord("a1", models.KindPreScreening, score(95), "Z", models.RecordStatusCompleted, false)
		h := newTestHandler(w)

		err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{Categories: []string{"Z"}})
		require.Nil(t, err)
		require.Equal(t, models.StageRejected, w.applies["a1"].Status)
		require.Nil(t, w.findRecord("a1", models.KindPostScreening))
	})
	t.Run("пересечение сужает категории запроса", func(t *testing.T) {
		w := newWorld()
		job := testJob()
		job.HiringInfo.Categories = []string{"A"}
		w.addApply("a1", job.ID, models.StageScreened, false)
		w.addApply("a2", job.ID, models.StageScreened, false)
		w.addRecord("a1", models.KindPreScreening, score(80), "A", models.RecordStatusCompleted, false)
		w.addRecord("a2", models.KindPreScreening, score(80), "B", models.RecordStatusCompleted, false)
		h := newTestHandler(w)

		err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{Categories: []string{"A", "B"}})
		require.Nil(t, err)
		require.Equal(t, models.StageShortlisted, w.applies["a1"].Status)
		require.Equal(t, models.StageRejected, w.applies["a2"].Status)
	})
	t.Run("без настройки вакансии категории запроса как есть", func(t *testing.T) {
		w := newWorld()
		job := testJob()
		w.addApply("a1", job.ID, models.StageScreened, false)
		w.addRecord("a1", models.KindPreScreening, score(80), "C", models.RecordStatusCompleted, false)
		h := newTestHandler(w)

		err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{Categories: []string{"C"}})
		require.Nil(t, err)
		require.Equal(t, models.StageShortlisted, w.applies["a1"].Status)
	})
}

func TestSingleForwardTerminalImmutability(t *testing.T) {
	w := newWorld()
	job := testJob(
		models.StageApplied,
		models.StageInterviewed,
		models.StageReferenceVerified,
		models.StageSelected,
		models.StageRejected,
	)
	w.addApply("a1", job.ID, models.StageRejected, false)
	w.addRecord("a1", models.KindInterview, score(50), "", models.RecordStatusCompleted, false)
	h := newTestHandler(w)

	// одобрение согласования после отклонения кандидата ничего не меняет
	err := h.Forward("space-1", job, NoObjectionSingle(models.StageInterviewed, "a1"), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)
	require.Equal(t, models.StageRejected, w.applies["a1"].Status)
	require.Nil(t, w.findRecord("a1", models.KindReferenceCheck))
	require.Len(t, w.history, 0)

	t.Run("неизвестный отклик", func(t *testing.T) {
		err := h.Forward("space-1", job, NoObjectionSingle(models.StageInterviewed, "missing"), recruitmentapimodels.ForwardData{})
		require.NotNil(t, err)
	})
}

func TestSelectedAuditRow(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageShortlisted, false)
	w.addRecord("a1", models.KindPostScreening, score(75), "", models.RecordStatusCompleted, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, Generic(models.StageShortlisted), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)

	require.Equal(t, models.StageSelected, w.applies["a1"].Status)
	rows := w.historyOf("a1")
	require.Len(t, rows, 2)
	require.Equal(t, models.StageShortlisted, rows[0].Status)
	require.Equal(t, models.StageSelected, rows[1].Status)
}

func TestMonotonicAdvancement(t *testing.T) {
	w := newWorld()
	job := testJob()
	w.addApply("a1", job.ID, models.StageApplied, false)
	h := newTestHandler(w)

	err := h.Forward("space-1", job, ApplicantInitialization(), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)
	w.findRecord("a1", models.KindPreScreening).Status = models.RecordStatusCompleted

	err = h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)
	w.findRecord("a1", models.KindPostScreening).Status = models.RecordStatusCompleted

	err = h.Forward("space-1", job, Generic(models.StageShortlisted), recruitmentapimodels.ForwardData{})
	require.Nil(t, err)
	require.Equal(t, models.StageSelected, w.applies["a1"].Status)

	t.Run("аудит идет по этапам без возвратов", func(t *testing.T) {
		indexOf := func(stage models.StageKey) int {
			for k, s := range job.Stages {
				if s == stage {
					return k
				}
			}
			return -1
		}
		prev := -1
		for _, row := range w.historyOf("a1") {
			cur := indexOf(row.Status)
			require.Greater(t, cur, prev)
			prev = cur
		}
	})
	t.Run("после финального этапа статус не меняется", func(t *testing.T) {
		historyBefore := len(w.history)
		err := h.Forward("space-1", job, Generic(models.StageScreened), recruitmentapimodels.ForwardData{})
		require.Nil(t, err)
		require.Equal(t, models.StageSelected, w.applies["a1"].Status)
		require.Equal(t, historyBefore, len(w.history))
	})
}
