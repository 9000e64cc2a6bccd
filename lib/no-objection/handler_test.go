package noobjection

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	applystore "hr-recruitment-backend/lib/applicant/store"
	applyhistorystore "hr-recruitment-backend/lib/apply-history/store"
	jobstore "hr-recruitment-backend/lib/job/store"
	messagetemplatestore "hr-recruitment-backend/lib/message-template/store"
	noobjectionstore "hr-recruitment-backend/lib/no-objection/store"
	recruitmentprocess "hr-recruitment-backend/lib/recruitment/process"
	stagerecordstore "hr-recruitment-backend/lib/stage-record/store"
	"hr-recruitment-backend/models"
	noobjectionapimodels "hr-recruitment-backend/models/api/noobjection"
	recruitmentapimodels "hr-recruitment-backend/models/api/recruitment"
	dbmodels "hr-recruitment-backend/models/db"
)

// фейки реализуют только задействованные методы, остальное покрывает
// встроенный интерфейс

type fakeGates struct {
	noobjectionstore.Provider
	recs   map[string]*dbmodels.NoObjection
	active bool
	nextID int
}

func (f *fakeGates) Create(rec dbmodels.NoObjection) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("gate-%d", f.nextID)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeGates) GetByID(spaceID, id string) (*dbmodels.NoObjection, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeGates) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("запись не найдена")
	}
	if v, ok := updMap["status"]; ok {
		rec.Status = v.(models.NoObjectionStatus)
	}
	if v, ok := updMap["remarks"]; ok {
		rec.Remarks = v.(string)
	}
	if v, ok := updMap["modified_template"]; ok {
		rec.ModifiedTemplate = v.(string)
	}
	if v, ok := updMap["verified"]; ok {
		rec.Verified = v.(bool)
	}
	return nil
}

func (f *fakeGates) IsExistActive(jobID string, stage models.StageKey) (bool, error) {
	return f.active, nil
}

type fakeJobs struct {
	jobstore.Provider
	jobs map[string]*dbmodels.Job
}

func (f fakeJobs) GetByID(spaceID, id string) (*dbmodels.Job, error) {
	return f.jobs[id], nil
}

type fakeApplies struct {
	applystore.Provider
	applies map[string]*dbmodels.JobApply
}

func (f fakeApplies) GetByID(spaceID, id string) (*dbmodels.JobApply, error) {
	return f.applies[id], nil
}

func (f fakeApplies) UpdateStatus(ids []string, status models.StageKey, remarks string) error {
	for _, id := range ids {
		f.applies[id].Status = status
		if remarks != "" {
			f.applies[id].Remarks = remarks
		}
	}
	return nil
}

func (f fakeApplies) List(spaceID, jobID string, filter dbmodels.ApplyListFilter) ([]dbmodels.JobApply, error) {
	out := []dbmodels.JobApply{}
	for _, rec := range f.applies {
		if rec.JobID == jobID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeHistory struct {
	applyhistorystore.Provider
	rows []dbmodels.JobApplyStage
}

func (f *fakeHistory) BulkCreate(applyIDs []string, status models.StageKey, remarks string) error {
	for _, id := range applyIDs {
		f.rows = append(f.rows, dbmodels.JobApplyStage{JobApplyID: id, Status: status, Remarks: remarks})
	}
	return nil
}

type fakeRecords struct {
	stagerecordstore.Provider
	recs []dbmodels.StageRecord
}

func (f fakeRecords) ListByApplies(applyIDs []string, kind models.RecordKind) ([]dbmodels.StageRecord, error) {
	out := []dbmodels.StageRecord{}
	for _, rec := range f.recs {
		if rec.Kind != kind {
			continue
		}
		for _, id := range applyIDs {
			if rec.JobApplyID == id {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func (f fakeRecords) CountUnfinished(jobID string, kind models.RecordKind) (int64, error) {
	count := int64(0)
	for _, rec := range f.recs {
		if rec.Kind == kind && rec.Status != models.RecordStatusCompleted {
			count++
		}
	}
	return count, nil
}

type fakeTemplates struct {
	messagetemplatestore.Provider
	recs map[string]*dbmodels.MessageTemplate
}

func (f fakeTemplates) GetByID(spaceID, id string) (*dbmodels.MessageTemplate, error) {
	return f.recs[id], nil
}

type fakeProcess struct {
	recruitmentprocess.Provider
	calls []recruitmentprocess.Variant
	data  []recruitmentapimodels.ForwardData
	err   error
}

func (f *fakeProcess) Forward(spaceID string, job dbmodels.Job, variant recruitmentprocess.Variant, data recruitmentapimodels.ForwardData) error {
	f.calls = append(f.calls, variant)
	f.data = append(f.data, data)
	return f.err
}

type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fixture struct {
	handler impl
	gates   *fakeGates
	applies fakeApplies
	history *fakeHistory
	records *fakeRecords
	process *fakeProcess
}

func newFixture() *fixture {
	job := &dbmodels.Job{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "job-1"},
			SpaceID:   "space-1",
		},
		Title: "Аналитик",
		HiringInfo: dbmodels.HiringInfo{
			WrittenScore:   60,
			InterviewScore: 75,
		},
		Stages: dbmodels.StageList{
			models.StageApplied,
			models.StageInterviewed,
			models.StageSelected,
			models.StageRejected,
		},
	}
	f := &fixture{
		gates: &fakeGates{recs: map[string]*dbmodels.NoObjection{}},
		applies: fakeApplies{applies: map[string]*dbmodels.JobApply{
			"a1": {
				BaseSpaceModel: dbmodels.BaseSpaceModel{
					BaseModel: dbmodels.BaseModel{ID: "a1"},
					SpaceID:   "space-1",
				},
				JobID:     "job-1",
				FirstName: "Иван",
				LastName:  "Петров",
				Status:    models.StageInterviewed,
			},
		}},
		history: &fakeHistory{},
		records: &fakeRecords{},
		process: &fakeProcess{},
	}
	st := stores{
		gates:     f.gates,
		jobs:      fakeJobs{jobs: map[string]*dbmodels.Job{"job-1": job}},
		applies:   f.applies,
		history:   f.history,
		records:   f.records,
		templates: fakeTemplates{recs: map[string]*dbmodels.MessageTemplate{
			"tpl-1": {Message: "По вакансии {{job_title}}: всего {{total_applicants}}, отклонено {{rejected}}"},
		}},
	}
	f.handler = impl{
		tx:      fakeTx{},
		stores:  func(tx *gorm.DB) stores { return st },
		main:    st,
		process: f.process,
	}
	return f
}

func (f *fixture) addGate(status models.NoObjectionStatus, applyID string) string {
	rec := dbmodels.NoObjection{
		Title:               "Согласование интервью",
		JobID:               "job-1",
		Stage:               models.StageInterviewed,
		Status:              status,
		ResponsiblePersonID: "user-1",
	}
	if applyID != "" {
		rec.JobApplyID = &applyID
	}
	id, _ := f.gates.Create(rec)
	return id
}

func TestVerifyDeniedSingle(t *testing.T) {
	f := newFixture()
	id := f.addGate(models.NoObjectionStatusCompleted, "a1")

	err := f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{
		Approved: false,
		Remarks:  "Insufficient experience",
	})
	require.Nil(t, err)

	require.Equal(t, models.NoObjectionStatusDenied, f.gates.recs[id].Status)
	require.Equal(t, models.StageRejected, f.applies.applies["a1"].Status)
	require.Equal(t, "Insufficient experience", f.applies.applies["a1"].Remarks)
	require.Len(t, f.history.rows, 1)
	require.Equal(t, models.StageRejected, f.history.rows[0].Status)
	require.Equal(t, "Insufficient experience", f.history.rows[0].Remarks)

	t.Run("процесс подбора не вызывается", func(t *testing.T) {
		require.Len(t, f.process.calls, 0)
	})
}

func TestVerifyApprovedPool(t *testing.T) {
	f := newFixture()
	id := f.addGate(models.NoObjectionStatusCompleted, "")
	f.gates.recs[id].Score = 70
	f.gates.recs[id].Categories = dbmodels.StringList{"A"}

	err := f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{Approved: true})
	require.Nil(t, err)

	require.Equal(t, models.NoObjectionStatusApproved, f.gates.recs[id].Status)
	require.True(t, f.gates.recs[id].Verified)
	require.Len(t, f.process.calls, 1)
	variant := f.process.calls[0]
	require.Equal(t, models.StageInterviewed, variant.Stage)
	require.True(t, variant.RejectStragglers)
	require.True(t, variant.RequireVerified)
	require.Equal(t, 70.0, *f.process.data[0].Score)
	require.Equal(t, []string{"A"}, f.process.data[0].Categories)
}

func TestVerifyApprovedSingle(t *testing.T) {
	f := newFixture()
	id := f.addGate(models.NoObjectionStatusCompleted, "a1")

	err := f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{Approved: true})
	require.Nil(t, err)

	require.Len(t, f.process.calls, 1)
	require.Equal(t, "a1", f.process.calls[0].SingleApplyID)
	require.False(t, f.process.calls[0].RejectStragglers)
}

func TestVerifyForwardFailure(t *testing.T) {
	f := newFixture()
	id := f.addGate(models.NoObjectionStatusCompleted, "")
	f.process.err = fmt.Errorf("ошибка перевода")

	err := f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{Approved: true})
	require.NotNil(t, err)
	// решение откатывается, согласование можно одобрить повторно
	require.Equal(t, models.NoObjectionStatusCompleted, f.gates.recs[id].Status)
	require.Len(t, f.process.calls, 1)

	f.process.err = nil
	err = f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{Approved: true})
	require.Nil(t, err)
	require.Equal(t, models.NoObjectionStatusApproved, f.gates.recs[id].Status)
}

func TestNoObjectionTerminality(t *testing.T) {
	f := newFixture()
	for _, status := range []models.NoObjectionStatus{
		models.NoObjectionStatusApproved,
		models.NoObjectionStatusDenied,
	} {
		id := f.addGate(status, "a1")
		err := f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{Approved: true})
		require.ErrorIs(t, err, ErrAlreadyResolved)
		require.Equal(t, status, f.gates.recs[id].Status)

		err = f.handler.Complete("space-1", id, noobjectionapimodels.TemplateData{Text: "x"})
		require.ErrorIs(t, err, ErrAlreadyResolved)
		require.Equal(t, status, f.gates.recs[id].Status)
	}
	require.Len(t, f.process.calls, 0)
}

func TestVerifyGuards(t *testing.T) {
	f := newFixture()

	t.Run("решение принимает только ответственный", func(t *testing.T) {
		id := f.addGate(models.NoObjectionStatusCompleted, "")
		err := f.handler.Verify("space-1", "user-2", id, noobjectionapimodels.VerifyData{Approved: true})
		require.ErrorIs(t, err, ErrNotResponsible)
	})
	t.Run("до завершения решение невозможно", func(t *testing.T) {
		id := f.addGate(models.NoObjectionStatusPending, "")
		err := f.handler.Verify("space-1", "user-1", id, noobjectionapimodels.VerifyData{Approved: true})
		require.ErrorIs(t, err, ErrNotCompleted)
	})
}

func TestComplete(t *testing.T) {
	f := newFixture()
	id := f.addGate(models.NoObjectionStatusPending, "")

	t.Run("незавершенные записи этапа блокируют", func(t *testing.T) {
		f.records.recs = []dbmodels.StageRecord{
			{JobApplyID: "a1", Kind: models.KindInterview, Status: models.RecordStatusProgress},
		}
		err := f.handler.Complete("space-1", id, noobjectionapimodels.TemplateData{Text: "Записка"})
		require.ErrorIs(t, err, ErrIncompletePreconditions)
	})
	t.Run("после завершения записей проходит", func(t *testing.T) {
		f.records.recs[0].Status = models.RecordStatusCompleted
		err := f.handler.Complete("space-1", id, noobjectionapimodels.TemplateData{Text: "Записка"})
		require.Nil(t, err)
		require.Equal(t, models.NoObjectionStatusCompleted, f.gates.recs[id].Status)
		require.Equal(t, "Записка", f.gates.recs[id].ModifiedTemplate)
	})
	t.Run("повторное завершение отклоняется", func(t *testing.T) {
		err := f.handler.Complete("space-1", id, noobjectionapimodels.TemplateData{Text: "Другой текст"})
		require.ErrorIs(t, err, ErrAlreadyCompleted)
		require.Equal(t, "Записка", f.gates.recs[id].ModifiedTemplate)
	})
}

func TestCreateActiveGuard(t *testing.T) {
	f := newFixture()
	f.gates.active = true
	_, err := f.handler.Create("space-1", noobjectionapimodels.NoObjectionData{
		Title:             "Повторное согласование",
		JobID:             "job-1",
		Stage:             models.StageInterviewed,
		ResponsiblePerson: "user-1",
	})
	require.NotNil(t, err)
}

func TestMemorandum(t *testing.T) {
	f := newFixture()
	id := f.addGate(models.NoObjectionStatusPending, "")
	tplID := "tpl-1"
	f.gates.recs[id].ReportTemplateID = &tplID

	text, err := f.handler.Memorandum("space-1", id)
	require.Nil(t, err)
	require.Equal(t, "По вакансии Аналитик: всего 1, отклонено 0", text)

	t.Run("пороги баллов вакансии доступны в отчете", func(t *testing.T) {
		f.gates.recs[id].ModifiedTemplate = "Проходной балл: {{written_score}}, интервью: {{interview_score}}"
		text, err := f.handler.Memorandum("space-1", id)
		require.Nil(t, err)
		require.Equal(t, "Проходной балл: 60, интервью: 75", text)
	})
	t.Run("скорректированный текст имеет приоритет", func(t *testing.T) {
		f.gates.recs[id].ModifiedTemplate = "Готовый текст"
		text, err := f.handler.Memorandum("space-1", id)
		require.Nil(t, err)
		require.Equal(t, "Готовый текст", text)
	})
}
