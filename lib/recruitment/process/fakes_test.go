package recruitmentprocess

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"hr-recruitment-backend/lib/recruitment/stages"
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
)

// world - состояние фейковых сторов, общее для одного теста
type world struct {
	applies map[string]*dbmodels.JobApply
	order   []string
	records []*dbmodels.StageRecord
	history []dbmodels.JobApplyStage
	nextID  int
}

func newWorld() *world {
	return &world{
		applies: map[string]*dbmodels.JobApply{},
	}
}

func (w *world) addApply(id, jobID string, status models.StageKey, rostered bool) {
	w.applies[id] = &dbmodels.JobApply{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   "space-1",
		},
		JobID:  jobID,
		Status: status,
		Params: dbmodels.ApplyParams{Rostered: rostered},
	}
	w.order = append(w.order, id)
}

func (w *world) addRecord(applyID string, kind models.RecordKind, score *float64, category string, status models.RecordStatus, verified bool) {
	w.nextID++
	w.records = append(w.records, &dbmodels.StageRecord{
		BaseModel:  dbmodels.BaseModel{ID: fmt.Sprintf("rec-%d", w.nextID)},
		JobApplyID: applyID,
		Kind:       kind,
		Score:      score,
		Category:   category,
		Status:     status,
		Verified:   verified,
	})
}

func (w *world) findRecord(applyID string, kind models.RecordKind) *dbmodels.StageRecord {
	for _, rec := range w.records {
		if rec.JobApplyID == applyID && rec.Kind == kind {
			return rec
		}
	}
	return nil
}

func (w *world) recordsOf(kind models.RecordKind) []*dbmodels.StageRecord {
	out := []*dbmodels.StageRecord{}
	for _, rec := range w.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

func (w *world) historyOf(applyID string) []dbmodels.JobApplyStage {
	out := []dbmodels.JobApplyStage{}
	for _, row := range w.history {
		if row.JobApplyID == applyID {
			out = append(out, row)
		}
	}
	return out
}

type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeApplies struct {
	w *world
}

func (f fakeApplies) Create(rec dbmodels.JobApply) (string, error) { return rec.ID, nil }

func (f fakeApplies) GetByID(spaceID, id string) (*dbmodels.JobApply, error) {
	return f.w.applies[id], nil
}

func (f fakeApplies) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeApplies) UpdateStatus(ids []string, status models.StageKey, remarks string) error {
	for _, id := range ids {
		rec, ok := f.w.applies[id]
		if !ok {
			return errors.New("запись не найдена")
		}
		rec.Status = status
		if remarks != "" {
			rec.Remarks = remarks
		}
	}
	return nil
}

func (f fakeApplies) ListIDs(spaceID string, filter dbmodels.ApplyEligibilityFilter) ([]string, error) {
	ids := []string{}
	for _, id := range f.w.order {
		rec := f.w.applies[id]
		if rec.JobID != filter.JobID {
			continue
		}
		if len(filter.ApplyIDs) != 0 && !containsStr(filter.ApplyIDs, id) {
			continue
		}
		if filter.ExcludeRostered && rec.Params.Rostered {
			continue
		}
		if containsStage(filter.ExcludeStatuses, rec.Status) {
			continue
		}
		if filter.HasRecordOf != models.KindNone {
			cur := f.w.findRecord(id, filter.HasRecordOf)
			if cur == nil {
				continue
			}
			if len(filter.Categories) != 0 && !containsStr(filter.Categories, cur.Category) {
				continue
			}
			if filter.ScoreGte != nil && (cur.Score == nil || *cur.Score < *filter.ScoreGte) {
				continue
			}
			if filter.RecordVerified && !cur.Verified {
				continue
			}
			if filter.RecordCompleted && cur.Status != models.RecordStatusCompleted {
				continue
			}
		}
		if filter.MissingRecordOf != models.KindNone && f.w.findRecord(id, filter.MissingRecordOf) != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (f fakeApplies) List(spaceID, jobID string, filter dbmodels.ApplyListFilter) ([]dbmodels.JobApply, error) {
	return nil, nil
}

func (f fakeApplies) ListByIDs(ids []string) ([]dbmodels.JobApply, error) {
	out := []dbmodels.JobApply{}
	for _, id := range ids {
		if rec, ok := f.w.applies[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f fakeApplies) IsExistByEmail(spaceID, jobID, email string) (bool, error) { return false, nil }

func (f fakeApplies) CountAdvanced(jobID string) (int64, error) { return 0, nil }

type fakeRecords struct {
	w *world
}

func (f fakeRecords) BulkCreate(recs []dbmodels.StageRecord) ([]dbmodels.StageRecord, error) {
	for k := range recs {
		if f.w.findRecord(recs[k].JobApplyID, recs[k].Kind) != nil {
			return nil, errors.Errorf("повторная запись этапа: %v %v", recs[k].JobApplyID, recs[k].Kind)
		}
		f.w.nextID++
		recs[k].ID = fmt.Sprintf("rec-%d", f.w.nextID)
		rec := recs[k]
		f.w.records = append(f.w.records, &rec)
	}
	return recs, nil
}

func (f fakeRecords) GetByID(id string) (*dbmodels.StageRecord, error) {
	for _, rec := range f.w.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (f fakeRecords) Update(id string, updMap map[string]interface{}) error { return nil }

func (f fakeRecords) ListByApplies(applyIDs []string, kind models.RecordKind) ([]dbmodels.StageRecord, error) {
	out := []dbmodels.StageRecord{}
	for _, rec := range f.w.records {
		if rec.Kind == kind && containsStr(applyIDs, rec.JobApplyID) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f fakeRecords) CompleteByApplies(applyIDs []string, kind models.RecordKind) error {
	for _, rec := range f.w.records {
		if rec.Kind == kind && containsStr(applyIDs, rec.JobApplyID) {
			rec.Status = models.RecordStatusCompleted
		}
	}
	return nil
}

func (f fakeRecords) ListForJob(spaceID string, kind models.RecordKind, filter stages.PartitionFilter) ([]dbmodels.StageRecord, error) {
	return nil, nil
}

func (f fakeRecords) CountUnfinished(jobID string, kind models.RecordKind) (int64, error) {
	count := int64(0)
	for _, rec := range f.w.records {
		if rec.Kind == kind && rec.Status != models.RecordStatusCompleted {
			count++
		}
	}
	return count, nil
}

type fakeHistory struct {
	w *world
}

func (f fakeHistory) BulkCreate(applyIDs []string, status models.StageKey, remarks string) error {
	for _, id := range applyIDs {
		f.w.history = append(f.w.history, dbmodels.JobApplyStage{
			JobApplyID: id,
			Status:     status,
			Remarks:    remarks,
		})
	}
	return nil
}

func (f fakeHistory) List(applyID string) ([]dbmodels.JobApplyStage, error) {
	return f.w.historyOf(applyID), nil
}

func newTestHandler(w *world) impl {
	st := stores{
		applies: fakeApplies{w: w},
		history: fakeHistory{w: w},
		records: fakeRecords{w: w},
	}
	return impl{
		tx:     fakeTx{},
		stores: func(tx *gorm.DB) stores { return st },
		main:   st,
	}
}

func containsStr(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsStage(list []models.StageKey, v models.StageKey) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
