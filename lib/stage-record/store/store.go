package stagerecordstore

import (
	"hr-recruitment-backend/lib/recruitment/stages"
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	BulkCreate(recs []dbmodels.StageRecord) ([]dbmodels.StageRecord, error)
	GetByID(id string) (*dbmodels.StageRecord, error)
	Update(id string, updMap map[string]interface{}) error
	ListByApplies(applyIDs []string, kind models.RecordKind) ([]dbmodels.StageRecord, error)
	CompleteByApplies(applyIDs []string, kind models.RecordKind) error
	ListForJob(spaceID string, kind models.RecordKind, filter stages.PartitionFilter) ([]dbmodels.StageRecord, error)
	CountUnfinished(jobID string, kind models.RecordKind) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) BulkCreate(recs []dbmodels.StageRecord) ([]dbmodels.StageRecord, error) {
	if len(recs) == 0 {
		return recs, nil
	}
	err := i.db.Omit(clause.Associations).Create(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания рабочих записей этапа")
	}
	return recs, nil
}

func (i impl) GetByID(id string) (*dbmodels.StageRecord, error) {
	rec := dbmodels.StageRecord{}
	err := i.db.
		Model(&dbmodels.StageRecord{}).
		Where("id = ?", id).
		Preload("JobApply").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.StageRecord{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) ListByApplies(applyIDs []string, kind models.RecordKind) (list []dbmodels.StageRecord, err error) {
	list = []dbmodels.StageRecord{}
	if len(applyIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Model(dbmodels.StageRecord{}).
		Where("job_apply_id in (?)", applyIDs).
		Where("kind = ?", kind).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CompleteByApplies - завершить записи вида kind у откликов applyIDs
func (i impl) CompleteByApplies(applyIDs []string, kind models.RecordKind) error {
	if len(applyIDs) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.StageRecord{}).
		Where("job_apply_id in (?)", applyIDs).
		Where("kind = ?", kind).
		Update("status", models.RecordStatusCompleted).
		Error
}

// ListForJob - записи вида kind по вакансии с разбиением pending/forwarded
// по наличию записи следующего этапа
func (i impl) ListForJob(spaceID string, kind models.RecordKind, filter stages.PartitionFilter) (list []dbmodels.StageRecord, err error) {
	list = []dbmodels.StageRecord{}
	tx := i.db.
		Model(dbmodels.StageRecord{}).
		Joins("join job_applies on job_applies.id = stage_records.job_apply_id").
		Where("job_applies.space_id = ?", spaceID).
		Where("job_applies.job_id = ?", filter.JobID).
		Where("stage_records.kind = ?", kind)
	if !filter.SkipNextCheck {
		tx = tx.Joins("left join stage_records nxt on nxt.job_apply_id = job_applies.id and nxt.kind = ?", filter.NextKind)
		if filter.NextIsNull {
			tx = tx.Where("nxt.id is null")
		} else {
			tx = tx.Where("nxt.id is not null")
		}
	}
	err = tx.
		Order("stage_records.score desc nulls last").
		Preload("JobApply").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// CountUnfinished - записи вида kind по вакансии, еще не в статусе Completed
func (i impl) CountUnfinished(jobID string, kind models.RecordKind) (count int64, err error) {
	err = i.db.Model(&dbmodels.StageRecord{}).
		Joins("join job_applies on job_applies.id = stage_records.job_apply_id").
		Where("job_applies.job_id = ?", jobID).
		Where("stage_records.kind = ?", kind).
		Where("stage_records.status <> ?", models.RecordStatusCompleted).
		Count(&count).
		Error
	return count, err
}
