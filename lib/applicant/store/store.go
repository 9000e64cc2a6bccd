package applystore

import (
	"strings"

	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.JobApply) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.JobApply, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateStatus(ids []string, status models.StageKey, remarks string) error
	ListIDs(spaceID string, filter dbmodels.ApplyEligibilityFilter) ([]string, error)
	List(spaceID, jobID string, filter dbmodels.ApplyListFilter) ([]dbmodels.JobApply, error)
	ListByIDs(ids []string) ([]dbmodels.JobApply, error)
	IsExistByEmail(spaceID, jobID, email string) (found bool, err error)
	CountAdvanced(jobID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobApply) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.JobApply, error) {
	rec := dbmodels.JobApply{}
	err := i.db.
		Model(&dbmodels.JobApply{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Job").
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
		Model(&dbmodels.JobApply{}).
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

func (i impl) UpdateStatus(ids []string, status models.StageKey, remarks string) error {
	if len(ids) == 0 {
		return nil
	}
	updMap := map[string]interface{}{
		"status": status,
	}
	if remarks != "" {
		updMap["remarks"] = remarks
	}
	return i.db.
		Model(&dbmodels.JobApply{}).
		Where("id in (?)", ids).
		Updates(updMap).
		Error
}

func (i impl) ListIDs(spaceID string, filter dbmodels.ApplyEligibilityFilter) ([]string, error) {
	ids := []string{}
	tx := i.db.
		Model(&dbmodels.JobApply{}).
		Where("job_applies.space_id = ?", spaceID).
		Where("job_applies.job_id = ?", filter.JobID)
	if len(filter.ApplyIDs) != 0 {
		tx = tx.Where("job_applies.id in (?)", filter.ApplyIDs)
	}
	if filter.HasRecordOf != models.KindNone {
		tx = tx.Joins("join stage_records cur on cur.job_apply_id = job_applies.id and cur.kind = ?", filter.HasRecordOf)
		if len(filter.Categories) != 0 {
			tx = tx.Where("cur.category in (?)", filter.Categories)
		}
		if filter.ScoreGte != nil {
			tx = tx.Where("cur.score >= ?", *filter.ScoreGte)
		}
		if filter.RecordVerified {
			tx = tx.Where("cur.verified = true")
		}
		if filter.RecordCompleted {
			tx = tx.Where("cur.status = ?", models.RecordStatusCompleted)
		}
	}
	if filter.MissingRecordOf != models.KindNone {
		tx = tx.
			Joins("left join stage_records nxt on nxt.job_apply_id = job_applies.id and nxt.kind = ?", filter.MissingRecordOf).
			Where("nxt.id is null")
	}
	if len(filter.ExcludeStatuses) != 0 {
		tx = tx.Where("job_applies.status not in (?)", filter.ExcludeStatuses)
	}
	if filter.ExcludeRostered {
		tx = tx.Where("(job_applies.params ->> 'rostered')::boolean is not true")
	}
	err := tx.Pluck("job_applies.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) List(spaceID, jobID string, filter dbmodels.ApplyListFilter) (list []dbmodels.JobApply, err error) {
	list = []dbmodels.JobApply{}
	tx := i.db.
		Model(dbmodels.JobApply{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID)
	if len(filter.Statuses) != 0 {
		tx = tx.Where("status in (?)", filter.Statuses)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(CONCAT(last_name,' ', first_name, ' ', middle_name)) like ? or phone like ? or email like ?", searchValue, searchValue, searchValue)
	}
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByIDs(ids []string) (list []dbmodels.JobApply, err error) {
	list = []dbmodels.JobApply{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Model(dbmodels.JobApply{}).
		Where("id in (?)", ids).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) IsExistByEmail(spaceID, jobID, email string) (found bool, err error) {
	var exists bool
	err = i.db.Model(&dbmodels.JobApply{}).
		Select("count(*) > 0").
		Where("space_id = ?", spaceID).
		Where("job_id = ? and LOWER(email) = ?", jobID, strings.ToLower(email)).
		Find(&exists).
		Error
	return exists, err
}

// CountAdvanced - отклики, ушедшие дальше этапа applied; пока такие есть,
// менять список этапов вакансии нельзя
func (i impl) CountAdvanced(jobID string) (count int64, err error) {
	err = i.db.Model(&dbmodels.JobApply{}).
		Where("job_id = ?", jobID).
		Where("status <> ?", models.StageApplied).
		Count(&count).
		Error
	return count, err
}
