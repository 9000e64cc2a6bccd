package noobjectionstore

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.NoObjection) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.NoObjection, err error)
	Update(id string, updMap map[string]interface{}) error
	List(spaceID, jobID string, statuses []models.NoObjectionStatus) ([]dbmodels.NoObjection, error)
	IsExistActive(jobID string, stage models.StageKey) (found bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.NoObjection) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.NoObjection, error) {
	rec := dbmodels.NoObjection{}
	err := i.db.
		Model(&dbmodels.NoObjection{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Job").
		Preload("JobApply").
		Preload("ResponsiblePerson").
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
		Model(&dbmodels.NoObjection{}).
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

func (i impl) List(spaceID, jobID string, statuses []models.NoObjectionStatus) (list []dbmodels.NoObjection, err error) {
	list = []dbmodels.NoObjection{}
	tx := i.db.
		Model(dbmodels.NoObjection{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID)
	if len(statuses) != 0 {
		tx = tx.Where("status in (?)", statuses)
	}
	err = tx.
		Order("created_at desc").
		Preload("ResponsiblePerson").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// IsExistActive - по этапу вакансии уже есть неотклоненный гейт
func (i impl) IsExistActive(jobID string, stage models.StageKey) (found bool, err error) {
	var exists bool
	err = i.db.Model(&dbmodels.NoObjection{}).
		Select("count(*) > 0").
		Where("job_id = ?", jobID).
		Where("stage = ?", stage).
		Where("status in (?)", []models.NoObjectionStatus{
			models.NoObjectionStatusPending,
			models.NoObjectionStatusCompleted,
			models.NoObjectionStatusApproved,
		}).
		Find(&exists).
		Error
	return exists, err
}
