package questionsetstore

import (
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.QuestionSet) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.QuestionSet, err error)
	List(spaceID string) ([]dbmodels.QuestionSet, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.QuestionSet) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.QuestionSet, error) {
	rec := dbmodels.QuestionSet{}
	err := i.db.
		Model(&dbmodels.QuestionSet{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
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

func (i impl) List(spaceID string) (list []dbmodels.QuestionSet, err error) {
	list = []dbmodels.QuestionSet{}
	err = i.db.
		Model(dbmodels.QuestionSet{}).
		Where("space_id = ?", spaceID).
		Order("created_at").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
