package messagetemplatestore

import (
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.MessageTemplate) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.MessageTemplate, err error)
	List(spaceID string) ([]dbmodels.MessageTemplate, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.MessageTemplate) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.MessageTemplate, error) {
	rec := dbmodels.MessageTemplate{}
	err := i.db.
		Model(&dbmodels.MessageTemplate{}).
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

func (i impl) List(spaceID string) (list []dbmodels.MessageTemplate, err error) {
	list = []dbmodels.MessageTemplate{}
	err = i.db.
		Model(dbmodels.MessageTemplate{}).
		Where("space_id = ?", spaceID).
		Order("name").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
