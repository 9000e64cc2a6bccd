package applyhistorystore

import (
	"hr-recruitment-backend/models"
	dbmodels "hr-recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	BulkCreate(applyIDs []string, status models.StageKey, remarks string) error
	List(applyID string) (list []dbmodels.JobApplyStage, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) BulkCreate(applyIDs []string, status models.StageKey, remarks string) error {
	if len(applyIDs) == 0 {
		return nil
	}
	recs := make([]dbmodels.JobApplyStage, 0, len(applyIDs))
	for _, applyID := range applyIDs {
		recs = append(recs, dbmodels.JobApplyStage{
			JobApplyID: applyID,
			Status:     status,
			Remarks:    remarks,
		})
	}
	err := i.db.Create(&recs).Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения истории статусов откликов")
	}
	return nil
}

func (i impl) List(applyID string) (list []dbmodels.JobApplyStage, err error) {
	list = []dbmodels.JobApplyStage{}
	err = i.db.
		Model(dbmodels.JobApplyStage{}).
		Where("job_apply_id = ?", applyID).
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
