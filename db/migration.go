package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "hr-recruitment-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Space{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Space")
	}
	if err := DB.AutoMigrate(&dbmodels.SpaceUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SpaceUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Job{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Job")
	}
	if err := DB.AutoMigrate(&dbmodels.JobApply{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры JobApply")
	}
	if err := DB.AutoMigrate(&dbmodels.JobApplyStage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры JobApplyStage")
	}
	if err := DB.AutoMigrate(&dbmodels.StageRecord{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StageRecord")
	}
	if err := DB.AutoMigrate(&dbmodels.NoObjection{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NoObjection")
	}
	if err := DB.AutoMigrate(&dbmodels.QuestionSet{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры QuestionSet")
	}
	if err := DB.AutoMigrate(&dbmodels.MessageTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры MessageTemplate")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
