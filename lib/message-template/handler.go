package messagetemplate

import (
	"github.com/pkg/errors"

	"hr-recruitment-backend/db"
	messagetemplatestore "hr-recruitment-backend/lib/message-template/store"
	"hr-recruitment-backend/lib/utils/helpers"
	dbmodels "hr-recruitment-backend/models/db"
)

type Provider interface {
	Create(spaceID, name, subject, message string) (string, error)
	GetByID(spaceID, id string) (*dbmodels.MessageTemplate, error)
	List(spaceID string) ([]dbmodels.MessageTemplate, error)
	Render(spaceID, id string, values map[string]string) (subject, message string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store: messagetemplatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store messagetemplatestore.Provider
}

func (i impl) Create(spaceID, name, subject, message string) (string, error) {
	if name == "" || message == "" {
		return "", errors.New("не указаны название или текст шаблона")
	}
	return i.store.Create(dbmodels.MessageTemplate{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		Name:           name,
		Subject:        subject,
		Message:        message,
	})
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.MessageTemplate, error) {
	return i.store.GetByID(spaceID, id)
}

func (i impl) List(spaceID string) ([]dbmodels.MessageTemplate, error) {
	return i.store.List(spaceID)
}

// Render - предпросмотр шаблона с подстановкой значений
func (i impl) Render(spaceID, id string, values map[string]string) (string, string, error) {
	tpl, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка получения шаблона")
	}
	if tpl == nil {
		return "", "", errors.New("шаблон не найден")
	}
	return helpers.ReplacePlaceholders(tpl.Subject, values),
		helpers.ReplacePlaceholders(tpl.Message, values),
		nil
}
