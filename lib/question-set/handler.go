package questionset

import (
	"github.com/pkg/errors"

	"hr-recruitment-backend/db"
	questionsetstore "hr-recruitment-backend/lib/question-set/store"
	dbmodels "hr-recruitment-backend/models/db"
)

type Provider interface {
	Create(spaceID string, rec dbmodels.QuestionSet) (string, error)
	GetByID(spaceID, id string) (*dbmodels.QuestionSet, error)
	List(spaceID string) ([]dbmodels.QuestionSet, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store: questionsetstore.NewInstance(db.DB),
	}
}

type impl struct {
	store questionsetstore.Provider
}

func (i impl) Create(spaceID string, rec dbmodels.QuestionSet) (string, error) {
	if rec.Title == "" {
		return "", errors.New("не указано название набора вопросов")
	}
	if len(rec.Questions) == 0 {
		return "", errors.New("набор вопросов не может быть пустым")
	}
	rec.SpaceID = spaceID
	return i.store.Create(rec)
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.QuestionSet, error) {
	return i.store.GetByID(spaceID, id)
}

func (i impl) List(spaceID string) ([]dbmodels.QuestionSet, error) {
	return i.store.List(spaceID)
}
