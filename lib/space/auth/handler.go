package spaceauthhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"hr-recruitment-backend/db"
	spaceusersstore "hr-recruitment-backend/lib/space/users/store"
	authutils "hr-recruitment-backend/lib/utils/auth-utils"
	authapimodels "hr-recruitment-backend/models/api/auth"
)

type Provider interface {
	Login(email, password string) (*authapimodels.TokenResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		users: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	users spaceusersstore.Provider
}

func (i impl) Login(email, password string) (*authapimodels.TokenResponse, error) {
	user, err := i.users.GetByEmail(email)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil || !user.IsActive {
		return nil, errors.New("пользователь не найден или заблокирован")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("неверный пароль")
	}
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.SpaceID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования токена")
	}
	log.WithField("user_id", user.ID).Info("user logged in")
	return &authapimodels.TokenResponse{Token: token}, nil
}
