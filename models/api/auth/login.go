package authapimodels

import "github.com/pkg/errors"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("не указаны email или пароль")
	}
	return nil
}

type TokenResponse struct {
	Token string `json:"token"`
}
