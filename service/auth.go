package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehunt/mazehunt-api/domain"
	"github.com/mazehunt/mazehunt-api/service/i"
)

const tokenLifetime = 24 * time.Hour

var errInvalidCredentials = errors.New("invalid username or password")

// Auth registers players and signs them in.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service requires a user repo and a tokenizer")
	}
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}, nil
}

func (a *Auth) Register(username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	return a.userRepo.Save(user)
}

func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", errInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", errInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
