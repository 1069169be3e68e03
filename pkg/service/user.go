package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openbid/auction-house/pkg/auth"
	"github.com/openbid/auction-house/pkg/database"
	"github.com/openbid/auction-house/pkg/model"
)

type User interface {
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (token string, err error)
}

type UserGeneric struct {
	Repo      database.UserRepository
	JWTSecret string
	TokenTTL  time.Duration
}

func (ug *UserGeneric) SignUp(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("can't hash password: %w", err)
	}

	return ug.Repo.CreateUser(ctx, model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
}

func (ug *UserGeneric) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := ug.Repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return "", model.ErrInvalidCredentials
	case err != nil:
		return "", fmt.Errorf("can't get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(ug.JWTSecret, user.Username, ug.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("can't generate token: %w", err)
	}

	return token, nil
}
