package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openbid/auction-house/pkg/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

type UserDatabase struct {
	DB *sql.DB
}

func (ud *UserDatabase) CreateUser(ctx context.Context, user model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	q := `
		insert into users (username, password_hash, created_at)
		values ($1, $2, $3)
	`
	_, err := ud.DB.ExecContext(ctx, q, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrUserExists
		}

		return fmt.Errorf("can't insert user: %w", err)
	}

	return nil
}

func (ud *UserDatabase) GetByUsername(ctx context.Context, username string) (model.User, error) {
	q := `
		select username, password_hash, created_at
		from users
		where username = $1
	`
	var u model.User
	err := ud.DB.QueryRowContext(ctx, q, username).Scan(&u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return model.User{}, mapError(err)
	}

	return u, nil
}
