package postgres

import (
	"context"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

type TokenRepository struct {
	db DB
}

func NewTokenRepository(db DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) GetByUserID(ctx context.Context, userID string) (*entity.AuthToken, error) {
	t := &entity.AuthToken{}
	row := r.db.QueryRow(ctx, `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

// Create inserts the token. When the user already owns one (a concurrent
// request won), t is overwritten with the stored token.
func (r *TokenRepository) Create(ctx context.Context, t *entity.AuthToken) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key, created_at
	`, t.Key, t.UserID)
	if err := row.Scan(&t.Key, &t.CreatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	return err
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
