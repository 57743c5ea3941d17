package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

type TokenRepository struct {
	mu     sync.Mutex
	byUser map[string]entity.AuthToken
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{byUser: make(map[string]entity.AuthToken)}
}

func (r *TokenRepository) GetByUserID(_ context.Context, userID string) (*entity.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

// Create keeps an existing token for the user, like the SQL upsert.
func (r *TokenRepository) Create(_ context.Context, t *entity.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.byUser[t.UserID]; ok {
		*t = cur
		return nil
	}
	t.CreatedAt = time.Now()
	r.byUser[t.UserID] = *t
	return nil
}

func (r *TokenRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
	return nil
}

// Put stores t as-is; tests use it to seed aged tokens.
func (r *TokenRepository) Put(t entity.AuthToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[t.UserID] = t
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
