package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// IssueToken returns the user's bearer token, creating the backing record on
// first use. Repeated calls return the same token until it expires.
func (s *Service) IssueToken(ctx context.Context, u *entity.User) (string, error) {
	tok, err := s.Tokens.GetByUserID(ctx, u.ID)
	switch {
	case err == nil && tok.Expired(s.JWT.TTL, time.Now()):
		if err := s.Tokens.DeleteByUserID(ctx, u.ID); err != nil {
			return "", fmt.Errorf("rotate token: %w", err)
		}
		s.dropSession(ctx, u.ID)
		tok = nil
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		tok = nil
	default:
		return "", fmt.Errorf("load token: %w", err)
	}

	if tok == nil {
		tok = &entity.AuthToken{Key: uuid.NewString(), UserID: u.ID}
		if err := s.Tokens.Create(ctx, tok); err != nil {
			return "", fmt.Errorf("create token: %w", err)
		}
	}

	signed, err := s.JWT.GenerateToken(u.ID, tok.Key, tok.CreatedAt)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign token failed")
		return "", err
	}
	s.cacheSession(ctx, u, tok.Key)
	tokensIssued.Add(1)
	return signed, nil
}

// ResolveToken maps a presented bearer token to its active owner.
func (s *Service) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	key, cached := s.cachedKey(ctx, claims.UserID)
	if !cached {
		tok, err := s.Tokens.GetByUserID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrInvalidToken
			}
			return nil, fmt.Errorf("load token: %w", err)
		}
		key = tok.Key
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(claims.ID)) != 1 {
		return nil, ErrInvalidToken
	}

	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.CanAuthenticate() {
		return nil, ErrInvalidToken
	}
	if !cached {
		s.cacheSession(ctx, u, key)
	}
	return u, nil
}

func (s *Service) cachedKey(ctx context.Context, userID string) (string, bool) {
	if s.Redis == nil {
		return "", false
	}
	key, err := s.Redis.HGet(ctx, sessionKey(userID), "jti").Result()
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

func (s *Service) cacheSession(ctx context.Context, u *entity.User, tokenKey string) {
	if s.Redis == nil {
		return
	}
	fields := map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"jti":        tokenKey,
		"created_at": nowRFC3339(),
	}
	key := sessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.SessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

// refreshSession updates cached profile fields, keeping the remaining TTL.
func (s *Service) refreshSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := sessionKey(u.ID)
	ttl, err := s.Redis.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		return
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"name":       u.Name,
		"updated_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *Service) dropSession(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("redis del failed")
	}
}
