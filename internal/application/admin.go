package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
)

const maxPageSize = 100

// ListUsers returns a page of users ordered by creation time.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AdminUpdateInput is a partial update of any account field except email.
type AdminUpdateInput struct {
	UpdateProfileInput
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

func (s *Service) AdminUpdateUser(ctx context.Context, userID string, in AdminUpdateInput) (*entity.User, error) {
	u, err := s.updateUser(ctx, userID, func(u *entity.User) error {
		if err := applyProfile(u, in.UpdateProfileInput); err != nil {
			return err
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		if in.IsStaff != nil {
			u.IsStaff = *in.IsStaff
		}
		if in.IsSuperuser != nil {
			u.IsSuperuser = *in.IsSuperuser
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		s.dropSession(ctx, u.ID)
	}
	return u, nil
}
