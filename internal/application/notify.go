package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

// enqueueWelcome publishes a welcome email job; failures are only logged.
func (s *Service) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil {
		return
	}
	data := templates.WelcomeData{AppName: s.AppName, Name: u.Name, Email: u.Email, TimeAt: time.Now()}
	job := mailer.EmailJob{To: u.Email, Template: templates.Welcome, Data: data.ToMap()}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Jobs.PublishJSON(c, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish welcome email")
	}
}
