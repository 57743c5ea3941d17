package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

// JobPublisher enqueues background jobs.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type Service struct {
	Repo         repo.UserRepository
	Tokens       repo.TokenRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	SessionTTL   time.Duration
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Jobs         JobPublisher
	AppName      string
}

func NewService(users repo.UserRepository, tokens repo.TokenRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *Service {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &Service{
		Repo:         users,
		Tokens:       tokens,
		JWT:          jwt,
		Redis:        rdb,
		SessionTTL:   24 * time.Hour,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

type CreateUserInput struct {
	Email       string
	Password    string
	Name        string
	IsStaff     bool
	IsSuperuser bool
}

// CreateUser normalizes the email, hashes the password and persists a new user.
// An empty password leaves the account without a usable password.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := entity.NewUser(email, hash, in.Name)
	u.IsStaff = in.IsStaff || in.IsSuperuser
	u.IsSuperuser = in.IsSuperuser

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	usersCreated.Add(1)
	s.Logger.WithField("user_id", u.ID).Info("user created")

	_ = s.indexUser(ctx, u)
	s.enqueueWelcome(ctx, u)
	return u, nil
}

// CreateSuperuser creates a user with staff and superuser flags set.
func (s *Service) CreateSuperuser(ctx context.Context, email, password string) (*entity.User, error) {
	return s.CreateUser(ctx, CreateUserInput{Email: email, Password: password, IsStaff: true, IsSuperuser: true})
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// VerifyCredentials returns the active user matching email and password.
// All failures collapse into ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	if password == "" {
		authFailures.Add(1)
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		// equalize timing with the found-user path
		dummyHashOnce.Do(func() { dummyHash, _ = helpers.HashPassword("dummy-password") })
		helpers.CompareHashAndPassword(dummyHash, password)
		authFailures.Add(1)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) || !u.CanAuthenticate() {
		authFailures.Add(1)
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login verifies credentials and returns the user's bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.IssueToken(ctx, u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfileInput carries a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	Name     *string
	Password *string
}

// UpdateProfile applies name/password changes for the owner. Email is never changed here.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	return s.updateUser(ctx, userID, func(u *entity.User) error {
		return applyProfile(u, in)
	})
}

func (s *Service) updateUser(ctx context.Context, userID string, mutate func(u *entity.User) error) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := mutate(u); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.refreshSession(ctx, u)
	_ = s.indexUser(ctx, u)
	return u, nil
}

func applyProfile(u *entity.User, in UpdateProfileInput) error {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return err
		}
		u.Password = hash
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	if plain == "" {
		return helpers.UnusablePassword(), nil
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
