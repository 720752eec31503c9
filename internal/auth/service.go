// Package auth holds the registration and login use cases.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/notify"
	"schoolplanner/internal/password"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	FindByUsername(ctx context.Context, username string) (entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type RegisterInput struct {
	Username string `form:"username" validate:"required,max=64"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,maxbytes=72"`
	Role     string `form:"role" validate:"omitempty,oneof=admin teacher student"`
}

type Service struct {
	users    UserStore
	notifier notify.Notifier
	validate *validator.Validate
	log      *slog.Logger
}

func NewService(users UserStore, notifier notify.Notifier, validate *validator.Validate, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		notifier: notifier,
		validate: validate,
		log:      log,
	}
}

// Register creates a user account. Duplicate usernames or emails are reported
// as apperror.ErrConflict and nothing is written.
func (s *Service) Register(ctx context.Context, in RegisterInput) (entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)

	if err := s.validate.Struct(in); err != nil {
		return entity.User{}, apperror.FromValidator(err)
	}

	role := entity.Role(in.Role)
	if role == "" {
		role = entity.RoleStudent
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return entity.User{}, err
	}
	if exists {
		return entity.User{}, apperror.ErrConflict
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return entity.User{}, err
	}

	u := entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return entity.User{}, err
	}

	if err := s.notifier.RegistrationEmail(ctx, u.Email, u.Username); err != nil {
		s.log.WarnContext(ctx, "registration email not sent", "user_id", u.ID, "error", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Login checks the credentials. The error never tells which of the two was wrong.
func (s *Service) Login(ctx context.Context, username, plain string) (entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return entity.User{}, apperror.ErrInvalidCredentials
	}

	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, apperror.ErrNotFound) {
		return entity.User{}, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return entity.User{}, errors.Wrap(err, "looking up user")
	}

	if !password.Verify(plain, u.PasswordHash) {
		return entity.User{}, apperror.ErrInvalidCredentials
	}
	return u, nil
}
