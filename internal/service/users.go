package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/logging"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/mykafka"
	"github.com/Skotchmaster/petompp/internal/query"
	"github.com/Skotchmaster/petompp/internal/repo"
)

// UserColumns are the public sort names accepted by the user listing.
var UserColumns = map[string]string{
	"id":              "id",
	"name":            "name",
	"normalized_name": "normalized_name",
	"role":            "role",
	"confirmed":       "confirmed",
	"created_at":      "created_at",
	"deleted_at":      "deleted_at",
}

type UserService struct {
	Repo      *repo.GormRepo
	Codec     *auth.TokenCodec
	Publisher mykafka.Publisher
	Columns   *query.Registry
	Now       func() time.Time
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserPage struct {
	Total int64
	Items []models.User
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *UserService) Register(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)

	settings, err := s.Repo.GetUserSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := settings.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := settings.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	cred, err := auth.NewCredential(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:           name,
		NormalizedName: models.NormalizeName(name),
		Password:       cred,
		Role:           auth.RoleUser,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, ErrUserNameTaken
		}
		return nil, err
	}

	s.publish(ctx, mykafka.UserRegistered, user)
	return user, nil
}

// Login never tells an unknown or deleted user apart from a wrong password.
func (s *UserService) Login(ctx context.Context, name, password string) (*LoginResult, error) {
	user, err := s.Repo.GetUserByName(ctx, models.NormalizeName(strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.IsDeleted() || !user.Password.Verify(password) {
		return nil, auth.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, ErrUserNotConfirmed
	}

	token, _, err := s.Codec.IssueForUser(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}
	if user.IsDeleted() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, spec query.PageSpec) (*UserPage, error) {
	plan, err := query.BuildPlan(spec, s.Columns)
	if err != nil {
		return nil, err
	}
	total, users, err := s.Repo.ListUsers(ctx, plan)
	if err != nil {
		return nil, err
	}
	return &UserPage{Total: total, Items: users}, nil
}

func (s *UserService) Activate(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.ActivateUser(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}
	s.publish(ctx, mykafka.UserActivated, user)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.SoftDeleteUser(ctx, id, s.now())
	if err != nil {
		return nil, mapUserErr(err)
	}
	s.publish(ctx, mykafka.UserDeleted, user)
	return user, nil
}

func (s *UserService) publish(ctx context.Context, kind string, u *models.User) {
	if s.Publisher == nil {
		return
	}
	event := mykafka.UserEvent{Type: kind, UserID: u.ID, Name: u.Name, At: s.now()}
	if err := s.Publisher.PublishEvent(ctx, mykafka.UserTopic, fmt.Sprint(u.ID), event); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", mykafka.UserTopic, "event", kind, "error", err)
	}
}

func mapUserErr(err error) error {
	if errors.Is(err, repo.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
