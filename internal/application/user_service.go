package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	repo "github.com/ymgta/go-todo-clean-architecture/internal/domain/repository"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

// UserService orchestrates user management use cases. Privilege checks
// against the acting user happen here, never in handlers.
type UserService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

type RegisterUserCommand struct {
	Username      string
	Email         string
	FirstName     string
	FirstNameRuby string
	LastName      string
	LastNameRuby  string
	Password      string
}

type UpdateProfileCommand struct {
	UserID        string
	FirstName     string
	FirstNameRuby string
	LastName      string
	LastNameRuby  string
}

type InitializePasswordCommand struct {
	UserID      string
	NewPassword string
}

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type ChangeRoleCommand struct {
	ActorID  string
	TargetID string
	RoleCode int
}

type UserResult struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email,omitempty"`
	FirstName           string    `json:"first_name,omitempty"`
	FirstNameRuby       string    `json:"first_name_ruby,omitempty"`
	LastName            string    `json:"last_name,omitempty"`
	LastNameRuby        string    `json:"last_name_ruby,omitempty"`
	Role                string    `json:"role"`
	RoleCode            int       `json:"role_code"`
	PasswordInitialized bool      `json:"password_initialized"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func toUserResult(u *entity.User) *UserResult {
	return &UserResult{
		ID:                  u.ID(),
		Username:            u.Username(),
		Email:               u.Email(),
		FirstName:           u.FirstName(),
		FirstNameRuby:       u.FirstNameRuby(),
		LastName:            u.LastName(),
		LastNameRuby:        u.LastNameRuby(),
		Role:                u.Role().String(),
		RoleCode:            u.Role().Code(),
		PasswordInitialized: u.PasswordInitialized(),
		CreatedAt:           u.CreatedAt(),
		UpdatedAt:           u.UpdatedAt(),
	}
}

// Register creates a plain user account. The registration surface is
// public, so the role is never caller-controlled; promotion goes through
// the admin-gated ChangeRole.
func (s *UserService) Register(ctx context.Context, cmd RegisterUserCommand) (*UserResult, error) {
	existing, err := s.Users.FindByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.NewConflict("username is already taken")
	}

	hash, err := helpers.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}
	u, err := entity.NewUser(cmd.Username, cmd.Email, cmd.FirstName, cmd.FirstNameRuby, cmd.LastName, cmd.LastNameRuby, hash, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	saved, err := s.Users.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", saved.ID()).Info("user registered")
	}
	return toUserResult(saved), nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*UserResult, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResult(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*UserResult, error) {
	u, err := s.load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(cmd.FirstName, cmd.FirstNameRuby, cmd.LastName, cmd.LastNameRuby); err != nil {
		return nil, err
	}
	saved, err := s.Users.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	return toUserResult(saved), nil
}

// InitializePassword sets the first self-chosen password after an
// administrator created the account with a provisional one.
func (s *UserService) InitializePassword(ctx context.Context, cmd InitializePasswordCommand) (*UserResult, error) {
	u, err := s.load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(cmd.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := u.InitializePassword(hash); err != nil {
		return nil, err
	}
	saved, err := s.Users.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	return toUserResult(saved), nil
}

func (s *UserService) ChangePassword(ctx context.Context, cmd ChangePasswordCommand) (*UserResult, error) {
	u, err := s.load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash(), cmd.CurrentPassword) {
		return nil, entity.NewUnauthorized("current password does not match")
	}
	hash, err := helpers.HashPassword(cmd.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := u.ChangePassword(hash); err != nil {
		return nil, err
	}
	saved, err := s.Users.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	return toUserResult(saved), nil
}

func (s *UserService) ChangeRole(ctx context.Context, cmd ChangeRoleCommand) (*UserResult, error) {
	actor, err := s.load(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, entity.NewForbidden("changing roles requires admin privilege")
	}
	role, err := entity.RoleFromCode(cmd.RoleCode)
	if err != nil {
		return nil, err
	}

	target, err := s.load(ctx, cmd.TargetID)
	if err != nil {
		return nil, err
	}
	if err := target.ChangeRole(role); err != nil {
		return nil, err
	}
	saved, err := s.Users.Save(ctx, target)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", saved.ID()).WithField("role", role.String()).Info("role changed")
	}
	return toUserResult(saved), nil
}

func (s *UserService) ListUsers(ctx context.Context, actorID string) ([]*UserResult, error) {
	actor, err := s.load(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, entity.NewForbidden("listing users requires manager privilege")
	}
	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*UserResult, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResult(u))
	}
	return out, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	actor, err := s.load(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return entity.NewForbidden("deleting users requires admin privilege")
	}
	if _, err := s.load(ctx, targetID); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, targetID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", targetID).Info("user deleted")
	}
	return nil
}

func (s *UserService) load(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, entity.NewNotFound("user not found")
	}
	return u, nil
}
