package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	repo "github.com/ymgta/go-todo-clean-architecture/internal/domain/repository"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

const defaultSessionTTL = 24 * time.Hour

// AuthService authenticates credentials and issues token pairs.
// Credential verification is delegated to the bcrypt collaborator; the
// User entity never sees a raw password.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger

	// SessionTTL matches the refresh token lifetime so a still-valid
	// refresh token never finds its session already expired.
	SessionTTL time.Duration
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger, SessionTTL: sessionTTL}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, TokenPair, error) {
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, TokenPair{}, entity.NewUnauthorized("invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash(), password) {
		return nil, TokenPair{}, entity.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResult{UserID: u.ID(), Username: u.Username(), Role: u.Role().String()}, pair, nil
}

// issueTokens generates an access/refresh pair and records the session
// in Redis keyed by user id.
func (s *AuthService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID(), u.Username(), u.Role().Code(), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID()).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID(), u.Username(), u.Role().Code(), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID()).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID(),
			"username":   u.Username(),
			"role":       u.Role().Code(),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID())
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", entity.NewUnauthorized("invalid refresh token")
	}
	u, err := s.Users.FindByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", entity.NewUnauthorized("invalid refresh token")
	}
	// Validate current session id matches the token's sid
	if s.Redis != nil {
		key := sessionKey(u.ID())
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", entity.NewUnauthorized("session is no longer active")
		}
	}
	// Rotate session id and tokens
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID(), nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, sessionKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}
