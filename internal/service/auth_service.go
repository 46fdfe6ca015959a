package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/model"
	"github.com/iliyamo/eldercare-records/internal/repository"
	"github.com/iliyamo/eldercare-records/internal/utils"
)

// Messages returned to clients for authentication failures.
const (
	MsgBadCredentials = "Incorrect email or password"
	MsgInactiveUser   = "Inactive user"
	MsgInvalidToken   = "Could not validate credentials"
)

// AuthConfig carries token and hashing parameters.
type AuthConfig struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// AuthService registers users and issues and rotates their tokens.
type AuthService struct {
	users  *repository.UserRepo
	tokens *repository.TokenRepo
	cfg    AuthConfig
	log    *zap.Logger
}

func NewAuthService(users *repository.UserRepo, tokens *repository.TokenRepo, cfg AuthConfig, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, tokens: tokens, cfg: cfg, log: log}
}

// Register creates an active account.  A taken email is a conflict.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (dto.User, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return dto.User{}, err
	}
	hash, err := utils.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return dto.User{}, err
	}
	id, err := s.users.Create(ctx, req.Email, hash, req.FullName)
	if err != nil {
		return dto.User{}, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return dto.User{}, err
	}
	s.log.Info("user registered", zap.Uint64("user_id", id))
	return dto.FromUser(u), nil
}

// Login verifies credentials and returns a fresh token pair.  Unknown
// emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := validate(req); err != nil {
		return dto.LoginResponse{}, err
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrNotFound) {
		return dto.LoginResponse{}, model.Unauthorized(MsgBadCredentials)
	}
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return dto.LoginResponse{}, model.Unauthorized(MsgBadCredentials)
	}
	if !u.IsActive {
		return dto.LoginResponse{}, model.Unauthorized(MsgInactiveUser)
	}
	return s.issue(ctx, u)
}

// Refresh rotates a refresh token: the presented one is revoked and a
// new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, raw string) (dto.LoginResponse, error) {
	if raw == "" {
		return dto.LoginResponse{}, model.Unauthorized(MsgInvalidToken)
	}
	hash := utils.HashRefreshRaw(raw)
	uid, err := s.tokens.ValidateRefresh(ctx, hash)
	if errors.Is(err, repository.ErrRefreshInvalid) {
		return dto.LoginResponse{}, model.Unauthorized(MsgInvalidToken)
	}
	if err != nil {
		return dto.LoginResponse{}, err
	}
	u, err := s.ActiveUser(ctx, uid)
	if errors.Is(err, model.ErrUnauthorized) {
		// deactivated or removed account: end every session it still has
		if rerr := s.tokens.RevokeAllForUser(ctx, uid); rerr != nil {
			s.log.Warn("revoke sessions failed", zap.Uint64("user_id", uid), zap.Error(rerr))
		}
	}
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if err := s.tokens.RevokeByHash(ctx, hash); err != nil {
		return dto.LoginResponse{}, err
	}
	return s.issue(ctx, u)
}

// Logout revokes a refresh token.  Unknown or already revoked tokens
// are not an error.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return s.tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
}

// Me returns the summary of the authenticated user.
func (s *AuthService) Me(ctx context.Context, owner model.OwnerID) (dto.User, error) {
	u, err := s.ActiveUser(ctx, uint64(owner))
	if err != nil {
		return dto.User{}, err
	}
	return dto.FromUser(u), nil
}

// ActiveUser resolves the subject of a verified token.  Missing users
// and inactive users are both unauthorized.
func (s *AuthService) ActiveUser(ctx context.Context, id uint64) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.Unauthorized(MsgInvalidToken)
	}
	if err != nil {
		return model.User{}, err
	}
	if !u.IsActive {
		return model.User{}, model.Unauthorized(MsgInactiveUser)
	}
	return u, nil
}

func (s *AuthService) issue(ctx context.Context, u model.User) (dto.LoginResponse, error) {
	at, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, u.Email, s.cfg.AccessTTLMin)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	rt, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(rt.Raw), rt.Exp); err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{
		AccessToken:      at.Token,
		TokenType:        "bearer",
		ExpiresAt:        at.Exp,
		RefreshToken:     rt.Raw,
		RefreshExpiresAt: rt.Exp,
		UserID:           u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
	}, nil
}
