// internal/service/auth/auth_service.go
package auth

import (
	"context"
	"fmt"
	"strconv"

	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"
	"fleetride-service/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

func NewAuthService(userRepo user.Repository, jwtManager *jwt.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a new user account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		return nil, xerrors.Conflictf("an account with this email or phone already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Role:         user.RoleUser,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, _, err := s.jwtManager.Generate(strconv.FormatInt(u.ID, 10), string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return &user.AuthResponse{Token: token, User: u}, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.E(xerrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !u.IsActive {
		return nil, xerrors.Forbiddenf("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.E(xerrors.ErrUnauthorized, "invalid email or password")
	}

	token, _, err := s.jwtManager.Generate(strconv.FormatInt(u.ID, 10), string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", u.ID))
	return &user.AuthResponse{Token: token, User: u}, nil
}

// Profile returns the authenticated user's account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*user.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile patches mutable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *user.UpdateRequest) (*user.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	if err := s.userRepo.Update(ctx, userID, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Deactivate soft-deletes the account.
func (s *AuthService) Deactivate(ctx context.Context, userID int64) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.Int64("user_id", userID))
	return nil
}
