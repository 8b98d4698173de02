package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/auth"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/config"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/repositories"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	jwtConfig config.JWTConfig
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, jwtConfig config.JWTConfig) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		jwtConfig: jwtConfig,
	}
}

// dummyHash keeps the unknown-username path doing a bcrypt compare so its
// timing matches the wrong-password path.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func (s *authService) Login(ctx context.Context, req *LoginRequest, requiredRole models.UserRole) (*LoginResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login failed", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	// The credential check passes before the role check on purpose: a
	// student logging in at the teacher endpoint gets a 403, not a 401.
	if user.Role != requiredRole {
		s.logger.Warn("Login role mismatch",
			"username", req.Username,
			"role", user.Role,
			"required_role", requiredRole)
		return nil, ErrRoleMismatch
	}

	linkedID := ""
	if user.LinkedID != nil {
		linkedID = *user.LinkedID
	}

	token, expiresAt, err := auth.Issue(user.Username, user.Role, linkedID, s.jwtConfig.Issuer, s.jwtConfig.Secret, s.jwtConfig.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Login succeeded", "username", user.Username, "role", user.Role)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		Role:      user.Role,
		LinkedID:  linkedID,
	}, nil
}
