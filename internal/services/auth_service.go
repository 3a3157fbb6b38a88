package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/validator"
)

// bearerPrefix is stripped from inbound credentials. The canonical on-wire
// format is the raw token; accepting the prefixed form keeps previously
// issued cookies working.
const bearerPrefix = "Bearer "

type authService struct {
	repo      repositories.Repository
	tokens    *TokenService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *TokenService, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: v,
	}
}

func (s *authService) Register(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		HashedPassword: string(hash),
		FullName:       req.FullName,
		Role:           models.UserRole(req.Role),
		Phone:          req.Phone,
		Department:     req.Department,
		ProfilePicture: models.DefaultProfilePicture,
		IsActive:       true,
	}

	if err := s.repo.Users().Create(ctx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (string, *models.User, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return "", nil, errs
	}

	user, err := s.repo.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrUserInactive
	}

	token, err := s.tokens.Issue(user.Email, 0)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

// Resolve turns a raw credential into a user record or a typed failure:
// ErrCredentialMissing, ErrCredentialExpired, ErrCredentialInvalid,
// ErrSessionUserGone or ErrUserInactive. It never mutates storage; the
// caller decides whether to clear a cookie or return a status code.
func (s *authService) Resolve(ctx context.Context, credential string) (*models.User, error) {
	raw := normalizeCredential(credential)
	if raw == "" {
		return nil, ErrCredentialMissing
	}

	claim, err := s.tokens.Verify(raw)
	if err != nil {
		switch err {
		case ErrTokenExpired:
			return nil, ErrCredentialExpired
		default:
			return nil, ErrCredentialInvalid
		}
	}

	user, err := s.repo.Users().GetByEmail(ctx, claim.Subject)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionUserGone
		}
		return nil, fmt.Errorf("look up session user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// ResolveOptional collapses every non-authenticated outcome to nil, for
// surfaces that render differently for anonymous callers.
func (s *authService) ResolveOptional(ctx context.Context, credential string) *models.User {
	user, err := s.Resolve(ctx, credential)
	if err != nil {
		if !IsAuthenticationError(err) {
			s.logger.Warn("optional session resolution failed", "error", err)
		}
		return nil
	}
	return user
}

func (s *authService) IssueToken(identity string, ttl time.Duration) (string, error) {
	return s.tokens.Issue(identity, ttl)
}

// normalizeCredential trims whitespace and a scheme prefix so cookie and
// Authorization-header values funnel through one verification path.
func normalizeCredential(credential string) string {
	raw := strings.TrimSpace(credential)
	if strings.HasPrefix(raw, bearerPrefix) {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	}
	return raw
}
