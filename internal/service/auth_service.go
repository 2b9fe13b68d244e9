package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/config"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	"github.com/spec-kit/diabetes-care-service/internal/repository"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

// AuthService coordinates login and clinician registration. This is the only
// place credential records are read for authentication.
type AuthService struct {
	patients   repository.PatientRepository
	endos      repository.EndocrinologistRepository
	tokenMgr   *auth.TokenManager
	throttle   *LoginThrottle
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	PatientRepo         repository.PatientRepository
	EndocrinologistRepo repository.EndocrinologistRepository
	Throttle            *LoginThrottle
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		patients:   deps.PatientRepo,
		endos:      deps.EndocrinologistRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		throttle:   deps.Throttle,
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates a username/password pair against the role-selected
// table and issues a token. Unknown usernames and wrong passwords return the
// identical generic error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string, role domain.Role) (string, time.Time, error) {
	if s.throttle.Blocked(ctx, role, username) {
		return "", time.Time{}, apperrors.NewTooManyRequests("too many login attempts")
	}

	var (
		subjectID    int64
		passwordHash string
	)
	switch role {
	case domain.RolePatient:
		patient, err := s.patients.GetByUsername(ctx, username)
		if err != nil {
			return "", time.Time{}, s.loginFailure(ctx, role, username, err)
		}
		subjectID, passwordHash = patient.ID, patient.PasswordHash
	case domain.RoleEndocrinologist:
		endo, err := s.endos.GetByUsername(ctx, username)
		if err != nil {
			return "", time.Time{}, s.loginFailure(ctx, role, username, err)
		}
		subjectID, passwordHash = endo.ID, endo.PasswordHash
	default:
		return "", time.Time{}, apperrors.NewValidationError("unknown role", nil)
	}

	if err := auth.ComparePassword(passwordHash, password); err != nil {
		s.throttle.RecordFailure(ctx, role, username)
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.Issue(domain.Identity{SubjectID: subjectID, Role: role})
	if err != nil {
		return "", time.Time{}, err
	}
	s.throttle.Reset(ctx, role, username)
	return token, expiresAt, nil
}

// loginFailure maps a lookup miss to the generic credentials error and counts
// it against the throttle; storage failures pass through untouched.
func (s *AuthService) loginFailure(ctx context.Context, role domain.Role, username string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		s.throttle.RecordFailure(ctx, role, username)
		return apperrors.NewUnauthorized("invalid credentials")
	}
	return err
}

// RegisterEndocrinologist creates a clinician account with a hashed password.
func (s *AuthService) RegisterEndocrinologist(ctx context.Context, username, password, fullName string) (*domain.Endocrinologist, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	endo := &domain.Endocrinologist{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
	}
	if err := s.endos.Create(ctx, endo); err != nil {
		return nil, err
	}
	return endo, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
