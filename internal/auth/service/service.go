package service

import (
	"context"
	"time"

	"leasewell_backend/internal/auth/repository"
	"leasewell_backend/internal/auth/token"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service implements registration, login and token refresh.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates a profile with the given role and signs the user in.
func (s *Service) Register(ctx context.Context, email, plainPassword, fullName, role string) (repository.Profile, TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return repository.Profile{}, TokenPair{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	profile, err := s.repo.CreateProfile(ctx, email, string(hash), fullName, role)
	if err != nil {
		s.log.AuthEvent("register", email, false, err.Error())
		return repository.Profile{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, profile)
	if err != nil {
		return repository.Profile{}, TokenPair{}, err
	}

	s.log.AuthEvent("register", email, true, "")
	return profile, pair, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (repository.Profile, TokenPair, error) {
	profile, err := s.repo.GetProfileByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return repository.Profile{}, TokenPair{}, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(plainPassword)); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return repository.Profile{}, TokenPair{}, apperr.Unauthorized("invalid credentials")
	}

	pair, err := s.issueTokens(ctx, profile)
	if err != nil {
		return repository.Profile{}, TokenPair{}, err
	}

	s.log.AuthEvent("login", email, true, "")
	return profile, pair, nil
}

// Refresh rotates a refresh token and issues a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (repository.Profile, TokenPair, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return repository.Profile{}, TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return repository.Profile{}, TokenPair{}, apperr.Unauthorized("refresh token expired")
	}

	profile, err := s.repo.GetProfileByID(ctx, userID)
	if err != nil {
		return repository.Profile{}, TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	// Rotation: the presented token is single use.
	_ = s.repo.RevokeRefreshToken(ctx, hash)

	pair, err := s.issueTokens(ctx, profile)
	return profile, pair, err
}

// Logout revokes the presented refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, token.HashSHA256(refreshToken))
}

// Me returns the profile for the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	return s.repo.GetProfileByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, profile repository.Profile) (TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  profile.ID.String(),
		"role": profile.Role,
		"type": accessTokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "failed to sign access token", err)
	}

	refreshToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "failed to generate refresh token", err)
	}

	expiresAt := now.Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.StoreRefreshToken(ctx, profile.ID, token.HashSHA256(refreshToken), expiresAt); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "failed to persist refresh token", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
