package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/password"
	"blogapi/internal/repository"
	"blogapi/internal/token"
)

type AuthService interface {
	// Login verifies credentials and returns the user together with an
	// access/refresh token pair. The access token is fresh.
	Login(ctx context.Context, username, plainPassword string) (*models.User, string, string, error)
	// Refresh exchanges a refresh token for a new pair. The new access token
	// is not fresh.
	Refresh(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	// ResolveToken maps a bearer access token to an account, failing closed.
	ResolveToken(ctx context.Context, accessToken string) (*models.User, error)
	// RequireFresh resolves the token and additionally demands a fresh claim.
	// Superusers bypass the freshness requirement.
	RequireFresh(ctx context.Context, accessToken string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	codec    *token.Codec
	hasher   *password.Hasher
}

func NewAuthService(userRepo repository.UserRepository, codec *token.Codec, hasher *password.Hasher) AuthService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		hasher:   hasher,
	}
}

func (s *authService) Login(ctx context.Context, username, plainPassword string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", "", fmt.Errorf("%w: incorrect username or password", apperr.ErrUnauthenticated)
		}
		return nil, "", "", fmt.Errorf("failed to authenticate: %w", err)
	}

	if !s.hasher.Verify(plainPassword, user.PasswordHash) {
		return nil, "", "", fmt.Errorf("%w: incorrect username or password", apperr.ErrUnauthenticated)
	}

	if user.Disabled {
		return nil, "", "", fmt.Errorf("%w: account disabled", apperr.ErrUnauthenticated)
	}

	return s.issuePair(user, true)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	claims, err := s.codec.Decode(refreshToken, token.ScopeRefresh)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: invalid refresh token", apperr.ErrUnauthenticated)
	}

	user, err := s.resolveSubject(ctx, claims.Subject)
	if err != nil {
		return nil, "", "", err
	}

	return s.issuePair(user, false)
}

func (s *authService) ResolveToken(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.codec.Decode(accessToken, token.ScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", apperr.ErrUnauthenticated)
	}
	return s.resolveSubject(ctx, claims.Subject)
}

func (s *authService) RequireFresh(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.codec.Decode(accessToken, token.ScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", apperr.ErrUnauthenticated)
	}

	user, err := s.resolveSubject(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	// superusers skip the freshness check: an intentional escalation policy
	if !claims.Fresh && !user.Superuser {
		return nil, fmt.Errorf("%w: fresh token required", apperr.ErrUnauthenticated)
	}

	return user, nil
}

func (s *authService) resolveSubject(ctx context.Context, subject string) (*models.User, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperr.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", apperr.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	if user.Disabled {
		return nil, fmt.Errorf("%w: account disabled", apperr.ErrUnauthenticated)
	}

	return user, nil
}

func (s *authService) issuePair(user *models.User, fresh bool) (*models.User, string, string, error) {
	accessToken, err := s.codec.Issue(user.Username, token.ScopeAccess, fresh)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.codec.Issue(user.Username, token.ScopeRefresh, false)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}
