// Package service implements the tokengen service layer: profile resolution,
// the token acquisition orchestrator, and stored-profile management.
package service

import (
	"context"
	"log/slog"

	"github.com/tokengen-cli/tokengen/internal/auth"
	"github.com/tokengen-cli/tokengen/internal/cache"
	"github.com/tokengen-cli/tokengen/internal/config"
	"github.com/tokengen-cli/tokengen/internal/profile"
	iface "github.com/tokengen-cli/tokengen/internal/service/interface"
)

// appAcquirer and userAcquirer are the flow seams; tests substitute stubs.
type appAcquirer interface {
	Acquire(ctx context.Context, p *profile.App) (*profile.AppToken, error)
}

type userAcquirer interface {
	Acquire(ctx context.Context, p *profile.User) (*profile.UserToken, error)
	Refresh(ctx context.Context, p *profile.User, prev *profile.UserToken) (*profile.UserToken, error)
}

// tokenService implements iface.TokenService.
type tokenService struct {
	config *config.Manager
	cache  *cache.Store
	app    appAcquirer
	user   userAcquirer
	logger *slog.Logger
}

// NewTokenService creates the token acquisition service.
func NewTokenService(cfg *config.Manager, store *cache.Store, app *auth.AppFlow, user *auth.UserFlow, logger *slog.Logger) iface.TokenService {
	return &tokenService{
		config: cfg,
		cache:  store,
		app:    app,
		user:   user,
		logger: logger,
	}
}

// GetToken resolves the request, obtains a token and renders the requested
// representation.
func (s *tokenService) GetToken(ctx context.Context, req iface.TokenRequest) (string, error) {
	prof, err := resolve(s.config.Load(), req)
	if err != nil {
		return "", err
	}

	token, err := s.token(ctx, prof)
	if err != nil {
		return "", err
	}

	return token.TokenString(req.Selector), nil
}

// token implements the acquisition priority chain: cache hit, silent
// refresh, full flow. The cache is rewritten whenever a new token is
// obtained.
func (s *tokenService) token(ctx context.Context, prof profile.Profile) (profile.Token, error) {
	tokens := s.cache.Load()
	key := prof.Key()

	if cached, ok := tokens[key]; ok {
		if !cached.Expired() {
			s.logger.Debug("token served from cache")
			return cached, nil
		}
		if fresh := s.refresh(ctx, prof, cached); fresh != nil {
			tokens[key] = fresh
			s.cache.Save(tokens)
			return fresh, nil
		}
	}

	token, err := s.acquire(ctx, prof)
	if err != nil {
		return nil, err
	}

	tokens[key] = token
	s.cache.Save(tokens)
	return token, nil
}

// refresh attempts a silent refresh for an expired User token. App tokens
// have no refresh concept. A nil return means the caller must re-acquire.
func (s *tokenService) refresh(ctx context.Context, prof profile.Profile, cached profile.Token) profile.Token {
	p, ok := prof.(*profile.User)
	if !ok {
		return nil
	}
	prev, ok := cached.(*profile.UserToken)
	if !ok || prev.RefreshToken == "" {
		return nil
	}

	fresh, err := s.user.Refresh(ctx, p, prev)
	if err != nil {
		s.logger.Warn("silent refresh failed, falling back to device code flow", "error", err)
		return nil
	}
	return fresh
}

func (s *tokenService) acquire(ctx context.Context, prof profile.Profile) (profile.Token, error) {
	switch p := prof.(type) {
	case *profile.App:
		token, err := s.app.Acquire(ctx, p)
		if err != nil {
			return nil, err
		}
		return token, nil
	case *profile.User:
		token, err := s.user.Acquire(ctx, p)
		if err != nil {
			return nil, err
		}
		return token, nil
	}
	return nil, auth.NewConfigError("unsupported profile variant")
}
