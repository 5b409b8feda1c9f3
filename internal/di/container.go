// Package di provides dependency injection for the tokengen CLI.
// It contains the service container and factory functions.
package di

import (
	"github.com/tokengen-cli/tokengen/internal/auth"
	"github.com/tokengen-cli/tokengen/internal/cache"
	"github.com/tokengen-cli/tokengen/internal/config"
	"github.com/tokengen-cli/tokengen/internal/logging"
	"github.com/tokengen-cli/tokengen/internal/service"
	iface "github.com/tokengen-cli/tokengen/internal/service/interface"
)

// Container holds all service dependencies for the CLI.
// Services are accessed via interfaces to enable mocking in tests.
type Container struct {
	configManager  *config.Manager
	tokenService   iface.TokenService
	profileService iface.ProfileService
}

// NewContainer creates a new dependency container with default
// implementations, rooted at the per-user config and cache directories.
func NewContainer(verbose bool) (*Container, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(verbose)
	configManager := config.NewManager(paths, logger)
	store := cache.NewStore(paths.CacheDir, logger)
	appFlow := auth.NewAppFlow(logger)
	userFlow := auth.NewUserFlow(&auth.DesktopNotifier{Logger: logger}, logger)

	return &Container{
		configManager:  configManager,
		tokenService:   service.NewTokenService(configManager, store, appFlow, userFlow, logger),
		profileService: service.NewProfileService(configManager),
	}, nil
}

// NewContainerWithServices creates a container with custom service
// implementations. This is useful for testing with mock services.
func NewContainerWithServices(
	tokenService iface.TokenService,
	profileService iface.ProfileService,
) *Container {
	return &Container{
		tokenService:   tokenService,
		profileService: profileService,
	}
}

// TokenService returns the token acquisition service
func (c *Container) TokenService() iface.TokenService {
	return c.tokenService
}

// ProfileService returns the stored-profile management service
func (c *Container) ProfileService() iface.ProfileService {
	return c.profileService
}

// ConfigManager returns the config manager
func (c *Container) ConfigManager() *config.Manager {
	return c.configManager
}
