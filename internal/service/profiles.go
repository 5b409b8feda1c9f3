package service

import (
	"fmt"

	"github.com/tokengen-cli/tokengen/internal/config"
	"github.com/tokengen-cli/tokengen/internal/profile"
	iface "github.com/tokengen-cli/tokengen/internal/service/interface"
)

// profileService implements iface.ProfileService on top of the config
// manager.
type profileService struct {
	config *config.Manager
}

// NewProfileService creates the stored-profile management service.
func NewProfileService(cfg *config.Manager) iface.ProfileService {
	return &profileService{config: cfg}
}

func (s *profileService) List() []profile.Record {
	return s.config.Load().Profiles
}

func (s *profileService) Get(name string) (profile.Record, bool) {
	return s.config.Load().FindProfile(name)
}

func (s *profileService) Add(rec profile.Record) error {
	if rec.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if _, err := rec.Profile(); err != nil {
		return err
	}

	cfg := s.config.Load()
	if _, exists := cfg.FindProfile(rec.Name); exists {
		return fmt.Errorf("profile %q already exists", rec.Name)
	}

	cfg.Profiles = append(cfg.Profiles, rec)
	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = rec.Name
	}
	return s.config.Save(cfg)
}

func (s *profileService) Remove(name string) error {
	cfg := s.config.Load()

	kept := cfg.Profiles[:0]
	found := false
	for _, rec := range cfg.Profiles {
		if rec.Name == name {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return fmt.Errorf("profile %q not found", name)
	}

	cfg.Profiles = kept
	if cfg.DefaultProfile == name {
		cfg.DefaultProfile = ""
	}
	return s.config.Save(cfg)
}

func (s *profileService) SetDefault(name string) error {
	cfg := s.config.Load()
	if _, exists := cfg.FindProfile(name); !exists {
		return fmt.Errorf("profile %q not found", name)
	}

	cfg.DefaultProfile = name
	return s.config.Save(cfg)
}

func (s *profileService) DefaultName() string {
	return s.config.Load().DefaultProfile
}
