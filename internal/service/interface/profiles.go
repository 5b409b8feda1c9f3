package iface

import "github.com/tokengen-cli/tokengen/internal/profile"

// ProfileService manages the stored profiles in the configuration file.
type ProfileService interface {
	// List returns all stored profiles in configuration order.
	List() []profile.Record

	// Get returns the stored profile with the given name.
	Get(name string) (profile.Record, bool)

	// Add stores a new profile. The first profile added becomes the default.
	Add(rec profile.Record) error

	// Remove deletes a stored profile by name.
	Remove(name string) error

	// SetDefault marks an existing profile as the default.
	SetDefault(name string) error

	// DefaultName returns the configured default profile name.
	DefaultName() string
}
