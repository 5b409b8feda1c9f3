// Package iface defines service interfaces for the tokengen CLI.
// These interfaces enable dependency injection and mocking for tests.
package iface

import (
	"context"

	"github.com/tokengen-cli/tokengen/internal/profile"
)

// TokenRequest names a profile and carries the per-field command-line
// overrides applied on top of it. Empty fields mean "no override".
type TokenRequest struct {
	// Profile is the requested profile name; empty means the configured
	// default profile.
	Profile string

	// Type selects the variant (App or User) when no stored profile matches
	// the requested name and one has to be synthesized from overrides alone.
	Type string

	ClientID  string
	Secret    string
	Tenant    string
	Authority string
	Resource  string
	Scope     string

	// Selector picks which token string to return.
	Selector profile.Selector
}

// TokenService resolves profiles and acquires bearer tokens.
type TokenService interface {
	// GetToken resolves the request into a profile, obtains a token (from
	// cache, silent refresh, or a fresh acquisition) and returns the token
	// string for the requested selector.
	GetToken(ctx context.Context, req TokenRequest) (string, error)
}
