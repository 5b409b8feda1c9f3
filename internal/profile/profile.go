// Package profile defines the credential profile and token data model.
// Profiles and tokens each come in exactly two variants: App (service
// principal, client-credentials grant) and User (interactive sign-in,
// device-code grant).
package profile

import "fmt"

// Kind discriminates the App and User variants.
type Kind string

const (
	KindApp  Kind = "App"
	KindUser Kind = "User"
)

// Profile is a fully-resolved credential profile. Exactly two
// implementations exist: *App and *User. A profile is immutable once
// constructed by resolution and is never persisted itself; only issued
// tokens are, keyed by the profile fingerprint.
type Profile interface {
	Kind() Kind

	// Key returns the cache fingerprint: the variant tag plus the fields
	// that determine the server-side grant request. Name and Secret are
	// excluded, so two profiles requesting the same grant share a cache
	// entry regardless of display name.
	Key() string

	// Valid reports whether every field required by the variant's flow is
	// non-empty. Invalid profiles must never reach acquisition.
	Valid() bool

	sealedProfile()
}

// App is a confidential-client profile. It authenticates with a client
// secret against the v1 token endpoint for a target resource.
type App struct {
	Name      string
	ClientID  string
	Secret    string
	Tenant    string
	Authority string
	Resource  string
}

func (p *App) Kind() Kind { return KindApp }

func (p *App) Key() string {
	return fmt.Sprintf("App:%s\t%s\t%s\t%s", p.ClientID, p.Tenant, p.Authority, p.Resource)
}

func (p *App) Valid() bool {
	return p.ClientID != "" && p.Secret != "" && p.Tenant != "" && p.Authority != ""
}

func (p *App) sealedProfile() {}

// User is a public-client profile. It authenticates a person through the
// v2.0 device-code grant for a space-separated scope set.
type User struct {
	Name      string
	ClientID  string
	Tenant    string
	Authority string
	Scope     string
}

func (p *User) Kind() Kind { return KindUser }

func (p *User) Key() string {
	return fmt.Sprintf("User:%s\t%s\t%s\t%s", p.ClientID, p.Tenant, p.Authority, p.Scope)
}

func (p *User) Valid() bool {
	return p.ClientID != "" && p.Tenant != "" && p.Authority != "" && p.Scope != ""
}

func (p *User) sealedProfile() {}
