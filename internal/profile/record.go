package profile

import "fmt"

// Record is the configuration-file form of a profile: a Type-tagged union of
// every per-variant field. JSON keys stay PascalCase for compatibility with
// existing tokengen config files.
type Record struct {
	Type      string `json:"Type"`
	Name      string `json:"Name"`
	ClientID  string `json:"ClientId,omitempty"`
	Secret    string `json:"Secret,omitempty"`
	Tenant    string `json:"Tenant,omitempty"`
	Authority string `json:"Authority,omitempty"`
	Resource  string `json:"Resource,omitempty"`
	Scope     string `json:"Scope,omitempty"`
}

// Profile materializes the record into its variant. Fields that do not
// belong to the variant are ignored.
func (r Record) Profile() (Profile, error) {
	switch Kind(r.Type) {
	case KindApp:
		return &App{
			Name:      r.Name,
			ClientID:  r.ClientID,
			Secret:    r.Secret,
			Tenant:    r.Tenant,
			Authority: r.Authority,
			Resource:  r.Resource,
		}, nil
	case KindUser:
		return &User{
			Name:      r.Name,
			ClientID:  r.ClientID,
			Tenant:    r.Tenant,
			Authority: r.Authority,
			Scope:     r.Scope,
		}, nil
	}
	return nil, fmt.Errorf("unknown profile type %q", r.Type)
}
