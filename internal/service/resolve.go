package service

import (
	"github.com/tokengen-cli/tokengen/internal/auth"
	"github.com/tokengen-cli/tokengen/internal/config"
	"github.com/tokengen-cli/tokengen/internal/profile"
	iface "github.com/tokengen-cli/tokengen/internal/service/interface"
)

// resolve merges the stored profile named by the request with the
// command-line overrides and configured defaults. Precedence is strict and
// applied independently per field: override > stored value > default.
func resolve(cfg *config.Configuration, req iface.TokenRequest) (profile.Profile, error) {
	name := req.Profile
	if name == "" {
		name = cfg.DefaultProfile
	}

	rec, found := cfg.FindProfile(name)
	if !found {
		// No stored profile: synthesize one from the requested type and the
		// raw overrides. The type is mandatory in this path.
		switch profile.Kind(req.Type) {
		case profile.KindApp, profile.KindUser:
			rec = profile.Record{Type: req.Type, Name: name}
		default:
			return nil, auth.NewConfigError("unknown profile type %q", req.Type)
		}
	}

	applyOverrides(&rec, req)
	applyDefaults(&rec, cfg.Defaults)

	prof, err := rec.Profile()
	if err != nil {
		return nil, auth.NewConfigError("%v", err)
	}
	if !prof.Valid() {
		return nil, auth.NewConfigError("profile %q is missing required fields for a %s flow", name, prof.Kind())
	}
	return prof, nil
}

func applyOverrides(rec *profile.Record, req iface.TokenRequest) {
	if req.ClientID != "" {
		rec.ClientID = req.ClientID
	}
	if req.Secret != "" {
		rec.Secret = req.Secret
	}
	if req.Tenant != "" {
		rec.Tenant = req.Tenant
	}
	if req.Authority != "" {
		rec.Authority = req.Authority
	}
	if req.Resource != "" {
		rec.Resource = req.Resource
	}
	if req.Scope != "" {
		rec.Scope = req.Scope
	}
}

func applyDefaults(rec *profile.Record, d config.Defaults) {
	if rec.ClientID == "" {
		rec.ClientID = d.ClientID
	}
	if rec.Secret == "" {
		rec.Secret = d.Secret
	}
	if rec.Tenant == "" {
		rec.Tenant = d.Tenant
	}
	if rec.Authority == "" {
		rec.Authority = d.Authority
	}
	if rec.Scope == "" {
		rec.Scope = d.Scope
	}
}
