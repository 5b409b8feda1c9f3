package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAppKeyIgnoresNameAndSecret(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clientID := rapid.String().Draw(t, "clientID")
		tenant := rapid.String().Draw(t, "tenant")
		authority := rapid.String().Draw(t, "authority")
		resource := rapid.String().Draw(t, "resource")

		p1 := &App{
			Name:      rapid.String().Draw(t, "name1"),
			Secret:    rapid.String().Draw(t, "secret1"),
			ClientID:  clientID,
			Tenant:    tenant,
			Authority: authority,
			Resource:  resource,
		}
		p2 := &App{
			Name:      rapid.String().Draw(t, "name2"),
			Secret:    rapid.String().Draw(t, "secret2"),
			ClientID:  clientID,
			Tenant:    tenant,
			Authority: authority,
			Resource:  resource,
		}

		if p1.Key() != p2.Key() {
			t.Fatalf("keys differ: %q vs %q", p1.Key(), p2.Key())
		}
	})
}

func TestUserKeyIgnoresName(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1 := &User{
			Name:      rapid.String().Draw(t, "name1"),
			ClientID:  rapid.String().Draw(t, "clientID"),
			Tenant:    rapid.String().Draw(t, "tenant"),
			Authority: rapid.String().Draw(t, "authority"),
			Scope:     rapid.String().Draw(t, "scope"),
		}
		p2 := &User{
			Name:      rapid.String().Draw(t, "name2"),
			ClientID:  p1.ClientID,
			Tenant:    p1.Tenant,
			Authority: p1.Authority,
			Scope:     p1.Scope,
		}

		if p1.Key() != p2.Key() {
			t.Fatalf("keys differ: %q vs %q", p1.Key(), p2.Key())
		}
	})
}

func TestKeyDistinguishesVariants(t *testing.T) {
	app := &App{ClientID: "id", Tenant: "tenant", Authority: "auth", Resource: "x"}
	user := &User{ClientID: "id", Tenant: "tenant", Authority: "auth", Scope: "x"}

	assert.NotEqual(t, app.Key(), user.Key())
}

func TestAppValid(t *testing.T) {
	valid := App{ClientID: "id", Secret: "s", Tenant: "t", Authority: "a"}

	tests := []struct {
		name   string
		mutate func(*App)
		want   bool
	}{
		{"complete", func(p *App) {}, true},
		{"missing client id", func(p *App) { p.ClientID = "" }, false},
		{"missing secret", func(p *App) { p.Secret = "" }, false},
		{"missing tenant", func(p *App) { p.Tenant = "" }, false},
		{"missing authority", func(p *App) { p.Authority = "" }, false},
		{"missing resource is allowed", func(p *App) { p.Resource = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Equal(t, tt.want, p.Valid())
		})
	}
}

func TestUserValid(t *testing.T) {
	valid := User{ClientID: "id", Tenant: "t", Authority: "a", Scope: "openid"}

	tests := []struct {
		name   string
		mutate func(*User)
		want   bool
	}{
		{"complete", func(p *User) {}, true},
		{"missing client id", func(p *User) { p.ClientID = "" }, false},
		{"missing tenant", func(p *User) { p.Tenant = "" }, false},
		{"missing authority", func(p *User) { p.Authority = "" }, false},
		{"missing scope", func(p *User) { p.Scope = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Equal(t, tt.want, p.Valid())
		})
	}
}

func TestRecordProfile(t *testing.T) {
	app, err := Record{Type: "App", Name: "svc", ClientID: "id", Secret: "s"}.Profile()
	assert.NoError(t, err)
	assert.Equal(t, KindApp, app.Kind())

	user, err := Record{Type: "User", Name: "me", Scope: "openid"}.Profile()
	assert.NoError(t, err)
	assert.Equal(t, KindUser, user.Kind())

	_, err = Record{Type: "Robot"}.Profile()
	assert.Error(t, err)
}
