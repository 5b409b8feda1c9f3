package profile

import (
	"fmt"
	"strconv"
	"time"
)

// now is swapped out by expiry tests.
var now = time.Now

// Selector picks which token string a caller wants from an issued token.
type Selector string

const (
	SelectAccess     Selector = "access"
	SelectID         Selector = "id"
	SelectAccessOrID Selector = "access-or-id"
	SelectIDOrAccess Selector = "id-or-access"
)

// ParseSelector validates a selector supplied on the command line.
func ParseSelector(s string) (Selector, error) {
	switch Selector(s) {
	case SelectAccess, SelectID, SelectAccessOrID, SelectIDOrAccess:
		return Selector(s), nil
	}
	return "", fmt.Errorf("unknown token selector %q (expected access, id, access-or-id or id-or-access)", s)
}

// Token is an issued bearer token. Exactly two implementations exist:
// *AppToken and *UserToken. Tokens are opaque strings plus an absolute
// expiry; no validation or signature verification happens here.
type Token interface {
	Kind() Kind

	// Expired reports whether the token is too close to expiry to hand out.
	// The read-time margin is wider than the cache's persist-time margin, so
	// a token is never returned moments before it dies mid-use.
	Expired() bool

	// ExpiredWithin reports whether less than margin remains before the
	// token's absolute expiry.
	ExpiredWithin(margin time.Duration) bool

	// TokenString extracts the representation the selector asks for.
	TokenString(sel Selector) string

	sealedToken()
}

// AppToken is the v1 client-credentials token response. ExpiresOn is the
// absolute epoch-seconds expiry exactly as the server supplied it.
type AppToken struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
	ExpiresOn   string `json:"expires_on"`
}

func (t *AppToken) Kind() Kind { return KindApp }

func (t *AppToken) Expired() bool { return t.ExpiredWithin(5 * time.Minute) }

// ExpiredWithin treats an unparseable expiry as already expired.
func (t *AppToken) ExpiredWithin(margin time.Duration) bool {
	sec, err := strconv.ParseInt(t.ExpiresOn, 10, 64)
	if err != nil {
		return true
	}
	return time.Unix(sec, 0).Sub(now()) < margin
}

func (t *AppToken) TokenString(sel Selector) string {
	return selectString(sel, t.AccessToken, t.IDToken)
}

func (t *AppToken) sealedToken() {}

// UserToken is the v2.0 device-code or refresh token response. The server
// returns a relative lifetime in ExpiresIn; the acquiring flow stores the
// computed absolute expiry in ExpiresOn. A non-empty Error marks a failed or
// still-pending poll response.
type UserToken struct {
	Error        string `json:"error"`
	Scope        string `json:"scope"`
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresOn    int64  `json:"expires_on"`
}

func (t *UserToken) Kind() Kind { return KindUser }

func (t *UserToken) Expired() bool { return t.ExpiredWithin(time.Minute) }

func (t *UserToken) ExpiredWithin(margin time.Duration) bool {
	return time.Unix(t.ExpiresOn, 0).Sub(now()) < margin
}

func (t *UserToken) TokenString(sel Selector) string {
	return selectString(sel, t.AccessToken, t.IDToken)
}

func (t *UserToken) sealedToken() {}

func selectString(sel Selector, access, id string) string {
	switch sel {
	case SelectID:
		return id
	case SelectAccessOrID:
		if access != "" {
			return access
		}
		return id
	case SelectIDOrAccess:
		if id != "" {
			return id
		}
		return access
	default:
		return access
	}
}
