// Package auth implements the two token-acquisition protocols: the
// client-credentials exchange for App profiles and the device-code grant
// (with silent refresh) for User profiles. Endpoint paths, field names and
// grant-type strings follow the Azure AD wire protocol verbatim.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tokengen-cli/tokengen/internal/profile"
)

// postForm issues one synchronous form-encoded POST. Network-level failures
// come back as transport errors; the caller decides what a non-success
// status means.
func postForm(ctx context.Context, client *http.Client, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Msg: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Msg: "request failed", Err: err}
	}
	return resp, nil
}

func success(status int) bool { return status >= 200 && status < 300 }

// AppFlow performs the client-credentials exchange against the v1 token
// endpoint.
type AppFlow struct {
	Client *http.Client
	Logger *slog.Logger
}

// NewAppFlow creates an app flow with a conservative request timeout.
func NewAppFlow(logger *slog.Logger) *AppFlow {
	return &AppFlow{
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

// Acquire exchanges the profile's client secret for a fresh AppToken. There
// is no retry: a client-credentials failure is almost always a configuration
// problem, not a transient one. The expiry comes straight from the server's
// expires_on field.
func (f *AppFlow) Acquire(ctx context.Context, p *profile.App) (*profile.AppToken, error) {
	endpoint := fmt.Sprintf("%s/%s/oauth2/token", p.Authority, p.Tenant)

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.Secret)
	form.Set("resource", p.Resource)

	f.Logger.Debug("requesting client-credentials token", "endpoint", endpoint, "client_id", p.ClientID)

	resp, err := postForm(ctx, f.Client, endpoint, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, &Error{
			Kind:   KindProtocol,
			Status: resp.StatusCode,
			Msg:    fmt.Sprintf("token request failed with status %d", resp.StatusCode),
		}
	}

	var token profile.AppToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, &Error{Kind: KindDecode, Msg: "failed to decode token response", Err: err}
	}

	return &token, nil
}
