package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tokengen-cli/tokengen/internal/profile"
)

const deviceCodeGrant = "urn:ietf:params:oauth:grant-type:device_code"

// expiryMarginSeconds compensates for the seconds that pass between the
// server computing expires_in and the token being stored.
const expiryMarginSeconds = 5

// deviceCodeResponse is the v2.0 devicecode endpoint response.
type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int64  `json:"expires_in"`
	Interval        int64  `json:"interval"`
	Message         string `json:"message"`
}

// UserFlow performs the device-code grant and silent refresh against the
// v2.0 endpoints. Now and Sleep exist so tests can run the polling loop
// without real time passing.
type UserFlow struct {
	Client   *http.Client
	Notifier Notifier
	Logger   *slog.Logger
	Now      func() time.Time
	Sleep    func(time.Duration)
}

// NewUserFlow creates a user flow with a conservative request timeout.
func NewUserFlow(notifier Notifier, logger *slog.Logger) *UserFlow {
	return &UserFlow{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
		Sleep:    time.Sleep,
	}
}

// Acquire runs the full device-code flow: request a device code, notify the
// user, then poll the token endpoint sequentially at the server-advised
// interval until the user completes sign-in, the provider denies the
// request, or the device code's own lifetime elapses. The interval is
// honored exactly; no backoff or jitter, since the protocol defines its own
// cadence.
func (f *UserFlow) Acquire(ctx context.Context, p *profile.User) (*profile.UserToken, error) {
	dc, err := f.requestDeviceCode(ctx, p)
	if err != nil {
		return nil, err
	}

	f.Notifier.Notify(dc.UserCode, dc.VerificationURI, dc.Message)

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", p.Authority, p.Tenant)
	form := url.Values{}
	form.Set("grant_type", deviceCodeGrant)
	form.Set("client_id", p.ClientID)
	form.Set("device_code", dc.DeviceCode)

	interval := dc.Interval
	if interval <= 0 {
		interval = 5
	}
	attempts := dc.ExpiresIn / interval

	for i := int64(0); i < attempts; i++ {
		resp, err := postForm(ctx, f.Client, endpoint, form)
		if err != nil {
			// A single network blip must not abort a multi-minute
			// interactive flow; retry on the next interval.
			f.Logger.Warn("token poll failed, retrying", "error", err)
			f.Sleep(time.Duration(interval) * time.Second)
			continue
		}

		// The endpoint legitimately returns error statuses while the user
		// has not finished signing in, so the status is ignored here; the
		// decoded error field decides what happens next.
		var token profile.UserToken
		err = json.NewDecoder(resp.Body).Decode(&token)
		resp.Body.Close()
		if err != nil {
			return nil, &Error{Kind: KindDecode, Msg: "failed to decode token response", Err: err}
		}

		switch token.Error {
		case "":
			token.ExpiresOn = f.Now().Unix() + token.ExpiresIn - expiryMarginSeconds
			return &token, nil
		case "authorization_pending":
			f.Logger.Debug("authorization pending", "interval", interval)
			f.Sleep(time.Duration(interval) * time.Second)
		default:
			return nil, &Error{
				Kind:   KindProtocol,
				Status: resp.StatusCode,
				Msg:    fmt.Sprintf("device authorization failed: %s", token.Error),
			}
		}
	}

	return nil, &Error{Kind: KindTimeout, Msg: "timed out waiting for device authorization"}
}

func (f *UserFlow) requestDeviceCode(ctx context.Context, p *profile.User) (*deviceCodeResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/devicecode", p.Authority, p.Tenant)

	form := url.Values{}
	form.Set("client_id", p.ClientID)
	form.Set("scope", p.Scope)

	f.Logger.Debug("requesting device code", "endpoint", endpoint, "client_id", p.ClientID)

	resp, err := postForm(ctx, f.Client, endpoint, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, &Error{
			Kind:   KindProtocol,
			Status: resp.StatusCode,
			Msg:    fmt.Sprintf("device code request failed with status %d", resp.StatusCode),
		}
	}

	var dc deviceCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&dc); err != nil {
		return nil, &Error{Kind: KindDecode, Msg: "failed to decode device code response", Err: err}
	}

	return &dc, nil
}

// Refresh exchanges a previously issued refresh token for a new UserToken.
// Every failure is non-fatal to the caller: refresh is a best-effort
// optimization and the caller falls back to the full device-code flow.
func (f *UserFlow) Refresh(ctx context.Context, p *profile.User, prev *profile.UserToken) (*profile.UserToken, error) {
	if prev.RefreshToken == "" {
		return nil, fmt.Errorf("no refresh token issued")
	}

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", p.Authority, p.Tenant)

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", prev.RefreshToken)
	form.Set("client_id", p.ClientID)
	form.Set("scope", p.Scope)

	f.Logger.Debug("attempting silent refresh", "client_id", p.ClientID)

	resp, err := postForm(ctx, f.Client, endpoint, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, fmt.Errorf("refresh failed with status %d", resp.StatusCode)
	}

	var token profile.UserToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if token.Error != "" {
		return nil, fmt.Errorf("refresh rejected: %s", token.Error)
	}

	token.ExpiresOn = f.Now().Unix() + token.ExpiresIn - expiryMarginSeconds
	return &token, nil
}
