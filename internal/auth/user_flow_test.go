package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokengen-cli/tokengen/internal/profile"
)

type fakeNotifier struct {
	userCode        string
	verificationURI string
	calls           int
}

func (n *fakeNotifier) Notify(userCode, verificationURI, message string) {
	n.userCode = userCode
	n.verificationURI = verificationURI
	n.calls++
}

func userProfile(authority string) *profile.User {
	return &profile.User{
		Name:      "me",
		ClientID:  "client-1",
		Tenant:    "contoso",
		Authority: authority,
		Scope:     "openid offline_access",
	}
}

// Scripted poll behaviors beyond plain error bodies.
const (
	pollDrop    = "\x00drop"    // close the connection mid-request
	pollGarbage = "\x00garbage" // answer with a non-JSON body
)

// deviceServer serves the devicecode endpoint plus a scripted sequence of
// token endpoint responses, one per poll.
func deviceServer(t *testing.T, expiresIn, interval int64, polls []string) (*httptest.Server, *int) {
	t.Helper()
	pollCount := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/oauth2/v2.0/devicecode", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-1", r.PostFormValue("client_id"))
		assert.Equal(t, "openid offline_access", r.PostFormValue("scope"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"device_code":"dev-123","user_code":"ABCD-1234","verification_uri":"https://microsoft.com/devicelogin","expires_in":%d,"interval":%d}`, expiresIn, interval)
	})
	mux.HandleFunc("/contoso/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, deviceCodeGrant, r.PostFormValue("grant_type"))
		assert.Equal(t, "dev-123", r.PostFormValue("device_code"))

		require.Less(t, pollCount, len(polls), "more polls than scripted responses")
		body := polls[pollCount]
		pollCount++

		switch body {
		case pollDrop:
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		case pollGarbage:
			fmt.Fprint(w, "<html>")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if body != "" {
			// Pending and denial responses come back with an error status,
			// which the poller must tolerate.
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":%q}`, body)
			return
		}
		fmt.Fprint(w, `{"access_token":"at","id_token":"it","refresh_token":"rt","scope":"openid","expires_in":3600}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &pollCount
}

func testUserFlow(at time.Time, sleeps *[]time.Duration) *UserFlow {
	flow := NewUserFlow(&fakeNotifier{}, discardLogger())
	flow.Now = func() time.Time { return at }
	flow.Sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return flow
}

func TestUserFlowPendingThenSuccess(t *testing.T) {
	server, polls := deviceServer(t, 900, 5, []string{"authorization_pending", "authorization_pending", ""})

	at := time.Unix(1_700_000_000, 0)
	var sleeps []time.Duration
	flow := testUserFlow(at, &sleeps)
	notifier := &fakeNotifier{}
	flow.Notifier = notifier

	token, err := flow.Acquire(context.Background(), userProfile(server.URL))
	require.NoError(t, err)

	assert.Equal(t, 3, *polls)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeps)

	assert.Equal(t, "at", token.AccessToken)
	assert.Equal(t, "rt", token.RefreshToken)
	assert.Equal(t, at.Unix()+3600-5, token.ExpiresOn)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "ABCD-1234", notifier.userCode)
	assert.Equal(t, "https://microsoft.com/devicelogin", notifier.verificationURI)
}

func TestUserFlowPollTransportBlipIsTolerated(t *testing.T) {
	// A dropped connection on one poll must not abort the flow; it waits
	// one interval and polls again.
	server, polls := deviceServer(t, 900, 5, []string{pollDrop, ""})

	at := time.Unix(1_700_000_000, 0)
	var sleeps []time.Duration
	flow := testUserFlow(at, &sleeps)

	token, err := flow.Acquire(context.Background(), userProfile(server.URL))
	require.NoError(t, err)

	assert.Equal(t, 2, *polls)
	assert.Equal(t, []time.Duration{5 * time.Second}, sleeps)
	assert.Equal(t, "at", token.AccessToken)
	assert.Equal(t, at.Unix()+3600-5, token.ExpiresOn)
}

func TestUserFlowPollDecodeFailureIsFatal(t *testing.T) {
	server, polls := deviceServer(t, 900, 5, []string{pollGarbage})

	var sleeps []time.Duration
	flow := testUserFlow(time.Now(), &sleeps)

	_, err := flow.Acquire(context.Background(), userProfile(server.URL))

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, KindDecode, acqErr.Kind)
	assert.Equal(t, 2, acqErr.ExitCode())
	assert.Equal(t, 1, *polls)
	assert.Empty(t, sleeps)
}

func TestUserFlowDenialStopsImmediately(t *testing.T) {
	server, polls := deviceServer(t, 900, 5, []string{"access_denied"})

	var sleeps []time.Duration
	flow := testUserFlow(time.Now(), &sleeps)

	_, err := flow.Acquire(context.Background(), userProfile(server.URL))

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, KindProtocol, acqErr.Kind)
	assert.Contains(t, acqErr.Msg, "access_denied")

	assert.Equal(t, 1, *polls)
	assert.Empty(t, sleeps)
}

func TestUserFlowTimesOutAfterDeviceCodeLifetime(t *testing.T) {
	// expires_in 10 / interval 5 budgets exactly two polls.
	server, polls := deviceServer(t, 10, 5, []string{"authorization_pending", "authorization_pending"})

	var sleeps []time.Duration
	flow := testUserFlow(time.Now(), &sleeps)

	_, err := flow.Acquire(context.Background(), userProfile(server.URL))

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, KindTimeout, acqErr.Kind)
	assert.Equal(t, 2, acqErr.ExitCode())
	assert.Equal(t, 2, *polls)
	assert.Len(t, sleeps, 2)
}

func TestUserFlowDeviceCodeRequestFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	var sleeps []time.Duration
	flow := testUserFlow(time.Now(), &sleeps)

	_, err := flow.Acquire(context.Background(), userProfile(server.URL))

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, KindProtocol, acqErr.Kind)
	assert.Equal(t, http.StatusForbidden, acqErr.Status)
}

func TestUserFlowRefresh(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type":    r.PostFormValue("grant_type"),
			"refresh_token": r.PostFormValue("refresh_token"),
			"client_id":     r.PostFormValue("client_id"),
			"scope":         r.PostFormValue("scope"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at2","refresh_token":"rt2","expires_in":3600}`)
	}))
	defer server.Close()

	at := time.Unix(1_700_000_000, 0)
	var sleeps []time.Duration
	flow := testUserFlow(at, &sleeps)

	prev := &profile.UserToken{RefreshToken: "rt1"}
	token, err := flow.Refresh(context.Background(), userProfile(server.URL), prev)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": "rt1",
		"client_id":     "client-1",
		"scope":         "openid offline_access",
	}, gotForm)

	assert.Equal(t, "at2", token.AccessToken)
	assert.Equal(t, "rt2", token.RefreshToken)
	assert.Equal(t, at.Unix()+3600-5, token.ExpiresOn)
}

func TestUserFlowRefreshFailuresAreNonFatal(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rejected status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}},
		{"provider error", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			var sleeps []time.Duration
			flow := testUserFlow(time.Now(), &sleeps)

			_, err := flow.Refresh(context.Background(), userProfile(server.URL), &profile.UserToken{RefreshToken: "rt1"})
			assert.Error(t, err)
		})
	}
}

func TestUserFlowRefreshWithoutRefreshToken(t *testing.T) {
	var sleeps []time.Duration
	flow := testUserFlow(time.Now(), &sleeps)

	_, err := flow.Refresh(context.Background(), userProfile("http://unused"), &profile.UserToken{})
	assert.Error(t, err)
}
