package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokengen-cli/tokengen/internal/config"
	"github.com/tokengen-cli/tokengen/internal/profile"
	iface "github.com/tokengen-cli/tokengen/internal/service/interface"
)

func newTestProfileService(t *testing.T) iface.ProfileService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProfileService(config.NewManager(config.Paths{ConfigDir: t.TempDir()}, logger))
}

func appRecord(name string) profile.Record {
	return profile.Record{Type: "App", Name: name, ClientID: "c", Secret: "s", Tenant: "t", Authority: "a", Resource: "r"}
}

func TestProfileAddListGet(t *testing.T) {
	svc := newTestProfileService(t)

	require.NoError(t, svc.Add(appRecord("one")))
	require.NoError(t, svc.Add(appRecord("two")))

	list := svc.List()
	require.Len(t, list, 2)

	rec, found := svc.Get("two")
	require.True(t, found)
	assert.Equal(t, "two", rec.Name)
}

func TestProfileAddFirstBecomesDefault(t *testing.T) {
	svc := newTestProfileService(t)

	require.NoError(t, svc.Add(appRecord("one")))
	assert.Equal(t, "one", svc.DefaultName())

	require.NoError(t, svc.Add(appRecord("two")))
	assert.Equal(t, "one", svc.DefaultName())
}

func TestProfileAddRejectsDuplicatesAndBadRecords(t *testing.T) {
	svc := newTestProfileService(t)
	require.NoError(t, svc.Add(appRecord("one")))

	assert.Error(t, svc.Add(appRecord("one")))
	assert.Error(t, svc.Add(profile.Record{Name: "typed-wrong", Type: "Robot"}))
	assert.Error(t, svc.Add(profile.Record{Type: "App"}))
}

func TestProfileRemove(t *testing.T) {
	svc := newTestProfileService(t)
	require.NoError(t, svc.Add(appRecord("one")))
	require.NoError(t, svc.Add(appRecord("two")))

	require.NoError(t, svc.Remove("one"))
	assert.Len(t, svc.List(), 1)
	assert.Empty(t, svc.DefaultName(), "removing the default clears it")

	assert.Error(t, svc.Remove("one"))
}

func TestProfileSetDefault(t *testing.T) {
	svc := newTestProfileService(t)
	require.NoError(t, svc.Add(appRecord("one")))
	require.NoError(t, svc.Add(appRecord("two")))

	require.NoError(t, svc.SetDefault("two"))
	assert.Equal(t, "two", svc.DefaultName())

	assert.Error(t, svc.SetDefault("missing"))
}
