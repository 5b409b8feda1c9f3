// Package cache persists issued tokens in a single JSON file keyed by
// profile fingerprint.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tokengen-cli/tokengen/internal/profile"
)

const cacheFileName = "cache.json"

// persistMargin is the minimum remaining lifetime an entry needs to stay in
// the persisted file. It is deliberately narrower than the read-time
// margins: a token too stale to hand out right now may still be worth
// keeping cached briefly.
const persistMargin = time.Minute

// Store is a file-backed token cache. Load never fails and Save never
// reports an error; both degrade with a logged warning so the CLI can always
// authenticate from scratch. No cross-process locking is attempted:
// invocations are short-lived and the last writer wins.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

func (s *Store) path() string { return filepath.Join(s.dir, cacheFileName) }

// Load reads the persisted cache. A missing, unreadable or malformed file
// yields an empty map: a cache that fails to decode is discarded wholesale
// rather than partially trusted.
func (s *Store) Load() map[string]profile.Token {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("unable to read token cache", "path", s.path(), "error", err)
		}
		return map[string]profile.Token{}
	}

	var entries map[string]profile.Envelope
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding malformed token cache", "path", s.path(), "error", err)
		return map[string]profile.Token{}
	}

	tokens := make(map[string]profile.Token, len(entries))
	for key, env := range entries {
		token, err := env.Token()
		if err != nil {
			s.logger.Warn("discarding malformed token cache", "path", s.path(), "error", err)
			return map[string]profile.Token{}
		}
		tokens[key] = token
	}
	return tokens
}

// Save filters out entries with less than a minute of life left, keeping the
// file self-cleaning, then atomically replaces it so a failed write never
// leaves a corrupt cache visible.
func (s *Store) Save(tokens map[string]profile.Token) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.logger.Warn("unable to create cache directory", "path", s.dir, "error", err)
		return
	}

	entries := make(map[string]profile.Envelope, len(tokens))
	for key, token := range tokens {
		if token.ExpiredWithin(persistMargin) {
			continue
		}
		entries[key] = profile.Wrap(token)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn("unable to encode token cache", "error", err)
		return
	}

	tmp, err := os.CreateTemp(s.dir, cacheFileName+".*")
	if err != nil {
		s.logger.Warn("unable to write token cache", "path", s.path(), "error", err)
		return
	}

	if _, err := tmp.Write(data); err == nil {
		err = tmp.Chmod(0600)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), s.path())
	}
	if err != nil {
		os.Remove(tmp.Name())
		s.logger.Warn("unable to write token cache", "path", s.path(), "error", err)
	}
}
