package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tasktube/internal/shared"
	"golang.org/x/oauth2"
)

// Mirror is a secondary credential store consulted when the primary file is
// missing or unreadable. Implemented by the sqlite-backed repository.
type Mirror interface {
	Save(cred *Credential) error
	Load() (*Credential, error)
	Clear() error
}

// Store owns the credential lifecycle: a JSON file as the primary record, an
// optional mirror as fallback, and transparent refresh of expired tokens.
// All methods are safe for concurrent use; an in-flight refresh is shared so
// concurrent callers trigger at most one token-endpoint round trip.
type Store struct {
	mu     sync.Mutex
	path   string
	conf   *oauth2.Config
	mirror Mirror
	logger *log.Logger
	cached *Credential
}

func NewStore(path string, conf *oauth2.Config, mirror Mirror, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}
	return &Store{path: path, conf: conf, mirror: mirror, logger: logger}
}

// Load returns a usable credential or nil. Missing files, corrupt records,
// and failed refreshes all degrade to nil (treated as "not authenticated");
// none of them is an error the caller has to handle.
func (s *Store) Load(ctx context.Context) *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached.Valid() {
		cp := *s.cached
		return &cp
	}

	cred := s.read()
	if cred == nil {
		s.cached = nil
		return nil
	}
	if cred.Expired() {
		refreshed, err := s.refresh(ctx, cred)
		if err != nil {
			s.logger.Warn("credential refresh failed, clearing stored credential", "error", err)
			s.clearLocked()
			return nil
		}
		cred = refreshed
		if err := s.saveLocked(cred); err != nil {
			s.logger.Warn("unable to persist refreshed credential", "error", err)
		}
	}
	s.cached = cred
	cp := *cred
	return &cp
}

// Save writes the credential to the primary file atomically and updates the
// mirror. A mirror failure is logged, not returned; the primary write is the
// source of truth.
func (s *Store) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(cred); err != nil {
		return err
	}
	s.cached = cred
	return nil
}

// Clear removes the credential from both stores. Absence is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	return nil
}

// IsValid reports whether a usable credential is currently stored, without
// refreshing or touching the network.
func (s *Store) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached.Valid() {
		return true
	}
	return s.read().Valid()
}

// read loads from the primary file, falling back to the mirror when the file
// is missing or corrupt. When both yield a record the freshest unexpired one
// wins.
func (s *Store) read() *Credential {
	primary := s.readFile()
	if s.mirror == nil {
		return primary
	}
	if primary == nil {
		mirrored, err := s.mirror.Load()
		if err != nil {
			s.logger.Debug("credential mirror unavailable", "error", err)
			return nil
		}
		return mirrored
	}
	if primary.Expired() {
		if mirrored, err := s.mirror.Load(); err == nil && mirrored != nil && !mirrored.Expired() {
			return mirrored
		}
	}
	return primary
}

func (s *Store) readFile() *Credential {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("unable to read credential file", "path", s.path, "error", err)
		}
		return nil
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		s.logger.Warn("credential file is corrupt, ignoring", "path", s.path, "error", err)
		return nil
	}
	if cred.AccessToken == "" {
		return nil
	}
	return &cred
}

func (s *Store) refresh(ctx context.Context, cred *Credential) (*Credential, error) {
	if cred.RefreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}
	if s.conf == nil {
		return nil, shared.ErrMissingCredentials
	}
	tok, err := s.conf.TokenSource(ctx, cred.Token()).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	refreshed := credentialFromToken(tok, cred.Scopes)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}
	return refreshed, nil
}

func (s *Store) saveLocked(cred *Credential) error {
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create credential directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("unable to create temp credential file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("unable to write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("unable to close credential file: %w", err)
	}
	if err := os.Chmod(name, 0o600); err != nil {
		os.Remove(name)
		return fmt.Errorf("unable to set credential file mode: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("unable to replace credential file: %w", err)
	}
	if s.mirror != nil {
		if err := s.mirror.Save(cred); err != nil {
			s.logger.Warn("unable to update credential mirror", "error", err)
		}
	}
	return nil
}

func (s *Store) clearLocked() {
	s.cached = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("unable to remove credential file", "path", s.path, "error", err)
	}
	if s.mirror != nil {
		if err := s.mirror.Clear(); err != nil {
			s.logger.Warn("unable to clear credential mirror", "error", err)
		}
	}
}
