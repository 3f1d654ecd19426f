package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Store holds the current bearer credential. At most one credential is active
// per store; presence of a credential does not guarantee validity — the
// server is the source of truth.
type Store interface {
	// Token returns the stored credential. It has no side effects and never
	// fails; a missing or unreadable credential reads as absent.
	Token() (string, bool)
	// SetToken overwrites any existing credential.
	SetToken(token string) error
	// Clear removes the credential. Idempotent; safe to call when no
	// credential exists.
	Clear() error
}

// MemoryStore keeps the credential in memory only. Used for tests and for
// sessions configured not to persist.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token implements Store.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set
}

// SetToken implements Store.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// tokenFile is the on-disk document holding the credential.
type tokenFile struct {
	AccessToken string `json:"access_token"`
}

// FileStore persists the credential to a file so the session survives process
// restarts. When the storage medium is unavailable the store degrades to
// in-memory behavior for the current process instead of failing.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger

	loaded   bool
	token    string
	set      bool
	degraded bool
}

// NewFileStore creates a store persisting to the given path. Construction
// never fails; the file is read lazily on first access.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Token implements Store.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.token, s.set
}

// SetToken implements Store. The in-memory copy is always updated; a failure
// to persist degrades the store to the current process lifetime and is not
// reported as an error.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.token = token
	s.set = true

	if err := s.persist(token); err != nil {
		s.degraded = true
		s.logger.Warn("session token could not be persisted, keeping it in memory only",
			zap.String("path", s.path),
			zap.Error(err))
		return nil
	}
	s.degraded = false
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.token = ""
	s.set = false

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("session token file could not be removed",
			zap.String("path", s.path),
			zap.Error(err))
	}
	return nil
}

// Degraded reports whether the last write could not be persisted.
func (s *FileStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// load reads the token file once. Corrupt or unreadable files read as absent.
func (s *FileStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("session token file unreadable",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return
	}

	var doc tokenFile
	if err := json.Unmarshal(data, &doc); err != nil || doc.AccessToken == "" {
		s.logger.Warn("session token file is corrupt, treating session as absent",
			zap.String("path", s.path))
		return
	}

	s.token = doc.AccessToken
	s.set = true
}

func (s *FileStore) persist(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(tokenFile{AccessToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
