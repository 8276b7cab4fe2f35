// ABOUTME: Session store for the Voltride client, the single source of truth for login state
// ABOUTME: Pairs an in-memory identity with a token persisted in the config directory

package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// errIncompleteSession is returned when a login is attempted with a
// session missing its token or identity.
var errIncompleteSession = errors.New("session requires both token and identity")

// Session pairs a bearer token with the identity it belongs to.
// Both fields are always set together; a Session with only one of them
// is never stored.
type Session struct {
	Token    string
	Identity *Identity
}

// TokenFile persists the bearer token across invocations. It is the only
// durable client-side state; the identity itself is re-fetched at startup.
type TokenFile struct {
	configDir string
}

type tokenData struct {
	Token string `json:"token"`
}

// NewTokenFile creates a token file manager rooted at the given config
// directory.
func NewTokenFile(configDir string) *TokenFile {
	return &TokenFile{configDir: configDir}
}

func (tf *TokenFile) path() string {
	return filepath.Join(tf.configDir, "session.json")
}

// Load reads the persisted token. A missing or unreadable file means no
// token, not an error worth surfacing to the user.
func (tf *TokenFile) Load() string {
	data, err := os.ReadFile(tf.path())
	if err != nil {
		return ""
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return ""
	}
	return td.Token
}

// Save writes the token with owner-only permissions.
func (tf *TokenFile) Save(token string) error {
	if err := os.MkdirAll(tf.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(tf.path(), data, 0600)
}

// Clear removes the persisted token. A missing file is fine.
func (tf *TokenFile) Clear() error {
	err := os.Remove(tf.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a token is currently persisted.
func (tf *TokenFile) Exists() bool {
	return tf.Load() != ""
}

// Store holds the current session and notifies subscribers on change.
// It performs no network I/O; callers that discover a stored token has
// gone stale server-side are expected to call Logout and re-prompt.
type Store struct {
	mu      sync.RWMutex
	tokens  *TokenFile
	session *Session
	subs    []func()
}

// NewStore creates an empty store backed by the given token file.
func NewStore(tokens *TokenFile) *Store {
	return &Store{tokens: tokens}
}

// Login installs the session and persists its token. The token and
// identity are validated as a consistent pair by the caller; the store
// only refuses structurally incomplete input.
func (s *Store) Login(session Session) error {
	if session.Token == "" || session.Identity == nil {
		return errIncompleteSession
	}
	if err := s.tokens.Save(session.Token); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = &session
	subs := s.subs
	s.mu.Unlock()

	notify(subs)
	return nil
}

// Logout clears the session and the persisted token. In-flight requests
// carrying the old token are not canceled; they will fail server-side
// and their callers handle that.
func (s *Store) Logout() {
	s.tokens.Clear()

	s.mu.Lock()
	s.session = nil
	subs := s.subs
	s.mu.Unlock()

	notify(subs)
}

// IsAuthenticated reports whether an identity is present.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// User returns the current identity, or nil for a guest.
func (s *Store) User() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.Identity
}

// Role returns the current role, or the empty role for a guest.
func (s *Store) Role() Role {
	if u := s.User(); u != nil {
		return u.Role
	}
	return ""
}

// Token returns the current session token, or empty for a guest.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// PersistedToken reads the durable token without touching the in-memory
// session. Used once at startup for rehydration.
func (s *Store) PersistedToken() string {
	return s.tokens.Load()
}

// Subscribe registers a callback invoked after every login or logout.
// Subscriptions last for the store's lifetime.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
