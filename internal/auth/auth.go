// Package auth provides the auth store: a process-wide session flag and role,
// a login check against a static credential list, and logout.
//
// This is a demo gate, not a security boundary. The credential list is compiled
// into the binary and sessions never expire.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Linda-Mensah/hire-link/internal/config"
	"github.com/Linda-Mensah/hire-link/internal/schemas"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

// StorageKey is the slot key the session is persisted under.
const StorageKey = "auth-storage"

// DefaultLoginDelay simulates network latency on login.
const DefaultLoginDelay = 500 * time.Millisecond

// Credential is an email and plaintext password pair.
type Credential struct {
	Email    string
	Password string
}

// DefaultCredentials is the built-in admin list.
var DefaultCredentials = []Credential{
	{Email: "admin@hirelink.com", Password: "admin123"},
	{Email: "recruiter@hirelink.com", Password: "recruit123"},
	{Email: "hr@hirelink.com", Password: "hr123"},
}

// account is a credential with its password held as a bcrypt hash.
type account struct {
	email        string
	passwordHash string
}

// persistedSession is the on-slot representation
type persistedSession struct {
	Version int `json:"version"`
	types.Session
}

// Store holds the authentication state. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	session types.Session

	accounts  []account
	passwords *config.PasswordConfig
	delay     time.Duration
	slot      storage.Slot
	key       string
}

// Option configures a Store
type Option func(*Store)

// WithSlot persists the session after every change
func WithSlot(slot storage.Slot) Option {
	return func(s *Store) { s.slot = slot }
}

// WithLoginDelay overrides DefaultLoginDelay. Zero disables the delay.
func WithLoginDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithStorageKey overrides StorageKey
func WithStorageKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New creates an anonymous auth store accepting creds. Passwords are hashed with
// the given config; they are trimmed first, as login input is.
func New(passwords *config.PasswordConfig, creds []Credential, opts ...Option) (*Store, error) {
	if passwords == nil {
		return nil, fmt.Errorf("password config is required")
	}

	s := &Store{
		passwords: passwords,
		delay:     DefaultLoginDelay,
		key:       StorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range creds {
		hash, err := passwords.HashPassword(strings.TrimSpace(c.Password))
		if err != nil {
			return nil, fmt.Errorf("failed to hash credential for %s: %w", c.Email, err)
		}
		s.accounts = append(s.accounts, account{
			email:        strings.TrimSpace(c.Email),
			passwordHash: hash,
		})
	}

	return s, nil
}

// Load rehydrates the session from the slot. An empty slot yields LoadFresh, an
// invalid blob yields LoadCorrupted; both leave the session anonymous.
func (s *Store) Load(ctx context.Context) (storage.LoadResult, error) {
	if s.slot == nil {
		return storage.LoadFresh, nil
	}

	data, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to read auth session: %w", err)
	}

	if !ok {
		s.setSession(types.Session{})
		return storage.LoadFresh, nil
	}

	session, err := decodeSession(data)
	if err != nil {
		log.Printf("[auth] Stored session is corrupted, resetting to anonymous: %v", err)
		s.setSession(types.Session{})
		return storage.LoadCorrupted, nil
	}

	s.setSession(session)
	return storage.LoadRestored, nil
}

func decodeSession(data []byte) (types.Session, error) {
	if err := schemas.ValidateAuthSession(data); err != nil {
		return types.Session{}, err
	}
	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		return types.Session{}, fmt.Errorf("failed to parse auth session: %w", err)
	}
	return p.Session, nil
}

// Login waits for the simulated delay and then checks the trimmed email and password
// against the credential list. On a match the session becomes authenticated with the
// admin role. Any other input returns false and leaves the session untouched; the
// caller cannot tell an unknown email from a wrong password.
// The only error is ctx ending before the delay elapses.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}

	if !s.matches(strings.TrimSpace(email), strings.TrimSpace(password)) {
		log.Printf("[auth] Login rejected")
		return false, nil
	}

	s.update(ctx, func(sess *types.Session) {
		sess.IsAuthenticated = true
		sess.Role = types.RoleAdmin
	})
	log.Printf("[auth] Login succeeded")
	return true, nil
}

func (s *Store) matches(email, password string) bool {
	for _, a := range s.accounts {
		if a.email == email && s.passwords.VerifyPassword(password, a.passwordHash) {
			return true
		}
	}
	return false
}

// Logout returns the session to anonymous.
func (s *Store) Logout(ctx context.Context) {
	s.update(ctx, func(sess *types.Session) {
		*sess = types.Session{}
	})
}

// SetRole sets the role tag without touching the authenticated flag.
func (s *Store) SetRole(ctx context.Context, role types.Role) {
	s.update(ctx, func(sess *types.Session) {
		sess.Role = role
	})
}

// Session returns the current session.
func (s *Store) Session() types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// IsAuthenticated reports whether a login has succeeded since the last logout.
func (s *Store) IsAuthenticated() bool {
	return s.Session().IsAuthenticated
}

func (s *Store) setSession(session types.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}

// update applies fn to the session and persists the result. Persist failures are logged only.
func (s *Store) update(ctx context.Context, fn func(*types.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.session)
	if s.slot == nil {
		return
	}

	data, err := json.Marshal(persistedSession{Version: 1, Session: s.session})
	if err != nil {
		log.Printf("[auth] Failed to encode session: %v", err)
		return
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		log.Printf("[auth] Failed to persist session: %v", err)
	}
}
