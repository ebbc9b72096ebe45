// Package session owns the authenticated identity of one client: the bearer token,
// the user it was validated as, and the transitions between them.
//
//	Unknown --Hydrate--> Validating --me ok--> Authenticated
//	                         |
//	                         +--me failed / no token--> Anonymous
//
// Login, Register and Logout move between these states. Results of calls that
// complete after Close, or after their context was cancelled, are dropped.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shortly-web/internal/models"

	"github.com/sirupsen/logrus"
)

type State int

const (
	StateUnknown State = iota
	StateValidating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

var (
	// ErrNotValidated means login returned a token but /auth/me rejected it
	ErrNotValidated = errors.New("session could not be validated")
	ErrClosed       = errors.New("session store closed")
)

// AuthAPI is the part of the backend the store talks to
type AuthAPI interface {
	Register(ctx context.Context, email, password string) (*models.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// Snapshot is a read-only copy of the session
type Snapshot struct {
	State   State
	Token   string
	User    *models.User
	Loading bool
}

type Store struct {
	auth   AuthAPI
	tokens TokenStore
	log    logrus.FieldLogger

	mu       sync.Mutex
	state    State
	token    string
	user     *models.User
	loading  int
	hydrated bool
	closed   bool
}

func NewStore(auth AuthAPI, tokens TokenStore, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		auth:   auth,
		tokens: tokens,
		log:    log,
		state:  StateUnknown,
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state, Token: s.token, Loading: s.loading > 0}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

// PersistedToken reads the token slot. An empty string means no token is stored.
func (s *Store) PersistedToken(ctx context.Context) (string, error) {
	return s.tokens.Load(ctx)
}

// Hydrate validates the persisted token once. Validation failures are not
// returned: the slot is erased and the session becomes anonymous. The only
// errors are a cancelled context and a closed store.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.hydrated {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to read token slot")
	}
	if err := s.dropped(ctx); err != nil {
		return err
	}
	if token == "" {
		s.mu.Lock()
		s.resetLocked()
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.state = StateValidating
	s.token = token
	s.loading++
	s.mu.Unlock()
	defer s.done()

	user, err := s.auth.Me(ctx, token)
	if err := s.dropped(ctx); err != nil {
		return err
	}
	if err != nil {
		s.log.WithError(err).Debug("persisted token rejected")
		s.invalidate(ctx)
		return nil
	}

	s.mu.Lock()
	s.authenticateLocked(token, user)
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a token, persists it and validates it.
// When validation fails the slot is erased and the returned error wraps
// ErrNotValidated together with the cause.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.done()

	resp, err := s.auth.Login(ctx, email, password)
	if err := s.dropped(ctx); err != nil {
		return err
	}
	if err != nil {
		s.settleAnonymous()
		return err
	}

	if err := s.tokens.Save(ctx, resp.AccessToken); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.mu.Lock()
	s.state = StateValidating
	s.token = resp.AccessToken
	s.user = nil
	s.mu.Unlock()

	user, err := s.auth.Me(ctx, resp.AccessToken)
	if err := s.dropped(ctx); err != nil {
		return err
	}
	if err != nil {
		s.invalidate(ctx)
		return fmt.Errorf("%w: %w", ErrNotValidated, err)
	}

	s.mu.Lock()
	s.authenticateLocked(resp.AccessToken, user)
	s.mu.Unlock()
	s.log.WithField("user_id", user.ID).Debug("logged in")
	return nil
}

// Register creates the account and then logs in with the same credentials
func (s *Store) Register(ctx context.Context, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.done()

	if _, err := s.auth.Register(ctx, email, password); err != nil {
		if dropErr := s.dropped(ctx); dropErr == nil {
			s.settleAnonymous()
		}
		return err
	}
	if err := s.dropped(ctx); err != nil {
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout forgets the session without calling the backend
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Close marks the store torn down. Calls still in flight will not touch it.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.loading++
	return nil
}

func (s *Store) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && s.loading > 0 {
		s.loading--
	}
}

// dropped reports why a finished call must not be applied
func (s *Store) dropped(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return ctx.Err()
}

func (s *Store) invalidate(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("failed to clear token slot")
	}
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

// settleAnonymous ends the Unknown state after a failed sign-in. Any other
// state is kept as it was.
func (s *Store) settleAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateUnknown {
		s.state = StateAnonymous
		s.hydrated = true
	}
}

func (s *Store) authenticateLocked(token string, user *models.User) {
	s.state = StateAuthenticated
	s.token = token
	s.user = user
	s.hydrated = true
}

func (s *Store) resetLocked() {
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.hydrated = true
}
