package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"shortly-web/internal/cache"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore is the single durable slot holding the bearer token. Writers do not
// coordinate: the last Save or Clear wins.
type TokenStore interface {
	// Load returns "" when the slot is empty
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(ctx context.Context) error {
	return m.Save(ctx, "")
}

// CacheTokenStore keeps the slot of one browser session in the cache
type CacheTokenStore struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
	now   func() time.Time
}

// NewCacheTokenStore uses ttl for tokens that carry no readable expiry
func NewCacheTokenStore(c cache.Cache, sessionID string, ttl time.Duration) *CacheTokenStore {
	return &CacheTokenStore{
		cache: c,
		key:   cache.SessionTokenKey(sessionID),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CacheTokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.cache.Get(ctx, s.key)
	if errors.Is(err, cache.ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (s *CacheTokenStore) Save(ctx context.Context, token string) error {
	return s.cache.Set(ctx, s.key, token, TokenTTL(token, s.now(), s.ttl))
}

func (s *CacheTokenStore) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}

// TokenTTL is how long a token is worth keeping: until its exp claim when the
// token is a JWT carrying one, otherwise fallback. The signature is not checked;
// the backend does that on every request.
func TokenTTL(token string, now time.Time, fallback time.Duration) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fallback
	}
	if claims.ExpiresAt == nil {
		return fallback
	}
	ttl := claims.ExpiresAt.Sub(now)
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

// FileTokenStore keeps the slot in a file readable only by its owner
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Chmod(f.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict token file: %w", err)
	}
	return nil
}

func (f *FileTokenStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
