package middleware

import (
	"context"
	"net/http"
	"time"

	"shortly-web/internal/cache"
	"shortly-web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sessionKey = "session"

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	// Cache holds token slots keyed by session id. Without it the token itself
	// travels in an HttpOnly cookie.
	Cache cache.Cache
	Auth  session.AuthAPI
	Log   logrus.FieldLogger
}

// Session gives every request its own session store bound to the browser's
// token slot, and closes the store once the handler chain returns.
func Session(cfg SessionConfig) gin.HandlerFunc {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		var tokens session.TokenStore
		if cfg.Cache != nil {
			sid := sessionID(c, cfg)
			tokens = &cacheSlot{
				CacheTokenStore: session.NewCacheTokenStore(cfg.Cache, sid, cfg.TTL),
				c:               c,
				cfg:             cfg,
				sid:             sid,
			}
		} else {
			tokens = newCookieTokenStore(c, cfg)
		}

		store := session.NewStore(cfg.Auth, tokens, RequestLogger(c, cfg.Log))
		c.Set(sessionKey, store)
		defer store.Close()

		c.Next()
	}
}

// SessionFrom returns the store set up by Session
func SessionFrom(c *gin.Context) *session.Store {
	if v, ok := c.Get(sessionKey); ok {
		if store, ok := v.(*session.Store); ok {
			return store
		}
	}
	return nil
}

// sessionID reads the session cookie, issuing a new random id when it is missing or malformed
func sessionID(c *gin.Context, cfg SessionConfig) string {
	if sid, err := c.Cookie(cfg.CookieName); err == nil {
		if _, err := uuid.Parse(sid); err == nil {
			return sid
		}
	}
	sid := uuid.NewString()
	setCookie(c, cfg, cfg.CookieName, sid, int(cfg.TTL/time.Second))
	return sid
}

func setCookie(c *gin.Context, cfg SessionConfig, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", cfg.Secure, true)
}

// cacheSlot re-issues the session cookie whenever a token is saved, so the
// cookie naming the slot lives exactly as long as the slot itself.
type cacheSlot struct {
	*session.CacheTokenStore
	c   *gin.Context
	cfg SessionConfig
	sid string
}

func (s *cacheSlot) Save(ctx context.Context, token string) error {
	if err := s.CacheTokenStore.Save(ctx, token); err != nil {
		return err
	}
	ttl := session.TokenTTL(token, time.Now(), s.cfg.TTL)
	setCookie(s.c, s.cfg, s.cfg.CookieName, s.sid, int(ttl/time.Second))
	return nil
}

// cookieTokenStore keeps the token slot in the browser. Writes become visible to
// later calls within the same request as well as to the next request.
type cookieTokenStore struct {
	c     *gin.Context
	cfg   SessionConfig
	name  string
	token string
}

func newCookieTokenStore(c *gin.Context, cfg SessionConfig) *cookieTokenStore {
	name := cfg.CookieName + "_token"
	token, _ := c.Cookie(name)
	return &cookieTokenStore{c: c, cfg: cfg, name: name, token: token}
}

func (s *cookieTokenStore) Load(ctx context.Context) (string, error) {
	return s.token, nil
}

func (s *cookieTokenStore) Save(ctx context.Context, token string) error {
	s.token = token
	ttl := session.TokenTTL(token, time.Now(), s.cfg.TTL)
	setCookie(s.c, s.cfg, s.name, token, int(ttl/time.Second))
	return nil
}

func (s *cookieTokenStore) Clear(ctx context.Context) error {
	s.token = ""
	setCookie(s.c, s.cfg, s.name, "", -1)
	return nil
}
