package views

import (
	"context"
	"sync"

	"shortly-web/internal/api"
	"shortly-web/internal/models"
	"shortly-web/internal/session"

	"github.com/sirupsen/logrus/hooks/test"
)

type fakeURLs struct {
	mu    sync.Mutex
	calls []string
	token string

	list       []models.ShortURL
	listErr    error
	stats      *models.URLStats
	statsErr   error
	deleteErr  error
	shortenErr error
	shortened  *api.ShortenOptions
	preview    *models.URLPreview
	previewErr error
}

func (f *fakeURLs) record(call, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.token = token
}

func (f *fakeURLs) List(ctx context.Context, token string) ([]models.ShortURL, error) {
	f.record("list", token)
	return f.list, f.listErr
}

func (f *fakeURLs) Stats(ctx context.Context, shortCode, token string) (*models.URLStats, error) {
	f.record("stats", token)
	return f.stats, f.statsErr
}

func (f *fakeURLs) Delete(ctx context.Context, shortCode, token string) (*models.MessageResponse, error) {
	f.record("delete", token)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &models.MessageResponse{Message: "deleted"}, nil
}

func (f *fakeURLs) Shorten(ctx context.Context, originalURL string, opts api.ShortenOptions, token string) (*models.CreateURLResponse, error) {
	f.record("shorten", token)
	f.shortened = &opts
	if f.shortenErr != nil {
		return nil, f.shortenErr
	}
	return &models.CreateURLResponse{ShortCode: "abc1234", ShortURL: "http://s.test/abc1234", OriginalURL: originalURL}, nil
}

func (f *fakeURLs) Preview(ctx context.Context, target string) (*models.URLPreview, error) {
	f.record("preview", "")
	return f.preview, f.previewErr
}

type fakeAdmin struct {
	mu       sync.Mutex
	calls    []string
	stats    *models.AdminStats
	statsErr error
	top      *models.TopURLsResponse
	topErr   error
	limit    int
}

func (f *fakeAdmin) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAdmin) Stats(ctx context.Context, token string) (*models.AdminStats, error) {
	f.record("stats")
	return f.stats, f.statsErr
}

func (f *fakeAdmin) TopURLs(ctx context.Context, token string, limit int) (*models.TopURLsResponse, error) {
	f.record("top")
	f.mu.Lock()
	f.limit = limit
	f.mu.Unlock()
	return f.top, f.topErr
}

func (f *fakeAdmin) DeleteURL(ctx context.Context, shortCode, token string) (*models.MessageResponse, error) {
	f.record("delete")
	return &models.MessageResponse{Message: "deleted"}, nil
}

// fakeAuth validates exactly one token as user
type fakeAuth struct {
	token   string
	user    *models.User
	meCalls int
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (*models.RegisterResponse, error) {
	return &models.RegisterResponse{ID: "u1", Email: email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	return &models.TokenResponse{AccessToken: f.token}, nil
}

func (f *fakeAuth) Me(ctx context.Context, token string) (*models.User, error) {
	f.meCalls++
	if token != f.token || f.user == nil {
		return nil, &api.Error{StatusCode: 401, Message: "Could not validate credentials"}
	}
	return f.user, nil
}

// newSession builds a store whose slot holds persisted and whose backend accepts only "tok"
func newSession(persisted string, user *models.User) (*session.Store, *fakeAuth) {
	auth := &fakeAuth{token: "tok", user: user}
	log, _ := test.NewNullLogger()
	return session.NewStore(auth, session.NewMemoryTokenStore(persisted), log), auth
}
