// Package views builds the data behind every page without knowing how it is
// rendered. Protected views read the persisted token first and never touch the
// backend without one.
package views

import (
	"context"
	"errors"
	"strings"

	"shortly-web/internal/api"
	"shortly-web/internal/models"
	"shortly-web/internal/session"
)

type Outcome int

const (
	// OutcomeReady means the view model is filled and can be rendered
	OutcomeReady Outcome = iota
	// OutcomeRedirectLogin means no usable session exists
	OutcomeRedirectLogin
	// OutcomeDenied means the session is valid but lacks admin privilege
	OutcomeDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeDenied:
		return "denied"
	default:
		return "ready"
	}
}

// TokenSource exposes the persisted token slot
type TokenSource interface {
	PersistedToken(ctx context.Context) (string, error)
}

// Identity is the session as seen by identity-dependent views
type Identity interface {
	TokenSource
	Hydrate(ctx context.Context) error
	Snapshot() session.Snapshot
}

type URLAPI interface {
	List(ctx context.Context, token string) ([]models.ShortURL, error)
	Stats(ctx context.Context, shortCode, token string) (*models.URLStats, error)
	Delete(ctx context.Context, shortCode, token string) (*models.MessageResponse, error)
	Shorten(ctx context.Context, originalURL string, opts api.ShortenOptions, token string) (*models.CreateURLResponse, error)
}

type PreviewAPI interface {
	Preview(ctx context.Context, target string) (*models.URLPreview, error)
}

type AdminAPI interface {
	Stats(ctx context.Context, token string) (*models.AdminStats, error)
	TopURLs(ctx context.Context, token string, limit int) (*models.TopURLsResponse, error)
	DeleteURL(ctx context.Context, shortCode, token string) (*models.MessageResponse, error)
}

// requireToken is the gate in front of every protected view
func requireToken(ctx context.Context, src TokenSource) (string, Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", OutcomeRedirectLogin, err
	}
	token, err := src.PersistedToken(ctx)
	if err != nil {
		return "", OutcomeRedirectLogin, err
	}
	if token == "" {
		return "", OutcomeRedirectLogin, nil
	}
	return token, OutcomeReady, nil
}

// ErrorMessage is the inline text for a failed call
func ErrorMessage(err error) string {
	return errorMessage(err, "An error occurred")
}

// errorMessage shows the backend's message for API errors. Anything else is
// internal and reads as fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
