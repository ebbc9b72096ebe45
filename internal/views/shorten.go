package views

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"shortly-web/internal/api"
	"shortly-web/internal/cache"
	"shortly-web/internal/format"
	"shortly-web/internal/models"

	"github.com/sirupsen/logrus"
)

const previewTTL = time.Hour

// ShortenForm is the raw form input. ExpirationDays is kept as text so the
// form can be re-rendered exactly as submitted.
type ShortenForm struct {
	URL            string
	CustomAlias    string
	ExpirationDays string
}

type ShortenPage struct {
	Outcome Outcome
	Form    ShortenForm

	ShortURL  string
	ShortCode string
	Error     string
}

// NewShortenPage gates the empty form
func NewShortenPage(ctx context.Context, src TokenSource) (*ShortenPage, error) {
	_, outcome, err := requireToken(ctx, src)
	return &ShortenPage{Outcome: outcome}, err
}

// Shorten validates the form and, only when it is valid, asks the backend for a short link
func Shorten(ctx context.Context, src TokenSource, urls URLAPI, form ShortenForm) (*ShortenPage, error) {
	form.URL = strings.TrimSpace(form.URL)
	form.CustomAlias = strings.TrimSpace(form.CustomAlias)
	form.ExpirationDays = strings.TrimSpace(form.ExpirationDays)
	page := &ShortenPage{Outcome: OutcomeReady, Form: form}

	opts, err := validateShortenForm(form)
	if err != nil {
		page.Error = err.Error()
		return page, nil
	}

	token, outcome, err := requireToken(ctx, src)
	if err != nil || outcome != OutcomeReady {
		page.Outcome = outcome
		return page, err
	}

	resp, err := urls.Shorten(ctx, form.URL, opts, token)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		page.Error = errorMessage(err, "Failed to shorten URL")
		return page, nil
	}
	page.ShortURL = resp.ShortURL
	page.ShortCode = resp.ShortCode
	return page, nil
}

func validateShortenForm(form ShortenForm) (api.ShortenOptions, error) {
	var opts api.ShortenOptions
	if !format.IsValidURL(form.URL) {
		return opts, format.ErrInvalidURL
	}
	if err := format.ValidateAlias(form.CustomAlias); err != nil {
		return opts, err
	}
	if form.ExpirationDays != "" {
		days, err := strconv.Atoi(form.ExpirationDays)
		if err != nil {
			return opts, format.ErrInvalidExpiration
		}
		if err := format.ValidateExpirationDays(days); err != nil {
			return opts, err
		}
		opts.ExpirationDays = days
	}
	opts.CustomAlias = form.CustomAlias
	return opts, nil
}

// Previewer fetches destination previews, caching successful ones when a cache is configured
type Previewer struct {
	api   PreviewAPI
	cache cache.Cache
	log   logrus.FieldLogger
}

func NewPreviewer(previewAPI PreviewAPI, c cache.Cache, log logrus.FieldLogger) *Previewer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Previewer{api: previewAPI, cache: c, log: log}
}

// Preview returns nil for invalid URLs and for any failure
func (p *Previewer) Preview(ctx context.Context, target string) *models.URLPreview {
	target = strings.TrimSpace(target)
	if !format.IsValidURL(target) {
		return nil
	}

	key := cache.PreviewKey(target)
	if p.cache != nil {
		var cached models.URLPreview
		err := p.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached
		}
		if !errors.Is(err, cache.ErrNotFound) {
			p.log.WithError(err).Warn("preview cache read failed")
		}
	}

	preview, err := p.api.Preview(ctx, target)
	if err != nil {
		p.log.WithError(err).WithField("url", target).Debug("preview unavailable")
		return nil
	}
	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, key, preview, previewTTL); err != nil {
			p.log.WithError(err).Warn("preview cache write failed")
		}
	}
	return preview
}
