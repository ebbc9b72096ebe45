package api

import (
	"context"
	"net/http"
	"net/url"

	"shortly-web/internal/models"
)

// URLService covers /urls
type URLService service

// ShortenOptions are the optional fields of a shorten request. Zero values are omitted.
type ShortenOptions struct {
	CustomAlias    string
	ExpirationDays int
}

func (s *URLService) Shorten(ctx context.Context, originalURL string, opts ShortenOptions, token string) (*models.CreateURLResponse, error) {
	body := models.CreateURLRequest{OriginalURL: originalURL}
	if opts.CustomAlias != "" {
		alias := opts.CustomAlias
		body.CustomAlias = &alias
	}
	if opts.ExpirationDays != 0 {
		days := opts.ExpirationDays
		body.ExpirationDays = &days
	}

	var out models.CreateURLResponse
	if err := s.client.do(ctx, http.MethodPost, "/urls/shorten", "/urls/shorten", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *URLService) List(ctx context.Context, token string) ([]models.ShortURL, error) {
	out := []models.ShortURL{}
	if err := s.client.do(ctx, http.MethodGet, "/urls", "/urls", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *URLService) Stats(ctx context.Context, shortCode, token string) (*models.URLStats, error) {
	var out models.URLStats
	path := "/urls/" + url.PathEscape(shortCode) + "/stats"
	if err := s.client.do(ctx, http.MethodGet, "/urls/{code}/stats", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *URLService) Delete(ctx context.Context, shortCode, token string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := "/urls/" + url.PathEscape(shortCode)
	if err := s.client.do(ctx, http.MethodDelete, "/urls/{code}", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Preview fetches display metadata for a destination URL. No token is sent.
func (s *URLService) Preview(ctx context.Context, target string) (*models.URLPreview, error) {
	var out models.URLPreview
	path := "/urls/preview?url=" + url.QueryEscape(target)
	if err := s.client.do(ctx, http.MethodGet, "/urls/preview", path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
