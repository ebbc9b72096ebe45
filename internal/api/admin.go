package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"shortly-web/internal/models"
)

// AdminService covers /admin. The backend re-checks admin privilege on every call;
// holding an admin-flagged session on this side only decides what gets rendered.
type AdminService service

const defaultTopURLsLimit = 10

func (s *AdminService) Stats(ctx context.Context, token string) (*models.AdminStats, error) {
	var out models.AdminStats
	if err := s.client.do(ctx, http.MethodGet, "/admin/stats/summary", "/admin/stats/summary", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) TopURLs(ctx context.Context, token string, limit int) (*models.TopURLsResponse, error) {
	if limit <= 0 {
		limit = defaultTopURLsLimit
	}
	var out models.TopURLsResponse
	path := "/admin/top-urls?limit=" + strconv.Itoa(limit)
	if err := s.client.do(ctx, http.MethodGet, "/admin/top-urls", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) DeleteURL(ctx context.Context, shortCode, token string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := "/admin/urls/" + url.PathEscape(shortCode)
	if err := s.client.do(ctx, http.MethodDelete, "/admin/urls/{code}", path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
