package api

import (
	"context"
	"net/http"

	"shortly-web/internal/models"
)

// AuthService covers /auth. Only Me needs a token.
type AuthService service

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.RegisterResponse, error) {
	var out models.RegisterResponse
	body := models.RegisterRequest{Email: email, Password: password}
	if err := s.client.do(ctx, http.MethodPost, "/auth/register", "/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	var out models.TokenResponse
	body := models.LoginRequest{Email: email, Password: password}
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Me(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := s.client.do(ctx, http.MethodGet, "/auth/me", "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
