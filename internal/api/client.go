// Package api is the single point of HTTP access to the shortener backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultErrorMessage = "An error occurred"

// Error is the only error the client returns for a failed call, whether the
// backend answered with a non-2xx status or could not be reached at all.
type Error struct {
	StatusCode int    // 0 when no response was received
	Message    string // human-readable, safe to show inline
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err came from a backend call
func IsAPIError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Observer is told about every finished request. Endpoint is the route template, not the concrete path.
type Observer func(method, endpoint string, status int, elapsed time.Duration)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Observer   Observer

	Auth  *AuthService
	URLs  *URLService
	Admin *AdminService
}

type service struct {
	client *Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
	common := service{client: c}
	c.Auth = (*AuthService)(&common)
	c.URLs = (*URLService)(&common)
	c.Admin = (*AdminService)(&common)
	return c
}

// do sends one request. A non-empty token is sent as a bearer credential, a non-nil
// body is JSON encoded and a non-nil out receives the decoded response.
func (c *Client) do(ctx context.Context, method, endpoint, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.observe(method, endpoint, 0, start)
		return &Error{Message: transportMessage(ctx), Err: err}
	}
	defer resp.Body.Close()
	c.observe(method, endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &Error{StatusCode: resp.StatusCode, Message: detailMessage(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: defaultErrorMessage, Err: err}
	}
	return nil
}

func (c *Client) observe(method, endpoint string, status int, start time.Time) {
	if c.Observer != nil {
		c.Observer(method, endpoint, status, time.Since(start))
	}
}

func transportMessage(ctx context.Context) string {
	if ctx.Err() != nil {
		return "Request was cancelled"
	}
	return "Unable to reach the server"
}

// detailMessage pulls the backend's "detail" out of an error body. FastAPI sends
// either a string or a list of validation errors carrying "msg".
func detailMessage(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return defaultErrorMessage
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		if text == "" {
			return defaultErrorMessage
		}
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
		return items[0].Msg
	}
	return defaultErrorMessage
}
