package models

// CreateURLRequest represents the request body for creating a short URL
type CreateURLRequest struct {
	OriginalURL    string  `json:"original_url"`
	CustomAlias    *string `json:"custom_alias,omitempty"`
	ExpirationDays *int    `json:"expiration_days,omitempty"`
}
