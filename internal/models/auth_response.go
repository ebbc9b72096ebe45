package models

// RegisterResponse is the identity of a freshly created account
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the identity returned by /auth/me
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// MessageResponse is the body of delete endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
