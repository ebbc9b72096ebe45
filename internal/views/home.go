package views

import (
	"context"
	"strings"

	"shortly-web/internal/models"
	"shortly-web/internal/session"
)

// Nav is the identity-dependent part of every page
type Nav struct {
	User          *models.User
	Authenticated bool
	Admin         bool
}

// LoadNav hydrates the session and describes who is signed in
func LoadNav(ctx context.Context, id Identity) (Nav, error) {
	if err := id.Hydrate(ctx); err != nil {
		return Nav{}, err
	}
	snap := id.Snapshot()
	if snap.State != session.StateAuthenticated || snap.User == nil {
		return Nav{}, nil
	}
	return Nav{User: snap.User, Authenticated: true, Admin: snap.User.IsAdmin}, nil
}

// Credentials is a submitted login or register form
type Credentials struct {
	Email    string
	Password string
	Confirm  string // register only
}

// Validate reports the first problem with the form as an inline message.
// register enables the password confirmation check.
func (c *Credentials) Validate(register bool) string {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return "Email and password are required"
	}
	if !strings.Contains(c.Email, "@") {
		return "Please enter a valid email address"
	}
	if register && c.Password != c.Confirm {
		return "Passwords do not match"
	}
	return ""
}
