package controllers

import (
	"errors"
	"net/http"

	"shortly-web/internal/api"
	"shortly-web/internal/middleware"
	"shortly-web/internal/session"
	"shortly-web/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const notValidatedMessage = "We could not confirm your session. Please sign in again."

type AuthController struct {
	log logrus.FieldLogger
}

func NewAuthController(log logrus.FieldLogger) *AuthController {
	return &AuthController{log: log}
}

// Home handles GET /
func (ac *AuthController) Home(c *gin.Context) {
	nav, err := views.LoadNav(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "home.html", gin.H{"Title": "Shortly", "Nav": nav})
}

// ShowLogin handles GET /login
func (ac *AuthController) ShowLogin(c *gin.Context) {
	ac.showForm(c, "login.html", "Sign in")
}

// ShowRegister handles GET /register
func (ac *AuthController) ShowRegister(c *gin.Context) {
	ac.showForm(c, "register.html", "Create account")
}

func (ac *AuthController) showForm(c *gin.Context, name, title string) {
	nav, err := views.LoadNav(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	if nav.Authenticated {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	render(c, http.StatusOK, name, gin.H{"Title": title, "Nav": nav, "Email": "", "Error": ""})
}

// Login handles POST /login
func (ac *AuthController) Login(c *gin.Context) {
	creds := views.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	if msg := creds.Validate(false); msg != "" {
		ac.formError(c, "login.html", "Sign in", creds.Email, msg)
		return
	}

	err := middleware.SessionFrom(c).Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		ac.authFailed(c, "login.html", "Sign in", creds.Email, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Register handles POST /register
func (ac *AuthController) Register(c *gin.Context) {
	creds := views.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Confirm:  c.PostForm("confirm_password"),
	}
	if msg := creds.Validate(true); msg != "" {
		ac.formError(c, "register.html", "Create account", creds.Email, msg)
		return
	}

	err := middleware.SessionFrom(c).Register(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		ac.authFailed(c, "register.html", "Create account", creds.Email, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout handles POST /logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := middleware.SessionFrom(c).Logout(c.Request.Context()); err != nil {
		middleware.RequestLogger(c, ac.log).WithError(err).Warn("failed to clear token slot on logout")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (ac *AuthController) authFailed(c *gin.Context, name, title, email string, err error) {
	switch {
	case errors.Is(err, session.ErrClosed):
		fail(c, err)
	case c.Request.Context().Err() != nil:
		fail(c, c.Request.Context().Err())
	case errors.Is(err, session.ErrNotValidated):
		middleware.RequestLogger(c, ac.log).WithError(err).Warn("issued token failed validation")
		ac.formError(c, name, title, email, notValidatedMessage)
	default:
		if !api.IsAPIError(err) {
			middleware.RequestLogger(c, ac.log).WithError(err).Error("sign-in failed")
		}
		ac.formError(c, name, title, email, views.ErrorMessage(err))
	}
}

func (ac *AuthController) formError(c *gin.Context, name, title, email, msg string) {
	render(c, http.StatusUnprocessableEntity, name, gin.H{
		"Title": title,
		"Email": email,
		"Error": msg,
	})
}
