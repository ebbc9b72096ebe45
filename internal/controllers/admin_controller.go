package controllers

import (
	"net/http"

	"shortly-web/internal/middleware"
	"shortly-web/internal/views"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	admin  views.AdminAPI
	limit  int
	appURL string
}

func NewAdminController(admin views.AdminAPI, limit int, appURL string) *AdminController {
	return &AdminController{admin: admin, limit: limit, appURL: appURL}
}

// Dashboard handles GET /admin
func (ac *AdminController) Dashboard(c *gin.Context) {
	ac.renderDashboard(c, "")
}

// DeleteURL handles POST /admin/urls/:code/delete
func (ac *AdminController) DeleteURL(c *gin.Context) {
	outcome, msg, err := views.AdminDeleteURL(c.Request.Context(), middleware.SessionFrom(c), ac.admin, c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, outcome) {
		return
	}
	if msg != "" {
		ac.renderDashboard(c, msg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (ac *AdminController) renderDashboard(c *gin.Context, deleteError string) {
	page, err := views.LoadAdmin(c.Request.Context(), middleware.SessionFrom(c), ac.admin, c.Query("q"), ac.limit)
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, page.Outcome) {
		return
	}
	render(c, http.StatusOK, "admin.html", gin.H{
		"Title":       "Admin",
		"Nav":         views.Nav{User: page.User, Authenticated: true, Admin: true},
		"Page":        page,
		"DeleteError": deleteError,
		"AppURL":      ac.appURL,
	})
}
