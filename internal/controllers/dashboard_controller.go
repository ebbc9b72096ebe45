package controllers

import (
	"net/http"

	"shortly-web/internal/middleware"
	"shortly-web/internal/views"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	urls   views.URLAPI
	appURL string
}

func NewDashboardController(urls views.URLAPI, appURL string) *DashboardController {
	return &DashboardController{urls: urls, appURL: appURL}
}

// Dashboard handles GET /dashboard
func (dc *DashboardController) Dashboard(c *gin.Context) {
	dc.renderDashboard(c, http.StatusOK, "")
}

// DeleteURL handles POST /dashboard/:code/delete
func (dc *DashboardController) DeleteURL(c *gin.Context) {
	outcome, msg, err := views.DeleteLink(c.Request.Context(), middleware.SessionFrom(c), dc.urls, c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, outcome) {
		return
	}
	if msg != "" {
		dc.renderDashboard(c, http.StatusOK, msg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (dc *DashboardController) renderDashboard(c *gin.Context, status int, deleteError string) {
	page, err := views.LoadDashboard(c.Request.Context(), middleware.SessionFrom(c), dc.urls, c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, page.Outcome) {
		return
	}
	if deleteError != "" {
		page.Error = deleteError
	}
	render(c, status, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"Nav":   protectedNav(),
		"Page":  page,
	})
}

// Stats handles GET /dashboard/:code
func (dc *DashboardController) Stats(c *gin.Context) {
	page, err := views.LoadStats(c.Request.Context(), middleware.SessionFrom(c), dc.urls, c.Param("code"), dc.appURL)
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, page.Outcome) {
		return
	}
	render(c, http.StatusOK, "stats.html", gin.H{
		"Title": "Analytics",
		"Nav":   protectedNav(),
		"Page":  page,
	})
}
