package controllers

import (
	"net/http"

	"shortly-web/internal/middleware"
	"shortly-web/internal/views"

	"github.com/gin-gonic/gin"
)

type ShortenerController struct {
	urls      views.URLAPI
	previewer *views.Previewer
}

func NewShortenerController(urls views.URLAPI, previewer *views.Previewer) *ShortenerController {
	return &ShortenerController{urls: urls, previewer: previewer}
}

// ShowForm handles GET /shorten
func (sc *ShortenerController) ShowForm(c *gin.Context) {
	page, err := views.NewShortenPage(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, page.Outcome) {
		return
	}
	render(c, http.StatusOK, "shorten.html", gin.H{
		"Title": "Shorten a link",
		"Nav":   protectedNav(),
		"Page":  page,
	})
}

// Shorten handles POST /shorten
func (sc *ShortenerController) Shorten(c *gin.Context) {
	form := views.ShortenForm{
		URL:            c.PostForm("url"),
		CustomAlias:    c.PostForm("custom_alias"),
		ExpirationDays: c.PostForm("expiration_days"),
	}
	page, err := views.Shorten(c.Request.Context(), middleware.SessionFrom(c), sc.urls, form)
	if err != nil {
		fail(c, err)
		return
	}
	if !proceed(c, page.Outcome) {
		return
	}

	status := http.StatusOK
	if page.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	data := gin.H{
		"Title": "Shorten a link",
		"Nav":   protectedNav(),
		"Page":  page,
	}
	if page.Error == "" {
		data["Preview"] = sc.previewer.Preview(c.Request.Context(), page.Form.URL)
	}
	render(c, status, "shorten.html", data)
}

// Preview handles GET /shorten/preview?url=
func (sc *ShortenerController) Preview(c *gin.Context) {
	preview := sc.previewer.Preview(c.Request.Context(), c.Query("url"))
	if preview == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, preview)
}
