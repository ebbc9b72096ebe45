package controllers

import (
	"fmt"
	"net/http"
	"time"

	"shortly-web/internal/api"
	"shortly-web/internal/cache"
	"shortly-web/internal/config"
	"shortly-web/internal/metrics"
	"shortly-web/internal/middleware"
	"shortly-web/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// NewRouter wires every page of the web client. c may be nil, in which case
// tokens are kept in cookies and previews are not cached. The returned func
// releases background resources.
func NewRouter(cfg *config.Config, client *api.Client, c cache.Cache, log *logrus.Logger) (*gin.Engine, func(), error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	authController := NewAuthController(log)
	dashboardController := NewDashboardController(client.URLs, cfg.AppURL)
	shortenerController := NewShortenerController(client.URLs, views.NewPreviewer(client.URLs, c, log))
	adminController := NewAdminController(client.Admin, cfg.AdminTopURLsLimit, cfg.AppURL)
	qrcodeController := NewQRCodeController(cfg.AppURL)

	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	router := gin.New()
	// c.ClientIP feeds the rate limiter, so forwarded headers count only from known proxies
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery(), middleware.Logger(log), middleware.Metrics())

	// Health check and metrics (no session)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	pages := router.Group("")
	pages.Use(middleware.Session(middleware.SessionConfig{
		CookieName: cfg.SessionCookieName,
		TTL:        time.Duration(cfg.SessionTTLHours) * time.Hour,
		Secure:     cfg.CookieSecure,
		Cache:      c,
		Auth:       client.Auth,
		Log:        log,
	}))
	{
		pages.GET("/", authController.Home)

		auth := pages.Group("")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.GET("/login", authController.ShowLogin)
			auth.POST("/login", authController.Login)
			auth.GET("/register", authController.ShowRegister)
			auth.POST("/register", authController.Register)
		}
		pages.POST("/logout", authController.Logout)

		pages.GET("/dashboard", dashboardController.Dashboard)
		pages.GET("/dashboard/:code", dashboardController.Stats)
		pages.POST("/dashboard/:code/delete", dashboardController.DeleteURL)
		pages.GET("/dashboard/:code/qr.png", qrcodeController.GenerateQRCode)

		pages.GET("/shorten", shortenerController.ShowForm)
		pages.POST("/shorten", shortenerController.Shorten)
		pages.GET("/shorten/preview", shortenerController.Preview)

		pages.GET("/admin", adminController.Dashboard)
		pages.POST("/admin/urls/:code/delete", adminController.DeleteURL)
	}

	router.NoRoute(func(c *gin.Context) {
		render(c, http.StatusNotFound, "error.html", gin.H{
			"Title":   "Page not found",
			"Message": "The page you are looking for does not exist.",
		})
	})

	return router, authRateLimiter.Stop, nil
}
