package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"institute-site-backend/config"
	"institute-site-backend/internal/mw"
	"institute-site-backend/internal/session"
	"institute-site-backend/internal/store"
	"institute-site-backend/internal/view"
)

// NewRouter creates and configures the site's Gin router.
func NewRouter(s store.Store, sessions *session.Manager, cfg config.ServerConfig, lgr zerolog.Logger) (*gin.Engine, error) {
	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), mw.RequestLogger(lgr), mw.Sessions(sessions))

	// Public list pages are cached until an admin adds to them.
	pages := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(pages, cfg.CacheTTL)

	handler := NewHandler(s, sessions, pages)

	r.StaticFS("/static", view.Static())
	r.GET("/healthz", handler.Health)

	r.GET("/", handler.Home)
	r.GET("/placements", handler.Placements)
	r.GET("/faculty", caching, handler.Faculty)
	r.GET("/events", caching, handler.Events)
	r.GET("/articles", caching, handler.Articles)
	r.POST("/chatbot", newRateLimiter(cfg), handler.Chatbot)

	admin := r.Group("/admin")
	{
		admin.GET("/login", handler.LoginPage)
		admin.POST("/login", newRateLimiter(cfg), handler.Login)

		gated := admin.Group("", mw.RequireAdmin())
		gated.GET("/dashboard", handler.Dashboard)
		gated.GET("/logout", handler.Logout)
		gated.GET("/faculty", handler.ManageFaculty)
		gated.POST("/faculty", handler.AddFaculty)
		gated.GET("/events", handler.ManageEvents)
		gated.POST("/events", handler.AddEvent)
		gated.GET("/articles", handler.ManageArticles)
		gated.POST("/articles", handler.AddArticle)
	}

	return r, nil
}

// newRateLimiter builds a per-IP limiter. A non-positive rate disables it.
func newRateLimiter(cfg config.ServerConfig) gin.HandlerFunc {
	if cfg.RateLimitPerSec <= 0 {
		return mw.RateLimiter(rate.Inf, 0)
	}
	return mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
}
