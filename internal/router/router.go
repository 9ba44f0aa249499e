package router

import (
	"fmt"

	"github.com/mission-tool/blog-web/internal/cache"
	"github.com/mission-tool/blog-web/internal/config"
	"github.com/mission-tool/blog-web/internal/http/handlers/shared"
	webhandlers "github.com/mission-tool/blog-web/internal/http/handlers/web"
	"github.com/mission-tool/blog-web/internal/http/render"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/logger"
	"github.com/mission-tool/blog-web/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.HTMLRender = c.Templates

	webHandler := webhandlers.New(c)
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cache.Prefix()),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "login.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(LocaleMiddleware(cfg.Session.MaxAgeSeconds))

	r.StaticFS("/static", render.Static())

	pages := r.Group("/")
	pages.Use(SessionMiddleware(c.Sessions))
	{
		pages.GET("/", webHandler.ListPosts)
		pages.GET("/posts/create", webHandler.NewPost)
		pages.POST("/posts/create", webHandler.CreatePost)
		pages.GET("/posts/:id", webHandler.ShowPost)
		pages.GET("/posts/:id/edit", webHandler.EditPost)
		pages.POST("/posts/:id/edit", webHandler.UpdatePost)
		pages.GET("/posts/:id/delete", webHandler.ConfirmDelete)
		pages.POST("/posts/:id/delete", webHandler.DeletePost)

		pages.GET("/login", webHandler.LoginPage)
		pages.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndFormField("username")), webHandler.Login)
		pages.POST("/logout", webHandler.Logout)

		pages.GET("/session/state", webHandler.SessionState)
		pages.GET("/session/events", webHandler.SessionEvents)
	}

	r.NoRoute(func(ctx *gin.Context) {
		shared.RespondError(ctx, response.CodeNotFound, "error.page_not_found", nil)
	})

	return r
}
