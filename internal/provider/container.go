package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mission-tool/blog-web/internal/blogapi"
	"github.com/mission-tool/blog-web/internal/cache"
	"github.com/mission-tool/blog-web/internal/config"
	"github.com/mission-tool/blog-web/internal/http/render"
	"github.com/mission-tool/blog-web/internal/logger"
	"github.com/mission-tool/blog-web/internal/markdown"
	"github.com/mission-tool/blog-web/internal/service"
	"github.com/mission-tool/blog-web/internal/session"
)

const redisPingTimeout = 3 * time.Second

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Remote
	BlogAPI *blogapi.Client

	// Session
	Cookies    *session.CookieJar
	TokenStore session.TokenStore
	SessionHub *session.Hub
	Sessions   *session.Manager

	// Services
	PostService *service.PostService
	AuthService *service.AuthService

	// Views
	Templates *render.Templates
	Markdown  *markdown.Renderer
}

// Option 容器可选参数，测试中用于替换远端客户端
type Option func(*Container)

// WithBlogAPI 使用指定的远端客户端
func WithBlogAPI(client *blogapi.Client) Option {
	return func(c *Container) {
		if client != nil {
			c.BlogAPI = client
		}
	}
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	if cache.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		err := cache.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warnw("provider_redis_ping_failed", "error", err)
		}
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.BlogAPI == nil {
		c.BlogAPI = blogapi.NewClient(cfg.API.BaseURL,
			blogapi.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
		)
	}

	templates, err := render.New()
	if err != nil {
		return nil, err
	}
	c.Templates = templates
	c.Markdown = markdown.New()

	c.Cookies = session.NewCookieJar(cfg.Session)
	c.TokenStore = newTokenStore(cfg, c.Cookies)
	c.SessionHub = session.NewHub(
		time.Duration(cfg.Session.IdleTTLSeconds)*time.Second,
		time.Duration(cfg.Session.PruneIntervalMS)*time.Millisecond,
	)
	c.Sessions = session.NewManager(c.Cookies, c.TokenStore, c.SessionHub)

	c.PostService = service.NewPostService(c.BlogAPI)
	c.AuthService = service.NewAuthService(c.BlogAPI)

	logger.Infow("provider_ready",
		"api_base_url", c.BlogAPI.BaseURL(),
		"session_driver", strings.ToLower(cfg.Session.Driver),
	)
	return c, nil
}

func newTokenStore(cfg *config.Config, jar *session.CookieJar) session.TokenStore {
	driver := strings.ToLower(strings.TrimSpace(cfg.Session.Driver))
	if driver == config.SessionDriverRedis {
		if cache.Enabled() {
			return session.NewRedisTokenStore(jar, time.Duration(cfg.Session.MaxAgeSeconds)*time.Second)
		}
		logger.Warnw("provider_session_redis_unavailable", "fallback", config.SessionDriverCookie)
	}
	return session.NewCookieTokenStore(jar)
}
