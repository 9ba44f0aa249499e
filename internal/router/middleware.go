package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/http/handlers/shared"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/i18n"
	"github.com/mission-tool/blog-web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

const localeQueryParam = "lang"

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", response.RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			log.Debugw("request")
			return
		}
		log.Infow("request")
	}
}

// LocaleMiddleware 解析语言；带 ?lang= 时写入 cookie 记住选择
func LocaleMiddleware(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := strings.TrimSpace(c.Query(localeQueryParam)); raw != "" {
			locale := i18n.Normalize(raw)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(constants.LocaleCookieName, locale, maxAgeSeconds, "/", "", false, false)
			c.Set(constants.ContextKeyLocale, locale)
		} else {
			c.Set(constants.ContextKeyLocale, i18n.ResolveLocale(c))
		}
		c.Next()
	}
}

// SessionMiddleware 每个请求读取一次会话状态，并准备页面公共数据
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := manager.Load(c.Writer, c.Request)
		if err != nil {
			shared.RespondError(c, response.CodeInternal, "error.session_unavailable", err)
			return
		}
		shared.SetSessionState(c, state)
		response.SetBasePage(c, shared.BasePage(c, state))
		c.Next()
	}
}
