package shared

import (
	"errors"

	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/i18n"
	"github.com/mission-tool/blog-web/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := response.RequestID(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 渲染国际化错误页，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 渲染自定义消息错误页，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// MappedError 业务错误到错误页的映射关系。
type MappedError struct {
	Target error
	Match  func(error) bool
	Code   int
	Key    string
}

func (m MappedError) matches(err error) bool {
	if m.Match != nil {
		return m.Match(err)
	}
	return m.Target != nil && errors.Is(err, m.Target)
}

// RespondWithMappedError 按规则渲染错误页，均不匹配时使用兜底并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if rule.matches(err) {
			RequestLog(c).Infow("handler_error_mapped", "code", rule.Code, "error", err)
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}
