package shared

import (
	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/i18n"
	"github.com/mission-tool/blog-web/internal/session"

	"github.com/gin-gonic/gin"
)

// SetSessionState 会话中间件写入本次请求的会话状态
func SetSessionState(c *gin.Context, state session.State) {
	c.Set(constants.ContextKeySession, state)
}

// SessionState 读取会话中间件载入的会话状态，缺失时按未登录处理
func SessionState(c *gin.Context) session.State {
	if value, ok := c.Get(constants.ContextKeySession); ok {
		if state, ok := value.(session.State); ok {
			return state
		}
	}
	return session.State{}
}

// Locale 当前请求语言
func Locale(c *gin.Context) string {
	return i18n.ResolveLocale(c)
}

// T 按当前请求语言翻译
func T(c *gin.Context, key string) string {
	return i18n.T(Locale(c), key)
}

// BasePage 由会话状态构造页面公共数据
func BasePage(c *gin.Context, state session.State) response.Page {
	visibility := state.Visibility()
	return response.Page{
		Locale:        Locale(c),
		LoggedIn:      state.LoggedIn,
		ShowMutations: visibility.ShowMutations,
		Version:       state.Version,
	}
}
