package response

import (
	"github.com/mission-tool/blog-web/internal/constants"

	"github.com/gin-gonic/gin"
)

// Page 页面模板数据
type Page struct {
	Title         string // i18n key
	Locale        string
	RequestID     string
	LoggedIn      bool
	ShowMutations bool
	Version       uint64
	Flashes       []string
	Alert         string
	Body          interface{}
}

// SetBasePage 会话中间件写入当前请求的页面公共数据
func SetBasePage(c *gin.Context, base Page) {
	c.Set(constants.ContextKeyPage, base)
}

// NewPage 以请求的公共数据为底构造页面
func NewPage(c *gin.Context, title string, body interface{}) Page {
	var page Page
	if c != nil {
		if value, ok := c.Get(constants.ContextKeyPage); ok {
			if base, ok := value.(Page); ok {
				page = base
			}
		}
		if page.Locale == "" {
			if value, ok := c.Get(constants.ContextKeyLocale); ok {
				page.Locale, _ = value.(string)
			}
		}
	}
	page.Title = title
	page.Body = body
	page.RequestID = RequestID(c)
	return page
}
