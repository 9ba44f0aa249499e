package web

import (
	"net/http"

	"github.com/mission-tool/blog-web/internal/blogapi"
	"github.com/mission-tool/blog-web/internal/http/handlers/shared"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/provider"
	"github.com/mission-tool/blog-web/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 页面处理器入口
type Handler struct {
	*provider.Container
}

// New 创建页面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// renderPage 渲染页面，并取出待显示的一次性提示
func (h *Handler) renderPage(c *gin.Context, status int, name, title string, body interface{}, alert string) {
	page := response.NewPage(c, title, body)
	page.Alert = alert
	page.Flashes = h.Sessions.Flashes(c.Writer, c.Request)
	response.HTML(c, status, name, page)
}

// redirectWithFlash 写入提示后以 303 跳转
func (h *Handler) redirectWithFlash(c *gin.Context, location, message string) {
	if message != "" {
		h.Sessions.AddFlash(c.Writer, c.Request, message)
	}
	response.SeeOther(c, location)
}

// endSessionIfRejected 远端拒绝 token 时清除会话并广播未登录
func (h *Handler) endSessionIfRejected(c *gin.Context, err error) bool {
	if !blogapi.IsUnauthorized(err) {
		return false
	}
	state, logoutErr := h.Sessions.Logout(c.Writer, c.Request)
	if logoutErr != nil {
		shared.RequestLog(c).Warnw("session_end_failed", "error", logoutErr)
		return true
	}
	shared.RequestLog(c).Infow("session_ended_by_backend", "browser_id", state.BrowserID)
	shared.SetSessionState(c, state)
	response.SetBasePage(c, shared.BasePage(c, state))
	return true
}

// backendStatus 表单重新渲染时使用的状态码
func backendStatus(err error) int {
	switch {
	case blogapi.IsUnauthorized(err):
		return http.StatusUnauthorized
	case blogapi.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// parsePostID 解析路径 ID，非法时渲染 404
func parsePostID(c *gin.Context) (uint, bool) {
	id, err := service.ParsePostID(c.Param("id"))
	if err != nil {
		shared.RespondError(c, response.CodeNotFound, "error.not_found", nil)
		return 0, false
	}
	return id, true
}

var postFetchErrorRules = []shared.MappedError{
	{Match: blogapi.IsNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrInvalidPostID, Code: response.CodeNotFound, Key: "error.not_found"},
}
