package web

import (
	"errors"
	"net/http"

	"github.com/mission-tool/blog-web/internal/blogapi"
	"github.com/mission-tool/blog-web/internal/http/handlers/shared"
	"github.com/mission-tool/blog-web/internal/http/render"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/models"
	"github.com/mission-tool/blog-web/internal/service"

	"github.com/gin-gonic/gin"
)

type loginBody struct {
	Username string
}

// LoginPage 登录表单
func (h *Handler) LoginPage(c *gin.Context) {
	h.renderPage(c, http.StatusOK, render.PageLogin, "login.title", loginBody{}, "")
}

// Login 提交登录，成功后保存 token 并广播
func (h *Handler) Login(c *gin.Context) {
	var credentials models.LoginCredentials
	if err := c.ShouldBind(&credentials); err != nil {
		h.renderPage(c, http.StatusBadRequest, render.PageLogin, "login.title",
			loginBody{Username: credentials.Username}, shared.T(c, "login.required"))
		return
	}

	token, err := h.AuthService.Login(c.Request.Context(), credentials)
	if err != nil {
		status := backendStatus(err)
		alert := blogapi.ServerMessage(err)
		switch {
		case errors.Is(err, service.ErrCredentialsMissing):
			status = http.StatusBadRequest
			alert = shared.T(c, "login.required")
		case alert == "":
			alert = shared.T(c, "login.failed")
		}
		shared.RequestLog(c).Infow("login_failed", "username", credentials.Username, "error", err)
		h.renderPage(c, status, render.PageLogin, "login.title", loginBody{Username: credentials.Username}, alert)
		return
	}

	state, err := h.Sessions.Login(c.Writer, c.Request, token)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.session_unavailable", err)
		return
	}
	shared.RequestLog(c).Infow("login_succeeded", "username", credentials.Username, "browser_id", state.BrowserID)
	h.redirectWithFlash(c, "/", shared.T(c, "login.succeeded"))
}

// Logout 清除 token 并广播
func (h *Handler) Logout(c *gin.Context) {
	state, err := h.Sessions.Logout(c.Writer, c.Request)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.session_unavailable", err)
		return
	}
	shared.RequestLog(c).Infow("logout_succeeded", "browser_id", state.BrowserID)
	h.redirectWithFlash(c, "/", shared.T(c, "logout.succeeded"))
}
