package web

import (
	"io"
	"time"

	"github.com/mission-tool/blog-web/internal/http/handlers/shared"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionHeartbeat = 25 * time.Second

// SessionState 当前浏览器的登录状态与界面可见性，以会话中心的最新快照为准
func (h *Handler) SessionState(c *gin.Context) {
	state := shared.SessionState(c)
	snapshot, ok := h.SessionHub.Snapshot(state.BrowserID)
	if !ok {
		snapshot = session.Snapshot{LoggedIn: state.LoggedIn, Version: state.Version}
	}
	response.Success(c, gin.H{
		"logged_in":  snapshot.LoggedIn,
		"version":    snapshot.Version,
		"visibility": session.VisibilityFor(snapshot.LoggedIn),
	})
}

// SessionEvents 以 SSE 推送登录状态变化，页面据此刷新受控入口
func (h *Handler) SessionEvents(c *gin.Context) {
	state := shared.SessionState(c)
	ctx := c.Request.Context()
	updates := h.SessionHub.Subscribe(ctx, state.BrowserID)

	heartbeat := time.NewTicker(sessionHeartbeat)
	defer heartbeat.Stop()

	response.NoStore(c)
	c.Header("X-Accel-Buffering", "no")
	shared.RequestLog(c).Debugw("session_events_open", "browser_id", state.BrowserID)
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("session", snapshot)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-ctx.Done():
			return false
		}
	})
	shared.RequestLog(c).Debugw("session_events_closed", "browser_id", state.BrowserID)
}
