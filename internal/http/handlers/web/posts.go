package web

import (
	"errors"
	"net/http"

	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/http/handlers/shared"
	"github.com/mission-tool/blog-web/internal/http/render"
	"github.com/mission-tool/blog-web/internal/http/response"
	"github.com/mission-tool/blog-web/internal/models"
	"github.com/mission-tool/blog-web/internal/service"

	"github.com/gin-gonic/gin"
)

type listBody struct {
	Posts []models.Post
	Count int64
}

type postBody struct {
	Post models.Post
	HTML interface{}
}

type deleteBody struct {
	Post models.Post
}

// ListPosts 文章列表，每次渲染都重新拉取
func (h *Handler) ListPosts(c *gin.Context) {
	list, err := h.PostService.List(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeBadGateway, "error.list_failed", err)
		return
	}
	h.renderPage(c, http.StatusOK, render.PageList, "post.list.title", listBody{
		Posts: list.Data,
		Count: list.Count,
	}, "")
}

// ShowPost 文章详情
func (h *Handler) ShowPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	h.showPost(c, id, http.StatusOK, "")
}

func (h *Handler) showPost(c *gin.Context, id uint, status int, alert string) {
	post, err := h.PostService.Get(c.Request.Context(), id)
	if err != nil {
		shared.RespondWithMappedError(c, err, postFetchErrorRules, response.CodeBadGateway, "error.post_failed")
		return
	}
	h.renderPage(c, status, render.PagePost, "post.title", postBody{
		Post: *post,
		HTML: h.Markdown.MustRender(post.Content),
	}, alert)
}

// ConfirmDelete 删除确认页
func (h *Handler) ConfirmDelete(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	post, err := h.PostService.Get(c.Request.Context(), id)
	if err != nil {
		shared.RespondWithMappedError(c, err, postFetchErrorRules, response.CodeBadGateway, "error.post_failed")
		return
	}
	h.renderPage(c, http.StatusOK, render.PageDelete, "delete.confirm.title", deleteBody{Post: *post}, "")
}

// DeletePost 确认后删除文章
// 未确认时重新显示确认页，不发出任何请求
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	confirmed := c.PostForm(constants.DeleteConfirmField) == constants.DeleteConfirmValue

	state := shared.SessionState(c)
	if err := h.PostService.Delete(c.Request.Context(), state.Token, id, confirmed); err != nil {
		if errors.Is(err, service.ErrDeleteNotConfirmed) {
			h.renderPage(c, http.StatusOK, render.PageDelete, "delete.confirm.title",
				deleteBody{Post: models.Post{ID: id}}, shared.T(c, "delete.confirm.required"))
			return
		}
		alert := shared.T(c, "delete.failed")
		if h.endSessionIfRejected(c, err) {
			alert = shared.T(c, "session.ended")
		}
		shared.RequestLog(c).Warnw("post_delete_rejected", "post_id", id, "error", err)
		h.showPost(c, id, backendStatus(err), alert)
		return
	}
	shared.RequestLog(c).Infow("post_deleted", "post_id", id)
	h.redirectWithFlash(c, "/", shared.T(c, "delete.succeeded"))
}
