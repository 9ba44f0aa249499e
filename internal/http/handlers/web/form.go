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

type formBody struct {
	Form       *service.PostForm
	Action     string
	Categories []string
}

func formAction(form *service.PostForm) string {
	if form.Mode == service.FormModeEdit {
		return render.PostURL(form.PostID) + "/edit"
	}
	return "/posts/create"
}

func formTitle(form *service.PostForm) string {
	if form.Mode == service.FormModeEdit {
		return "form.edit.title"
	}
	return "form.create.title"
}

func (h *Handler) renderForm(c *gin.Context, status int, form *service.PostForm) {
	h.renderPage(c, status, render.PageForm, formTitle(form), formBody{
		Form:       form,
		Action:     formAction(form),
		Categories: constants.PostCategories,
	}, form.Alert)
}

// NewPost 新建表单
func (h *Handler) NewPost(c *gin.Context) {
	h.renderForm(c, http.StatusOK, service.NewCreateForm())
}

// CreatePost 提交新建表单
func (h *Handler) CreatePost(c *gin.Context) {
	h.submitForm(c, service.NewCreateForm())
}

// EditPost 编辑表单，先载入现有文章；失败时回到列表
func (h *Handler) EditPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	form := service.NewEditForm(id)
	if err := h.PostService.Load(c.Request.Context(), form); err != nil {
		shared.RequestLog(c).Warnw("post_edit_load_failed", "post_id", id, "error", err)
		h.redirectWithFlash(c, "/", shared.T(c, "error.load_failed"))
		return
	}
	h.renderForm(c, http.StatusOK, form)
}

// UpdatePost 提交编辑表单
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	h.submitForm(c, service.ResumeEditForm(id, models.PostDraft{}))
}

func (h *Handler) submitForm(c *gin.Context, form *service.PostForm) {
	var draft models.PostDraft
	bindErr := c.ShouldBind(&draft)
	if err := form.Edit(draft); err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if bindErr != nil {
		form.Missing = draft.MissingFields()
		if len(form.Missing) == 0 {
			form.Missing = []string{"status"}
		}
		form.Alert = shared.T(c, "form.required")
		h.renderForm(c, http.StatusUnprocessableEntity, form)
		return
	}

	state := shared.SessionState(c)
	if _, err := h.PostService.Submit(c.Request.Context(), state.Token, form); err != nil {
		if errors.Is(err, service.ErrDraftIncomplete) {
			form.Alert = shared.T(c, "form.required")
			h.renderForm(c, http.StatusUnprocessableEntity, form)
			return
		}
		if errors.Is(err, service.ErrFormTransition) {
			shared.RespondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		form.Alert = shared.T(c, failedKey(form))
		if h.endSessionIfRejected(c, err) {
			form.Alert = shared.T(c, "session.ended")
		}
		h.renderForm(c, backendStatus(err), form)
		return
	}

	shared.RequestLog(c).Infow("post_form_succeeded", "mode", form.Mode, "post_id", form.PostID)
	if form.Mode == service.FormModeEdit {
		h.redirectWithFlash(c, render.PostURL(form.PostID), shared.T(c, "form.update.succeeded"))
		return
	}
	h.redirectWithFlash(c, "/", shared.T(c, "form.create.succeeded"))
}

func failedKey(form *service.PostForm) string {
	if form.Mode == service.FormModeEdit {
		return "form.update.failed"
	}
	return "form.create.failed"
}
