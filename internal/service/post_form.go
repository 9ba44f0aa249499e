package service

import (
	"fmt"

	"github.com/mission-tool/blog-web/internal/models"
)

// FormState 文章表单状态
type FormState string

const (
	FormLoadingExisting FormState = "loading-existing"
	FormEditable        FormState = "editable"
	FormSubmitting      FormState = "submitting"
	FormSucceeded       FormState = "succeeded"
)

// FormMode 新建或编辑
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// PostForm 单次表单渲染持有的草稿与状态
type PostForm struct {
	Mode    FormMode
	PostID  uint
	State   FormState
	Draft   models.PostDraft
	Alert   string
	Missing []string
}

// NewCreateForm 新建表单，直接可编辑
func NewCreateForm() *PostForm {
	return &PostForm{
		Mode:  FormModeCreate,
		State: FormEditable,
		Draft: models.NewPostDraft(),
	}
}

// NewEditForm 编辑表单，先载入现有文章
func NewEditForm(id uint) *PostForm {
	return &PostForm{
		Mode:   FormModeEdit,
		PostID: id,
		State:  FormLoadingExisting,
	}
}

func (f *PostForm) transition(from, to FormState) error {
	if f.State != from {
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrFormTransition, from, to, f.State)
	}
	f.State = to
	return nil
}

// Loaded 现有文章载入完成
func (f *PostForm) Loaded(post models.Post) error {
	if err := f.transition(FormLoadingExisting, FormEditable); err != nil {
		return err
	}
	f.Draft = models.DraftFromPost(post)
	return nil
}

// LoadFailed 载入失败，表单不会变为可编辑
func (f *PostForm) LoadFailed() {
	f.Draft = models.PostDraft{}
}

// Edit 用户修改草稿
func (f *PostForm) Edit(draft models.PostDraft) error {
	if f.State != FormEditable {
		return fmt.Errorf("%w: edit while %s", ErrFormTransition, f.State)
	}
	f.Draft = draft
	return nil
}

// Submit 进入提交中；草稿不完整时记录缺失字段并保持可编辑
func (f *PostForm) Submit() error {
	if f.State != FormEditable {
		return fmt.Errorf("%w: submit while %s", ErrFormTransition, f.State)
	}
	f.Missing = f.Draft.MissingFields()
	if len(f.Missing) > 0 {
		return fmt.Errorf("%w: %v", ErrDraftIncomplete, f.Missing)
	}
	f.Alert = ""
	return f.transition(FormEditable, FormSubmitting)
}

// Succeed 提交成功
func (f *PostForm) Succeed() error {
	return f.transition(FormSubmitting, FormSucceeded)
}

// Fail 提交失败，回到可编辑并保留草稿
func (f *PostForm) Fail(alert string) error {
	if err := f.transition(FormSubmitting, FormEditable); err != nil {
		return err
	}
	f.Alert = alert
	return nil
}

// Busy 提交中，按钮应禁用
func (f *PostForm) Busy() bool {
	return f.State == FormSubmitting
}

// Editable 是否可编辑
func (f *PostForm) Editable() bool {
	return f.State == FormEditable
}

// ResumeEditForm 浏览器中已载入并修改过的编辑表单
func ResumeEditForm(id uint, draft models.PostDraft) *PostForm {
	return &PostForm{
		Mode:   FormModeEdit,
		PostID: id,
		State:  FormEditable,
		Draft:  draft,
	}
}
