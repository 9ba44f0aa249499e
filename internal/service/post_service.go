package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mission-tool/blog-web/internal/logger"
	"github.com/mission-tool/blog-web/internal/models"
)

// PostAPI 远端文章接口
type PostAPI interface {
	ListPosts(ctx context.Context) (*models.PostList, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	CreatePost(ctx context.Context, token string, draft models.PostDraft) (*models.Post, error)
	UpdatePost(ctx context.Context, token string, id uint, draft models.PostDraft) (*models.Post, error)
	DeletePost(ctx context.Context, token string, id uint) error
}

// PostService 文章业务服务
// 每次调用都直接访问远端，不做缓存或重试
type PostService struct {
	api PostAPI
}

// NewPostService 创建文章服务
func NewPostService(api PostAPI) *PostService {
	return &PostService{api: api}
}

// ParsePostID 解析路径中的文章 ID
func ParsePostID(raw string) (uint, error) {
	value := strings.TrimSpace(raw)
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPostID, raw)
	}
	return uint(id), nil
}

// List 获取全部文章
func (s *PostService) List(ctx context.Context) (*models.PostList, error) {
	list, err := s.api.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Get 获取单篇文章
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, ErrInvalidPostID
	}
	return s.api.GetPost(ctx, id)
}

// Load 为编辑表单载入现有文章
func (s *PostService) Load(ctx context.Context, form *PostForm) error {
	if form.State != FormLoadingExisting {
		return fmt.Errorf("%w: load from %s", ErrFormTransition, form.State)
	}
	post, err := s.Get(ctx, form.PostID)
	if err != nil {
		form.LoadFailed()
		return err
	}
	return form.Loaded(*post)
}

// Submit 提交表单草稿
// 草稿不完整时不发出任何请求，表单保持可编辑
func (s *PostService) Submit(ctx context.Context, token string, form *PostForm) (*models.Post, error) {
	if err := form.Submit(); err != nil {
		return nil, err
	}

	var (
		post *models.Post
		err  error
	)
	switch form.Mode {
	case FormModeEdit:
		post, err = s.api.UpdatePost(ctx, token, form.PostID, form.Draft)
	default:
		post, err = s.api.CreatePost(ctx, token, form.Draft)
	}
	if err != nil {
		logger.Warnw("post_form_submit_failed", "mode", form.Mode, "post_id", form.PostID, "error", err)
		if failErr := form.Fail(""); failErr != nil {
			return nil, failErr
		}
		return nil, err
	}
	if err := form.Succeed(); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章，必须先确认
func (s *PostService) Delete(ctx context.Context, token string, id uint, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	if id == 0 {
		return ErrInvalidPostID
	}
	if err := s.api.DeletePost(ctx, token, id); err != nil {
		logger.Warnw("post_delete_failed", "post_id", id, "error", err)
		return err
	}
	return nil
}
