package models

import (
	"strings"

	"github.com/mission-tool/blog-web/internal/constants"
)

// PostDraft 表单中尚未保存的文章可编辑字段
// 字段标签同时用于表单绑定（form）与提交给远端 API 的 JSON 序列化
type PostDraft struct {
	Title    string `form:"title" json:"title" binding:"required"`
	Content  string `form:"content" json:"content" binding:"required"`
	Status   string `form:"status" json:"status" binding:"required,oneof=draft published"`
	Category string `form:"category" json:"category" binding:"required"`
}

// NewPostDraft 新建表单的初始草稿：状态默认发布，分类留空强制选择
func NewPostDraft() PostDraft {
	return PostDraft{Status: constants.PostStatusPublished}
}

// DraftFromPost 编辑表单的初始草稿，旧文章无分类时给空字串
func DraftFromPost(p Post) PostDraft {
	category := p.Category
	if !p.HasCategory() {
		category = ""
	}
	return PostDraft{
		Title:    p.Title,
		Content:  p.Content,
		Status:   p.Status,
		Category: category,
	}
}

// MissingFields 返回为空的必填字段名，只含空白也算空
func (d PostDraft) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(d.Status) == "" {
		missing = append(missing, "status")
	}
	if strings.TrimSpace(d.Category) == "" {
		missing = append(missing, "category")
	}
	return missing
}

// Complete 四个字段是否都已填写
func (d PostDraft) Complete() bool {
	return len(d.MissingFields()) == 0
}

// LoginCredentials 登录表单
type LoginCredentials struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}
