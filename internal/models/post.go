package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mission-tool/blog-web/internal/constants"
)

// Post 远端 API 返回的文章
type Post struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"` // draft / published
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostList GET /posts 的响应包
type PostList struct {
	Data  []Post `json:"data"`
	Count int64  `json:"count"`
}

// PostEnvelope GET /posts/{id} 的响应包
type PostEnvelope struct {
	Data Post `json:"data"`
}

// IsPublished 是否为发布状态
func (p Post) IsPublished() bool {
	return p.Status == constants.PostStatusPublished
}

// HasCategory 是否设置了分类
func (p Post) HasCategory() bool {
	return strings.TrimSpace(p.Category) != ""
}

// Preview 截断后的内容预览
func (p Post) Preview() string {
	return Truncate(p.Content, constants.PreviewRuneLimit)
}

// Truncate 按 rune 截断文本，超出时追加省略号
func Truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// IsKnownStatus 判断状态是否为界面支持的取值
func IsKnownStatus(status string) bool {
	return status == constants.PostStatusDraft || status == constants.PostStatusPublished
}

// IsKnownCategory 判断分类是否为界面可选值
func IsKnownCategory(category string) bool {
	for _, c := range constants.PostCategories {
		if c == category {
			return true
		}
	}
	return false
}
