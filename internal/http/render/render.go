package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/i18n"
	"github.com/mission-tool/blog-web/internal/models"

	ginrender "github.com/gin-gonic/gin/render"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// 页面模板名
const (
	PageList   = "list"
	PagePost   = "post"
	PageForm   = "form"
	PageDelete = "delete"
	PageLogin  = "login"
	PageError  = "error"
)

var pages = []string{PageList, PagePost, PageForm, PageDelete, PageLogin, PageError}

const layoutName = "layout"

// Templates 每个页面与公共布局组合后的模板集合
type Templates struct {
	set map[string]*template.Template
}

var _ ginrender.HTMLRender = (*Templates)(nil)

// New 解析内嵌模板
func New() (*Templates, error) {
	base, err := template.New(layoutName).Funcs(Funcs()).ParseFS(templateFS, "templates/layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	set := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		tmpl, err := clone.ParseFS(templateFS, "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		set[name] = tmpl
	}
	return &Templates{set: set}, nil
}

// Instance 实现 gin HTMLRender，未知页面退回错误页
func (t *Templates) Instance(name string, data interface{}) ginrender.Render {
	tmpl, ok := t.set[name]
	if !ok {
		tmpl = t.set[PageError]
	}
	return ginrender.HTML{Template: tmpl, Name: layoutName, Data: data}
}

// Has 是否存在页面模板
func (t *Templates) Has(name string) bool {
	_, ok := t.set[name]
	return ok
}

// Static 内嵌静态资源
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Funcs 模板函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"t":             i18n.T,
		"tf":            i18n.Sprintf,
		"date":          i18n.FormatDate,
		"isoDate":       isoDate,
		"statusClass":   StatusClass,
		"statusLabel":   StatusLabel,
		"categoryLabel": CategoryLabel,
		"postURL":       PostURL,
		"confirmField":  func() string { return constants.DeleteConfirmField },
		"confirmValue":  func() string { return constants.DeleteConfirmValue },
	}
}

// StatusClass 发布状态为肯定样式，其余一律中性
func StatusClass(status string) string {
	if status == constants.PostStatusPublished {
		return "badge badge-published"
	}
	return "badge badge-neutral"
}

// StatusLabel 已知状态翻译，未知状态原样显示
func StatusLabel(locale, status string) string {
	if models.IsKnownStatus(status) {
		return i18n.T(locale, "post.status."+status)
	}
	return status
}

// CategoryLabel 分类显示名，缺失时显示未分类
func CategoryLabel(locale, category string) string {
	switch {
	case strings.TrimSpace(category) == "":
		return i18n.T(locale, "post.category.none")
	case models.IsKnownCategory(category):
		return i18n.T(locale, "post.category."+category)
	default:
		return category
	}
}

// PostURL 文章详情路径
func PostURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10)
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
