package constants

// 文章状态常量
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// 文章分类常量
const (
	PostCategoryDev   = "Dev"
	PostCategoryTools = "Tools"
	PostCategoryLife  = "Life"
	PostCategoryNote  = "Note"
)

// PostCategories 表单可选分类（按显示顺序）
var PostCategories = []string{
	PostCategoryDev,
	PostCategoryTools,
	PostCategoryLife,
	PostCategoryNote,
}

// 会话相关常量
const (
	SessionTokenKey   = "token"
	SessionBrowserKey = "bid"
	LocaleCookieName  = "locale"
)

// gin 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeySession   = "session_state"
	ContextKeyLocale    = "locale"
	ContextKeyPage      = "page_base"
)

// 删除确认表单取值
const (
	DeleteConfirmField = "confirm"
	DeleteConfirmValue = "yes"
)

// PreviewRuneLimit 列表页内容预览长度
const PreviewRuneLimit = 120
