package i18n

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mission-tool/blog-web/internal/constants"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleZhTW = "zh-TW"
	LocaleEnUS = "en-US"
)

var (
	defaultMu     sync.RWMutex
	defaultLocale = LocaleZhTW
)

// SetDefaultLocale 设置默认语言，不支持的值被忽略
func SetDefaultLocale(locale string) {
	normalized, ok := normalize(locale)
	if !ok {
		return
	}
	defaultMu.Lock()
	defaultLocale = normalized
	defaultMu.Unlock()
}

// DefaultLocale 当前默认语言
func DefaultLocale() string {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLocale
}

// Supported 支持的语言列表
func Supported() []string {
	return []string{LocaleZhTW, LocaleEnUS}
}

func normalize(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	value = strings.ReplaceAll(value, "_", "-")
	switch {
	case value == "":
		return "", false
	case value == "zh-tw" || value == "zh-hant" || strings.HasPrefix(value, "zh-hant-") || value == "zh-hk" || value == "zh":
		return LocaleZhTW, true
	case value == "en" || strings.HasPrefix(value, "en-"):
		return LocaleEnUS, true
	}
	return "", false
}

// Normalize 规范化语言标识，不支持时回落到默认语言
func Normalize(raw string) string {
	if locale, ok := normalize(raw); ok {
		return locale
	}
	return DefaultLocale()
}

// ResolveLocale 解析请求语言：上下文 > cookie > Accept-Language > 默认
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale()
	}
	if value, ok := c.Get(constants.ContextKeyLocale); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	if cookie, err := c.Cookie(constants.LocaleCookieName); err == nil {
		if locale, ok := normalize(cookie); ok {
			return locale
		}
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		if locale, ok := normalize(part); ok {
			return locale
		}
	}
	return DefaultLocale()
}

// T 翻译 key，缺失时依次回落到默认语言与 key 本身
func T(locale, key string) string {
	if table, ok := messages[Normalize(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale()][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// FormatDate 按语言格式化日期
func FormatDate(locale string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if Normalize(locale) == LocaleEnUS {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("2006/1/2")
}
