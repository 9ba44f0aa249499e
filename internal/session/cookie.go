package session

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mission-tool/blog-web/internal/config"
	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const defaultSessionName = "blog_session"

// CookieJar 浏览器端持久化存储（签名 cookie）
// 保存浏览器 ID、token（cookie 驱动时）与一次性提示消息
type CookieJar struct {
	store *sessions.CookieStore
	name  string
}

// NewCookieJar 按会话配置创建 cookie 存储
func NewCookieJar(cfg config.SessionConfig) *CookieJar {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultSessionName
	}
	return &CookieJar{store: store, name: name}
}

// Name cookie 名称
func (j *CookieJar) Name() string {
	return j.name
}

func (j *CookieJar) get(r *http.Request) *sessions.Session {
	sess, err := j.store.Get(r, j.name)
	if err != nil {
		// 签名不符或格式损坏时 gorilla 仍返回新会话，视为未设置
		logger.Debugw("session_cookie_decode_failed", "error", err)
	}
	return sess
}

func (j *CookieJar) save(w http.ResponseWriter, r *http.Request, sess *sessions.Session) error {
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// BrowserID 读取浏览器 ID，不存在时生成并写回 cookie
func (j *CookieJar) BrowserID(w http.ResponseWriter, r *http.Request) (string, error) {
	sess := j.get(r)
	if id, ok := sess.Values[constants.SessionBrowserKey].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	sess.Values[constants.SessionBrowserKey] = id
	if err := j.save(w, r, sess); err != nil {
		return "", err
	}
	return id, nil
}

// PeekBrowserID 只读浏览器 ID
func (j *CookieJar) PeekBrowserID(r *http.Request) (string, bool) {
	id, ok := j.get(r).Values[constants.SessionBrowserKey].(string)
	return id, ok && id != ""
}

// AddFlash 写入一次性提示消息
func (j *CookieJar) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	sess := j.get(r)
	sess.AddFlash(message)
	return j.save(w, r, sess)
}

// PopFlashes 读取并清空提示消息
func (j *CookieJar) PopFlashes(w http.ResponseWriter, r *http.Request) ([]string, error) {
	sess := j.get(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	messages := make([]string, 0, len(raw))
	for _, item := range raw {
		if text, ok := item.(string); ok && text != "" {
			messages = append(messages, text)
		}
	}
	return messages, j.save(w, r, sess)
}
