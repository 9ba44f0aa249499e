package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/mission-tool/blog-web/internal/cache"
	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/logger"
)

// TokenStore 单个 token 的读写访问器，写入即覆盖
// 不校验 token 的格式或签名
type TokenStore interface {
	ReadToken(r *http.Request) (string, bool)
	WriteToken(w http.ResponseWriter, r *http.Request, token string) error
	ClearToken(w http.ResponseWriter, r *http.Request) error
}

// CookieTokenStore token 直接存于签名 cookie 的固定键下
type CookieTokenStore struct {
	jar *CookieJar
}

// NewCookieTokenStore 创建 cookie token 存储
func NewCookieTokenStore(jar *CookieJar) *CookieTokenStore {
	return &CookieTokenStore{jar: jar}
}

// ReadToken 读取 token，从未写入时返回 false
func (s *CookieTokenStore) ReadToken(r *http.Request) (string, bool) {
	token, ok := s.jar.get(r).Values[constants.SessionTokenKey].(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// WriteToken 写入 token
func (s *CookieTokenStore) WriteToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess := s.jar.get(r)
	sess.Values[constants.SessionTokenKey] = token
	return s.jar.save(w, r, sess)
}

// ClearToken 删除 token
func (s *CookieTokenStore) ClearToken(w http.ResponseWriter, r *http.Request) error {
	sess := s.jar.get(r)
	if _, ok := sess.Values[constants.SessionTokenKey]; !ok {
		return nil
	}
	delete(sess.Values, constants.SessionTokenKey)
	return s.jar.save(w, r, sess)
}

// RedisTokenStore token 存于 Redis，以浏览器 ID 为键
type RedisTokenStore struct {
	jar    *CookieJar
	maxAge time.Duration
}

// NewRedisTokenStore 创建 Redis token 存储
func NewRedisTokenStore(jar *CookieJar, maxAge time.Duration) *RedisTokenStore {
	return &RedisTokenStore{jar: jar, maxAge: maxAge}
}

// ReadToken 读取 token；Redis 出错时按未登录处理
func (s *RedisTokenStore) ReadToken(r *http.Request) (string, bool) {
	browserID, ok := s.jar.PeekBrowserID(r)
	if !ok {
		return "", false
	}
	record, hit, err := cache.GetSessionToken(r.Context(), browserID)
	if err != nil {
		logger.Warnw("session_token_read_failed", "browser_id", browserID, "error", err)
		return "", false
	}
	if !hit || record == nil || record.Token == "" {
		return "", false
	}
	return record.Token, true
}

// WriteToken 写入 token，TTL 取会话时长与 token exp 的较小值
func (s *RedisTokenStore) WriteToken(w http.ResponseWriter, r *http.Request, token string) error {
	browserID, err := s.jar.BrowserID(w, r)
	if err != nil {
		return err
	}
	return cache.SetSessionToken(r.Context(), browserID, token, tokenTTL(token, s.maxAge, time.Now()))
}

// ClearToken 删除 token
func (s *RedisTokenStore) ClearToken(w http.ResponseWriter, r *http.Request) error {
	browserID, ok := s.jar.PeekBrowserID(r)
	if !ok {
		return nil
	}
	return cache.DelSessionToken(r.Context(), browserID)
}

func tokenTTL(token string, maxAge time.Duration, now time.Time) time.Duration {
	ttl := maxAge
	if exp, ok := TokenExpiry(strings.TrimSpace(token)); ok {
		untilExp := exp.Sub(now)
		if untilExp <= 0 {
			return time.Second
		}
		if ttl <= 0 || untilExp < ttl {
			ttl = untilExp
		}
	}
	if ttl < 0 {
		ttl = 0
	}
	return ttl
}
