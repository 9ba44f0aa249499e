package cache

import (
	"context"
	"strings"
	"time"
)

// SessionToken 浏览器会话的 token 记录
// 只保存 token 本身与写入时间，不做任何校验
type SessionToken struct {
	BrowserID string `json:"browser_id"`
	Token     string `json:"token"`
	StoredAt  int64  `json:"stored_at"`
}

func sessionTokenKey(browserID string) string {
	return "session:token:" + strings.TrimSpace(browserID)
}

// GetSessionToken 读取浏览器会话 token
func GetSessionToken(ctx context.Context, browserID string) (*SessionToken, bool, error) {
	if strings.TrimSpace(browserID) == "" {
		return nil, false, nil
	}
	var record SessionToken
	hit, err := GetJSON(ctx, sessionTokenKey(browserID), &record)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &record, true, nil
}

// SetSessionToken 写入（覆盖）浏览器会话 token
func SetSessionToken(ctx context.Context, browserID, token string, ttl time.Duration) error {
	if strings.TrimSpace(browserID) == "" {
		return nil
	}
	record := SessionToken{
		BrowserID: browserID,
		Token:     token,
		StoredAt:  time.Now().Unix(),
	}
	return SetJSON(ctx, sessionTokenKey(browserID), record, ttl)
}

// DelSessionToken 删除浏览器会话 token
func DelSessionToken(ctx context.Context, browserID string) error {
	if strings.TrimSpace(browserID) == "" {
		return nil
	}
	return Del(ctx, sessionTokenKey(browserID))
}
