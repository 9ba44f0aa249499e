package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry 读取 JWT 的 exp 声明，不验证签名
// 非 JWT 或无 exp 的 token 返回 false
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired token 是否已过 exp；无法判断时视为未过期
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	return ok && !now.Before(exp)
}
