package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mission-tool/blog-web/internal/blogapi"
	"github.com/mission-tool/blog-web/internal/logger"
	"github.com/mission-tool/blog-web/internal/models"
)

// LoginAPI 远端登录接口
type LoginAPI interface {
	Login(ctx context.Context, credentials models.LoginCredentials) (*blogapi.LoginResult, error)
}

// AuthService 登录服务，只负责换取 token，不保存
type AuthService struct {
	api LoginAPI
}

// NewAuthService 创建登录服务
func NewAuthService(api LoginAPI) *AuthService {
	return &AuthService{api: api}
}

// Login 提交账号密码换取 token
// 远端拒绝时返回的错误同时匹配 ErrLoginRejected 与原始错误
func (s *AuthService) Login(ctx context.Context, credentials models.LoginCredentials) (string, error) {
	if strings.TrimSpace(credentials.Username) == "" || credentials.Password == "" {
		return "", ErrCredentialsMissing
	}
	result, err := s.api.Login(ctx, credentials)
	if err != nil {
		logger.Infow("login_rejected", "username", credentials.Username, "error", err)
		return "", fmt.Errorf("%w: %w", ErrLoginRejected, err)
	}
	if result == nil || strings.TrimSpace(result.Token) == "" {
		return "", fmt.Errorf("%w: empty token", ErrLoginRejected)
	}
	return result.Token, nil
}
