package app

import (
	"errors"
	"fmt"

	"github.com/mission-tool/blog-web/internal/config"
	"github.com/mission-tool/blog-web/internal/provider"
	"github.com/mission-tool/blog-web/internal/router"
)

// BuildRunner 构建服务运行器
// 会话中心排在 HTTP 之前，停止时先关闭 SSE 订阅，HTTP Shutdown 才不会被长连接拖住
func BuildRunner(cfg *config.Config, opts ...provider.Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init container: %w", err)
	}

	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	return NewRunner(container.SessionHub, NewHTTPService(addr, engine)), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if err := checkSessionSecret(opts); err != nil {
		return err
	}

	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start",
		"addr", addr,
		"mode", opts.Config.Server.Mode,
		"api_base_url", opts.Config.API.BaseURL,
		"session_driver", opts.Config.Session.Driver,
	)
	return RunWithOptions(runner, opts)
}

// checkSessionSecret release 模式拒绝弱密钥，其余模式只告警
func checkSessionSecret(opts Options) error {
	if !config.IsWeakSecret(opts.Config.Session.Secret) {
		return nil
	}
	if opts.Config.Server.Mode == "release" {
		return ErrWeakSessionSecret
	}
	opts.Logger.Warnw("session_secret_weak", "hint", "set session.secret to a random value of at least 32 bytes")
	return nil
}
