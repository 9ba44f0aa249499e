package app

import (
	"errors"
	"os"
	"time"

	"github.com/mission-tool/blog-web/internal/config"
	"github.com/mission-tool/blog-web/internal/logger"

	"go.uber.org/zap"
)

// ErrWeakSessionSecret release 模式下会话密钥过弱
var ErrWeakSessionSecret = errors.New("session secret is weak or still the default value")

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return opts
}
