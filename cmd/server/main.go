package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/mission-tool/blog-web/internal/app"
	"github.com/mission-tool/blog-web/internal/config"
	"github.com/mission-tool/blog-web/internal/i18n"
	"github.com/mission-tool/blog-web/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	printStartupBanner(cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	i18n.SetDefaultLocale(cfg.I18n.DefaultLocale)

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(cfg *config.Config) {
	fmt.Println(ansiCyan + ansiBold + "blog-web" + ansiReset)
	fmt.Println(ansiDim + "listen:  " + cfg.Server.Host + ":" + cfg.Server.Port + ansiReset)
	fmt.Println(ansiDim + "backend: " + cfg.API.BaseURL + ansiReset)
}
