package config

import (
	"fmt"
	"strings"

	"github.com/mission-tool/blog-web/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL 未配置覆盖地址时使用的本地后端地址
const DefaultAPIBaseURL = "http://localhost:8080"

// APIBaseURLEnv 覆盖后端地址的环境变量
const APIBaseURLEnv = "BLOG_API_URL"

// Session 存储驱动
const (
	SessionDriverCookie = "cookie"
	SessionDriverRedis  = "redis"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Security SecurityConfig `mapstructure:"security"`
	I18n     I18nConfig     `mapstructure:"i18n"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"` // debug / info / warn / error，留空按运行模式
	Console    bool   `mapstructure:"console"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Console:    c.Console,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// APIConfig 远端博客 API 配置
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SessionConfig 浏览器会话配置
type SessionConfig struct {
	Driver          string `mapstructure:"driver"` // cookie / redis
	Name            string `mapstructure:"name"`
	Secret          string `mapstructure:"secret"`
	MaxAgeSeconds   int    `mapstructure:"max_age_seconds"`
	Secure          bool   `mapstructure:"secure"`
	IdleTTLSeconds  int    `mapstructure:"idle_ttl_seconds"`
	PruneIntervalMS int    `mapstructure:"prune_interval_ms"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// I18nConfig 多语言配置
type I18nConfig struct {
	DefaultLocale string `mapstructure:"default_locale"`
}

// ResolveAPIBaseURL 有覆盖值时原样返回，否则返回本地默认地址
func ResolveAPIBaseURL(override string) string {
	if override != "" {
		return override
	}
	return DefaultAPIBaseURL
}

// Load 从 .env、config.yml 与环境变量加载配置
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debugw("dotenv_not_loaded", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./etc")
	v.AddConfigPath("../")
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("api.base_url", APIBaseURLEnv); err != nil {
		logger.Warnw("config_bind_env_failed", "key", "api.base_url", "error", err)
	}

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	cfg.API.BaseURL = ResolveAPIBaseURL(cfg.API.BaseURL)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.console", false)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "blog-web.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("session.driver", SessionDriverCookie)
	v.SetDefault("session.name", "blog_session")
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.max_age_seconds", 7*24*3600)
	v.SetDefault("session.secure", false)
	v.SetDefault("session.idle_ttl_seconds", 3600)
	v.SetDefault("session.prune_interval_ms", 60000)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "blog")
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 10)
	v.SetDefault("i18n.default_locale", "zh-TW")
}

// IsWeakSecret 判断会话密钥是否过弱或仍为默认值
func IsWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "your-secret-key")
}
