package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName    = "logs"
	defaultLogFilename   = "blog-web.log"
	defaultLogMaxSizeMB  = 50
	defaultLogMaxBackups = 5
	defaultLogMaxAgeDays = 14
)

// Options 日志输出配置
type Options struct {
	Level      string
	Console    bool
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// normalized 补齐默认值，目录为空时落在工作目录下的 logs
func (o Options) normalized() (Options, error) {
	o.Level = strings.ToLower(strings.TrimSpace(o.Level))
	o.Dir = strings.TrimSpace(o.Dir)
	if o.Dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return o, fmt.Errorf("resolve workdir failed: %w", err)
		}
		o.Dir = filepath.Join(workDir, defaultLogDirName)
	}
	if o.Filename = strings.TrimSpace(o.Filename); o.Filename == "" {
		o.Filename = defaultLogFilename
	}
	o.MaxSizeMB = positiveOr(o.MaxSizeMB, defaultLogMaxSizeMB)
	o.MaxBackups = positiveOr(o.MaxBackups, defaultLogMaxBackups)
	o.MaxAgeDays = positiveOr(o.MaxAgeDays, defaultLogMaxAgeDays)
	return o, nil
}

// levelFor 配置的级别优先，未配置或无法识别时 debug 模式为 debug，其余为 info
func levelFor(mode, configured string) zap.AtomicLevel {
	if configured = strings.TrimSpace(configured); configured != "" {
		if lvl, err := zapcore.ParseLevel(configured); err == nil {
			return zap.NewAtomicLevelAt(lvl)
		}
	}
	if isDebugMode(mode) {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

// L 全局结构化日志实例
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallbackLog  *zap.Logger
)

// Init 初始化全局日志，并替换 zap 全局实例
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New 创建日志实例
// debug 模式只输出到控制台；其他模式写 JSON 滚动文件，Console 为 true 时同时输出到控制台
func New(mode string, options Options) *zap.Logger {
	level := levelFor(mode, options.Level)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(newEncoderConfig()), zapcore.AddSync(os.Stdout), level)
	if isDebugMode(mode) {
		return wrap(consoleCore)
	}

	fileSink, err := openFileSink(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed, fallback to stdout: %v\n", err)
		return wrap(zapcore.NewCore(zapcore.NewJSONEncoder(newEncoderConfig()), zapcore.AddSync(os.Stdout), level))
	}
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(newEncoderConfig()), fileSink, level)
	if options.Console {
		return wrap(zapcore.NewTee(fileCore, consoleCore))
	}
	return wrap(fileCore)
}

func wrap(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func newEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func isDebugMode(mode string) bool {
	return strings.EqualFold(strings.TrimSpace(mode), "debug")
}

// StdLogger 供 http.Server.ErrorLog 使用
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z 返回可用的结构化日志实例，未初始化时使用控制台 logger
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	fallbackOnce.Do(func() {
		fallbackLog = wrap(zapcore.NewCore(
			zapcore.NewConsoleEncoder(newEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(zap.InfoLevel),
		))
	})
	return fallbackLog
}

// S 返回可用的 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 返回带上下文字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

// Debugw 输出 debug 级别日志
func Debugw(message string, kv ...interface{}) {
	S().Debugw(message, kv...)
}

// Infow 输出 info 级别日志
func Infow(message string, kv ...interface{}) {
	S().Infow(message, kv...)
}

// Warnw 输出 warn 级别日志
func Warnw(message string, kv ...interface{}) {
	S().Warnw(message, kv...)
}

// Errorw 输出 error 级别日志
func Errorw(message string, kv ...interface{}) {
	S().Errorw(message, kv...)
}

// openFileSink 打开滚动文件，先确认文件可写
func openFileSink(options Options) (zapcore.WriteSyncer, error) {
	opts, err := options.normalized()
	if err != nil {
		return nil, err
	}
	path, err := prepareLogFile(opts.Dir, opts.Filename)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}), nil
}

func prepareLogFile(dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir failed: %w", err)
	}
	path := filepath.Join(dir, filename)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file failed: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close log file failed: %w", err)
	}
	return path, nil
}

func positiveOr(value int, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
