// Package logger builds the zap loggers used by crepl, writing either to
// stderr or to a rotated log file.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where and how much to log.
type Config struct {
	// Level is a zap level name such as "debug" or "INFO".
	Level string `mapstructure:"level"`
	// FileName is the log file. If it is empty, logs go to stderr.
	FileName string `mapstructure:"file"`
	// MaxSize is the size in megabytes at which the file is rotated.
	MaxSize int `mapstructure:"max_size"`
	// MaxAge is the number of days to keep rotated files.
	MaxAge int `mapstructure:"max_age"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "WARN",
		MaxSize:    10,
		MaxAge:     30,
		MaxBackups: 3,
		Compress:   true,
	}
}

// New creates a logger from cfg. File output is JSON; stderr output is
// human-readable.
func New(cfg *Config) (*zap.Logger, error) {
	level := new(zapcore.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	var core zapcore.Core
	if cfg.FileName == "" {
		core = zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), level)
	} else {
		core = zapcore.NewCore(fileEncoder(), fileWriter(cfg), level)
	}
	return zap.New(core, zap.AddCaller()), nil
}

func fileEncoder() zapcore.Encoder {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encodeConfig)
}

func consoleEncoder() zapcore.Encoder {
	encodeConfig := zap.NewDevelopmentEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encodeConfig)
}

func fileWriter(cfg *Config) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FileName,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	})
}
