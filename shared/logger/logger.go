// Package logger собирает zap.Logger сервиса по настройкам из окружения.
//
// Config встраивается в internal/config и заполняется cleanenv:
//
//	LOG_LEVEL        debug | info | warn | error      (по умолчанию info)
//	LOG_ENCODING     json | console                   (по умолчанию json)
//	LOG_OUTPUT_PATH  путь к файлу или stdout/stderr   (по умолчанию stdout)
//
// Некорректные значения не ломают запуск: используется значение по умолчанию,
// предупреждение пишется в stderr.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultLevel      = "info"
	DefaultEncoding   = "json"
	DefaultOutputPath = "stdout"
)

type Config struct {
	Level      string `env:"LOG_LEVEL" env-default:"info" env-description:"zap level"`
	Encoding   string `env:"LOG_ENCODING" env-default:"json" env-description:"json or console"`
	OutputPath string `env:"LOG_OUTPUT_PATH" env-default:"stdout" env-description:"log file path, stdout or stderr"`
}

// New строит логгер: ISO8601 время в поле timestamp, уровни заглавными, без caller и stacktrace.
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:             parseLevel(cfg.Level),
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          parseEncoding(cfg.Encoding),
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{orDefault(cfg.OutputPath, DefaultOutputPath)},
		ErrorOutputPaths:  []string{"stderr"},
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger (output %q): %w", zapCfg.OutputPaths[0], err)
	}
	return log, nil
}

func parseLevel(raw string) zap.AtomicLevel {
	name := strings.ToLower(orDefault(strings.TrimSpace(raw), DefaultLevel))
	level, err := zap.ParseAtomicLevel(name)
	if err != nil {
		// логгера еще нет
		fmt.Fprintf(os.Stderr, "LOG_LEVEL=%q is invalid, falling back to %s: %v\n", raw, DefaultLevel, err)
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

func parseEncoding(raw string) string {
	switch enc := strings.ToLower(strings.TrimSpace(raw)); enc {
	case "json", "console":
		return enc
	case "":
		return DefaultEncoding
	default:
		fmt.Fprintf(os.Stderr, "LOG_ENCODING=%q is not supported, falling back to %s\n", raw, DefaultEncoding)
		return DefaultEncoding
	}
}

func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return enc
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
