package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Env selects the encoder: "production" logs JSON, anything else logs
	// human-readable console output.
	Env   string
	Level string
}

// New builds the process logger. Logs go to stderr; stdout is reserved for
// command output.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	if strings.EqualFold(strings.TrimSpace(cfg.Env), "production") {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.DisableStacktrace = true
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func ParseLevel(value string) (zapcore.Level, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return zapcore.WarnLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", value)
	}
	return level, nil
}

// Sync flushes buffered entries. Syncing stderr fails on some terminals, so
// that error is ignored.
func Sync(logger *zap.Logger) {
	if logger == nil {
		return
	}
	_ = logger.Sync()
}
