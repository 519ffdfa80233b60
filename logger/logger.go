package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init builds the process-wide zap logger. Level accepts "debug" or "info".
func Init(level string) error {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	base, err := cfg.Build()
	if err != nil {
		return err
	}
	sugar = base.Sugar()
	return nil
}

func L() *zap.SugaredLogger {
	return sugar
}

func Sync() {
	_ = sugar.Sync()
}

func IsDebugEnabled() bool {
	return sugar.Desugar().Core().Enabled(zapcore.DebugLevel)
}
