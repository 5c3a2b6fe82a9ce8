package logger

import (
	"go.uber.org/zap"

	"github.com/abhisek/glossary/internal/config"
)

// New returns a development logger in debug mode. Otherwise only warnings
// and errors are logged, so interactive output stays clean.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	zcfg.Encoding = "console"
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}
