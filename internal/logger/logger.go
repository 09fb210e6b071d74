// Package logger builds the zap logger shared by the CLI and the services.
package logger

import (
	"fmt"

	"github.com/diewo77/lead-hunter/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development (console) logger outside production and a JSON
// logger in production. LogLevel accepts zap level names.
func New(app config.AppConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if app.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(app.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", app.LogLevel, err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.FunctionKey = "func"

	return zapConfig.Build(zap.AddCaller())
}
