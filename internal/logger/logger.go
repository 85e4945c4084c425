package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init replaces the global zap logger. Production builds log JSON at info level,
// everything else uses the colored development encoder at debug level.
func Init(environment string) error {
	var conf zap.Config
	if environment == "production" {
		conf = zap.NewProductionConfig()
		level.SetLevel(zapcore.InfoLevel)
	} else {
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		level.SetLevel(zapcore.DebugLevel)
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}
	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger without rebuilding it.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}

	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("zapcore.ParseLevel -> %w", err)
	}
	level.SetLevel(parsed)

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
