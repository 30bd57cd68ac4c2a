package logging

import (
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New builds the process logger for the given level (debug, info, warn, error).
// Unknown levels fall back to info.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Install builds the logger, makes it the zap global and redirects the
// standard library logger into it. The returned func flushes and restores.
func Install(level string) (*zap.Logger, func(), error) {
	logger, err := New(level)
	if err != nil {
		return nil, nil, err
	}

	restoreGlobals := zap.ReplaceGlobals(logger)
	restoreStdLog := zap.RedirectStdLog(logger)

	return logger, func() {
		_ = logger.Sync()
		restoreStdLog()
		restoreGlobals()
	}, nil
}

// GormLogger returns the GORM statement logger for the given level.
// SQL statements are only traced at debug.
func GormLogger(level string) gormlogger.Interface {
	logLevel := gormlogger.Warn
	if parseLevel(level) == zapcore.DebugLevel {
		logLevel = gormlogger.Info
	}

	return gormlogger.New(
		log.Default(),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}
