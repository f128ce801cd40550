package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	defaultGormLogLevel  = gormlogger.Warn
)

// gormZerolog sends gorm's log output through the service logger
type gormZerolog struct {
	log                       zerolog.Logger
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
	logLevel                  gormlogger.LogLevel
}

// NewGormLogger returns a gorm logger at the named level (silent, error, warn, info).
// An unknown level falls back to warn and is reported as an error.
func NewGormLogger(log zerolog.Logger, levelValue string) (gormlogger.Interface, error) {
	level := defaultGormLogLevel
	var levelErr error
	if strings.TrimSpace(levelValue) != "" {
		level, levelErr = parseGormLogLevel(levelValue)
	}
	return &gormZerolog{
		log:                       log.With().Str("component", "gorm").Logger(),
		slowThreshold:             defaultSlowThreshold,
		ignoreRecordNotFoundError: true,
		logLevel:                  level,
	}, levelErr
}

func parseGormLogLevel(value string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "warn", "warning":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	}
	return defaultGormLogLevel, fmt.Errorf("invalid gorm log level %q", value)
}

func (l *gormZerolog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

func (l *gormZerolog) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.log.Info().Ctx(ctx).Msgf(msg, data...)
	}
}

func (l *gormZerolog) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.log.Warn().Ctx(ctx).Msgf(msg, data...)
	}
}

func (l *gormZerolog) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.log.Error().Ctx(ctx).Msgf(msg, data...)
	}
}

func (l *gormZerolog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
		if l.ignoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
		sql, rows := fc()
		l.log.Error().Ctx(ctx).Err(err).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("gorm query error")

	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn().Ctx(ctx).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Dur("threshold", l.slowThreshold).
			Msg("gorm slow query")

	case err == nil && l.logLevel >= gormlogger.Info:
		sql, rows := fc()
		l.log.Info().Ctx(ctx).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("gorm query")
	}
}
