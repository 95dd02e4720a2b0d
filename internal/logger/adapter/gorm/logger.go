// Package gorm implements a gorm logger writing through the global zerolog logger.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks queries slower than this as slow at warn level.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gormlogger.Interface.
type Logger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*Logger)(nil)

// New creates a gorm logger whose gorm level follows the global zerolog level.
func New() *Logger {
	return &Logger{
		level:         levelFromZerolog(zerolog.GlobalLevel()),
		slowThreshold: DefaultSlowThreshold,
	}
}

func levelFromZerolog(l zerolog.Level) gormlogger.LogLevel {
	switch {
	case l == zerolog.Disabled:
		return gormlogger.Silent
	case l <= zerolog.DebugLevel:
		return gormlogger.Info
	case l == zerolog.InfoLevel, l == zerolog.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

// LogMode returns a copy of the logger using level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	nl := *l
	nl.level = level

	return &nl
}

// Info logs gorm info messages at debug level.
func (l *Logger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		log.Debug().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn logs gorm warnings.
func (l *Logger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		log.Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Error logs gorm errors.
func (l *Logger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		log.Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace logs a finished statement: failures at error, slow ones at warn, the rest at trace.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		log.Error().Err(err).
			Str("component", "gorm").
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("query failed")
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		log.Warn().
			Str("component", "gorm").
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Dur("threshold", l.slowThreshold).
			Msg("slow query")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		log.Trace().
			Str("component", "gorm").
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("query")
	}
}
