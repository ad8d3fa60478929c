// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"strings"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Levels, aligned with go-ethereum so handlers from both packages agree.
const (
	LevelTrace slog.Level = ethlog.LevelTrace
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = ethlog.LevelCrit
)

// Logger writes key/value pairs to a slog handler.
type Logger = ethlog.Logger

// Root returns the root logger.
func Root() Logger {
	return ethlog.Root()
}

// SetDefault sets the root logger. Loggers created by WithContext follow the change.
func SetDefault(l Logger) {
	ethlog.SetDefault(l)
}

// NewLogger returns a logger with the specified handler set.
func NewLogger(h slog.Handler) Logger {
	return ethlog.NewLogger(h)
}

// WithContext returns a logger which resolves the root logger on every call,
// so package level loggers can be declared before the root is configured.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

// FromLegacyLevel converts a 0-5 verbosity (crit..trace) into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return ethlog.FromLegacyLevel(lvl)
}

// LevelString returns a 5-character string containing the name of a level.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "trace"
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	case LevelCrit:
		return "crit"
	default:
		return strings.ToLower(l.String())
	}
}

func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }

type contextLogger struct {
	ctx []any
}

func (l *contextLogger) logger() Logger {
	return Root().With(l.ctx...)
}

func (l *contextLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &contextLogger{ctx: append(merged, ctx...)}
}

func (l *contextLogger) New(ctx ...any) Logger { return l.With(ctx...) }

func (l *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.logger().Log(level, msg, ctx...)
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.logger().Trace(msg, ctx...) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.logger().Debug(msg, ctx...) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.logger().Info(msg, ctx...) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.logger().Warn(msg, ctx...) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.logger().Error(msg, ctx...) }
func (l *contextLogger) Crit(msg string, ctx ...any)  { l.logger().Crit(msg, ctx...) }

func (l *contextLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.logger().Write(level, msg, attrs...)
}

func (l *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.logger().Enabled(ctx, level)
}

func (l *contextLogger) Handler() slog.Handler {
	return l.logger().Handler()
}
