package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelCritical marks failures that stop the process.
const LevelCritical = slog.LevelError + 4

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Critical(msg string, args ...any)
	// ClientError records a request the caller got wrong. Logged at warn.
	ClientError(msg string, err error, args ...any)
	// ServerError records a failure on our side. Logged at error.
	ServerError(msg string, err error, args ...any)
}

type Options struct {
	Output      io.Writer // os.Stdout when nil
	Level       string
	Format      string // json (default) or text
	Development bool   // default level is debug instead of info
}

var levelNames = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type slogLogger struct {
	*slog.Logger
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level, opts.Development),
		ReplaceAttr: nameCritical,
	}

	var handler slog.Handler = slog.NewJSONHandler(out, handlerOpts)
	if strings.EqualFold(strings.TrimSpace(opts.Format), "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return slogLogger{slog.New(handler)}
}

func Nop() Logger {
	return slogLogger{slog.New(slog.DiscardHandler)}
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown or empty values
// fall back to debug in development and info elsewhere.
func ParseLevel(value string, development bool) slog.Level {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return level
	}
	if development {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (l slogLogger) Critical(msg string, args ...any) {
	l.Log(context.Background(), LevelCritical, msg, args...)
}

func (l slogLogger) ClientError(msg string, err error, args ...any) {
	if err != nil {
		l.Warn(msg, append([]any{"err", err}, args...)...)
	}
}

func (l slogLogger) ServerError(msg string, err error, args ...any) {
	if err != nil {
		l.Error(msg, append([]any{"err", err}, args...)...)
	}
}

func nameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey && attr.Value.Any() == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
