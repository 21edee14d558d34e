package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

var Logger *logger

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

type logger struct {
	*slog.Logger
	level *slog.LevelVar
}

func init() {
	// default logger writes to stderr
	Logger = &logger{level: new(slog.LevelVar)}
	Logger.SetLevel(slog.LevelInfo)
	Logger.SetOutput(os.Stderr)
}

func (l *logger) SetLevel(v slog.Level) {
	l.level.Set(v)
}

// SetOutput sends all further records to w and makes the logger the slog default.
func (l *logger) SetOutput(w io.Writer) {
	ho := &slog.HandlerOptions{
		Level: l.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				label, exists := levelNames[level]
				if !exists {
					label = level.String()
				}

				a.Value = slog.StringValue(label)
			}

			return a
		},
	}
	l.Logger = slog.New(slog.NewTextHandler(w, ho))
	slog.SetDefault(l.Logger)
}

func (l *logger) Trace(msg string, args ...any) {
	l.Logger.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *logger) Fatal(msg string, args ...any) {
	l.Logger.Log(context.Background(), LevelFatal, msg, args...)
	os.Exit(1)
}

// ParseLevel accepts trace, debug, info, warn, error and fatal in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "fatal":
		return LevelFatal, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
