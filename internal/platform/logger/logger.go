package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level = zerolog.Level

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger es la interfaz que usan handlers y adapters.
// Se mantiene pequeña para poder cambiar el backend sin tocar el resto.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string
	Out    io.Writer // opcional; default os.Stdout
}

// ZeroLogger implementa Logger sobre zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(opts.Level).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}

	return &ZeroLogger{zl: ctx.Logger()}
}

// Nop descarta todo. Útil en tests.
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZeroLogger{zl: l.zl.With().Fields(clean(fields)).Logger()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) {
	l.zl.Debug().Fields(clean(fields)).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]any) {
	l.zl.Info().Fields(clean(fields)).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]any) {
	l.zl.Warn().Fields(clean(fields)).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, fields map[string]any) {
	l.zl.Error().Fields(clean(fields)).Msg(msg)
}

// clean descarta keys vacías; zerolog las escribiría tal cual.
func clean(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
