package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger tagged with the component
// name. APP_ENV=dev switches to a human-readable console stream and
// enables debug output; the default is JSON lines at info level.
// LOG_LEVEL overrides the level either way.
func NewZerologLogger(component string) Logger {
	dev := strings.ToLower(os.Getenv("APP_ENV")) == "dev"

	var out zerolog.Logger
	if dev {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.New(os.Stdout)
	}
	out = out.Level(level(dev)).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: out}
}

func level(dev bool) zerolog.Level {
	if lv, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lv != zerolog.NoLevel {
		return lv
	}
	if dev {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
