package animator

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig captures options for configuring the package logger.
type LogConfig struct {
	Level     string    // optional log level ("debug", "info", etc.); empty keeps logging disabled
	Output    io.Writer // optional writer (defaults to os.Stderr)
	Component string    // optional component name attached to every entry
}

var (
	logMu sync.Mutex
	base  = zerolog.Nop()
)

// Configure replaces the package logger. With an empty Level the ANIMATOR_LOG
// environment variable is consulted; if that is empty too, logging stays off.
func Configure(cfg LogConfig) {
	level := cfg.Level
	if level == "" {
		level = os.Getenv("ANIMATOR_LOG")
	}
	if level == "" {
		SetLogger(zerolog.Nop())
		return
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	component := cfg.Component
	if component == "" {
		component = "animator"
	}
	zerolog.TimeFieldFormat = time.RFC3339

	SetLogger(zerolog.New(writer).Level(parsed).With().
		Timestamp().
		Str("component", component).
		Logger())
}

// SetLogger installs l as the package logger.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	base = l
	logMu.Unlock()
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	return base
}

// withComponent returns a child logger annotated with the given sub-component.
func withComponent(name string) zerolog.Logger {
	return Logger().With().Str("sub", name).Logger()
}
