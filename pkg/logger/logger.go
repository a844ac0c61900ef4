// Package logger owns the console's process-wide zerolog logger.
//
// main calls Init once; everything else either receives a zerolog.Logger
// value or asks for one with Get or Component. Levels, lowest first:
//
//	trace, debug, info, warn, error
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Init.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else is info.
	Level string
	// Pretty writes coloured text instead of JSON lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is stamped on every event as "service" when set.
	Service string
}

var (
	mu     sync.Mutex
	once   sync.Once
	root   zerolog.Logger
	loaded bool
)

// Init builds the process logger. Only the first call takes effect; later
// calls return the logger built by the first.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opts.Output != nil {
			w = opts.Output
		}
		if opts.Pretty {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		fields := zerolog.New(w).Level(level).With().Timestamp().Caller()
		if opts.Service != "" {
			fields = fields.Str("service", opts.Service)
		}
		root = fields.Logger()
		loaded = true
	})
	return root
}

// Get returns the process logger. It panics before Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if !loaded {
		panic("logger: Get called before Init")
	}
	return root
}

// Component returns the process logger tagged with a component name, the
// way services and workers receive their logger.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset forgets the process logger so tests can Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	once = sync.Once{}
	root = zerolog.Logger{}
	loaded = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
