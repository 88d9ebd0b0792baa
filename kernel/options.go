package kernel

import (
	"log/slog"
	"runtime"
)

const panicWorkersInvalid = "kernel: WithWorkers: n must be > 0"

// Option configures an Engine.
type Option func(*options)

type options struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers caps the number of rows evaluated concurrently.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger attaches a logger for debug-level progress records.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) options {
	o := options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
