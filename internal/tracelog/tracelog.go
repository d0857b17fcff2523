// Package tracelog provides stage timing instrumentation for the symtypes
// CLI, logged to stderr via the standard log package — matching the
// teacher's own idiom of bare log.Printf calls rather than a structured or
// leveled third-party logger.
package tracelog

import (
	"log"
	"time"
)

// Logger gates stage-timing output behind a verbosity flag.
type Logger struct {
	Verbose bool
}

// Stage logs how long fn took under name, only when Verbose is set. It
// always runs fn and returns its error.
func (l *Logger) Stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if l.Verbose {
		log.Printf("%s: %s", name, time.Since(start))
	}
	return err
}

// Printf logs unconditionally, regardless of -v.
func Printf(format string, args ...any) {
	log.Printf(format, args...)
}
