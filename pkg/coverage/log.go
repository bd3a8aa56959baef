package coverage

import (
	"github.com/rs/zerolog"
)

// logger is the package logger. It discards everything until a host
// application opts in via SetLogger.
var logger = zerolog.Nop()

// SetLogger routes the library's debug logging (grid rebuilds, cache
// reuse, image rendering) through the given logger.
//
// Example:
//
//	coverage.SetLogger(zerolog.New(os.Stderr).With().
//	    Str("component", "coverage").Timestamp().Logger())
func SetLogger(l zerolog.Logger) {
	logger = l
}
