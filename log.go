package encodium

import (
	"os"

	"github.com/rs/zerolog"
)

// logger emits the package's only diagnostic: the unknown-field warning from
// Change. Defaults to stderr.
var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "encodium").Logger()

// SetLogger replaces the diagnostics logger. Pass a logger built on
// zerolog.Nop() to silence the unknown-field warning entirely.
func SetLogger(l zerolog.Logger) { logger = l }
