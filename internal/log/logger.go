package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. Development writes pretty console output at
// debug level; production writes JSON at info level.
func New(environment string) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Millisecond

	if environment == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return zerolog.New(os.Stdout).With().
			Timestamp().
			Str("service", "photoshare-api").
			Logger()
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().
		Timestamp().
		Str("env", environment).
		Logger()
}
