package logging

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"

	"github.com/statichost/site-sync/config"
)

// NewLogger instantiates and returns a new *zerolog.Logger.
func NewLogger() *zerolog.Logger {
	zerolog.DurationFieldUnit = time.Second
	zerolog.TimeFieldFormat = time.RFC3339

	output := newLogWriter()

	// Buffer log writes through a diode so slow sinks cannot stall uploads.
	wr := diode.NewWriter(output, 1000, 10*time.Millisecond, func(missed int) {
		fmt.Printf("dropped %d messages", missed)
	})

	multi := zerolog.MultiLevelWriter(wr)

	l := zerolog.New(multi).With().Timestamp()

	logger := l.Logger()

	if lvl, err := zerolog.ParseLevel(config.LoggingLevel.String()); err == nil {
		logger = logger.Level(lvl)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	return &logger
}
