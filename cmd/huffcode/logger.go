package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the command's logger from the "logger.*" config keys.
func NewLogger(conf *Conf, w io.Writer) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = conf.String("logger.time-format", time.RFC3339)

	out := w
	if conf.Bool("logger.prettier", true) {
		out = zerolog.ConsoleWriter{Out: w}
	}

	level, err := zerolog.ParseLevel(conf.String("logger.level", "info"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
