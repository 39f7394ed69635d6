package logger

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup configures the standard logrus logger. An empty level defaults to
// info and an empty format to text.
func Setup(level string, format string) error {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("logger.Setup: %w", err)
		}

		lvl = parsed
	}

	switch format {
	case "", FormatText:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("logger.Setup: unknown format %q", format)
	}

	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)

	return nil
}
