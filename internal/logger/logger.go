package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger: JSON lines on stdout, ISO 8601
// timestamps, level parsed from lvl (falls back to info).
func Setup(lvl string) {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	log.SetOutput(os.Stdout)

	level, err := log.ParseLevel(lvl)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
