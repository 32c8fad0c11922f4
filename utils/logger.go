package utils

import (
	"os"

	log "github.com/sirupsen/logrus"
)

var (
	InfoLog  = log.NewEntry(log.StandardLogger())
	ErrorLog = log.NewEntry(log.StandardLogger())
)

// InicializarLogger configura los loggers globales
func InicializarLogger(logLevel string, moduleName string) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	entry := logger.WithField("modulo", moduleName)

	InfoLog = entry
	ErrorLog = entry
}
