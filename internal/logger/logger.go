// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init with logrus defaults,
// so packages and tests can log without any setup.
var Log = logrus.New()

// Init configures Log from the environment. Call it once from main.
//
//   - LOG_LEVEL: logrus level name, "info" when unset or invalid
//   - LOG_FORMAT: "json" for machine-readable output, anything else for text
func Init() {
	InitWithOutput(os.Stderr)
}

// InitWithOutput is Init with an explicit destination. The view command
// uses it to keep log lines off the terminal screen.
func InitWithOutput(w io.Writer) {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(w)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
