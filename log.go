package quizforge

import "github.com/sirupsen/logrus"

// Package-wide logger; verbose mode maps to the debug level
var logger = logrus.New()

// Logger returns the package logger for callers that want structured fields
func Logger() *logrus.Logger {
	return logger
}

// SetVerbose sets the global verbose mode
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// VerboseLog logs only when verbose mode is enabled
func VerboseLog(format string, v ...interface{}) {
	logger.Debugf(format, v...)
}
