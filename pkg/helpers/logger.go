package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process-wide logrus logger. Development keeps
// human-readable text at debug level, any other environment logs JSON at
// info level for ingestion.
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	switch env {
	case "development":
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger ready")
	return logger
}
