package config

import (
	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger at the given level; unknown levels fall
// back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}
