// internal/utils/logger.go
package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/config"
)

// SetupLogger configures the global logrus logger. Unknown levels fall back to info.
func SetupLogger(cfg config.LogConfig) {
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
