package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLog creates the application logger. Unknown levels fall back to info.
func InitLog(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
