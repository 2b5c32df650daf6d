package log

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Logger is a logrus entry scoped to one module of the link layer. Every
// package obtains its own via NewLogger.
type Logger struct {
	*log.Entry
}

func NewLogger(module string) *Logger {
	base := log.New()

	base.SetFormatter(&log.TextFormatter{
		DisableColors:    false,
		DisableTimestamp: false,
	})

	base.SetOutput(os.Stdout)
	base.SetLevel(log.InfoLevel)

	entry := base.WithFields(
		log.Fields{
			"name": module,
		})
	return &Logger{entry}
}

// SetLevel adjusts the level of the underlying logger.
func (l *Logger) SetLevel(level log.Level) {
	l.Entry.Logger.SetLevel(level)
}
