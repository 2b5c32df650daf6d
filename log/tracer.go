package log

import (
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

// AddTracer mirrors frame-level events of logger into files next to path:
// debug events (frames sent and received) into path.trace, warnings (parity
// corrections, dropped frames) into path.warn.
func AddTracer(logger *Logger, path string) {
	pathMap := lfshook.PathMap{
		log.DebugLevel: path + ".trace",
		log.WarnLevel:  path + ".warn",
	}
	hook := lfshook.NewHook(
		pathMap,
		&log.JSONFormatter{
			TimestampFormat: "Jan _2 2006 15:04:05.000000",
		},
	)
	logger.Entry.Logger.Hooks.Add(hook)
	logger.Entry.Logger.SetLevel(log.DebugLevel)
}
