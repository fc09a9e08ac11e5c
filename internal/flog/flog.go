// Package flog is the Frontier's logging shim. It centralizes the
// leveled, printf-style logging calls (Fine/Debug/Info/Warn/Error) used
// throughout the frontier packages, the way walker centralized them on
// top of log4go.
package flog

import (
	"os"

	log4go "github.com/ccpaging/log4go"
)

// log is the process-wide logger instance. Frontier embeds this rather
// than a *log4go.Logger per component because the KV stores, sampler and
// façade all want the same sink and filter level.
var log = log4go.NewDefaultLogger(log4go.INFO)

func init() {
	level := os.Getenv("FRONTIER_LOG_LEVEL")
	switch level {
	case "FINE":
		log.SetLevel(log4go.FINE)
	case "DEBUG":
		log.SetLevel(log4go.DEBUG)
	case "WARN":
		log.SetLevel(log4go.WARNING)
	case "ERROR":
		log.SetLevel(log4go.ERROR)
	}
}

// SetLevel overrides the process-wide log level, mainly used by tests
// that want Fine-level detail without FRONTIER_LOG_LEVEL set.
func SetLevel(level log4go.Level) {
	log.SetLevel(level)
}

func Fine(format string, args ...any)  { log.Fine(format, args...) }
func Debug(format string, args ...any) { log.Debug(format, args...) }
func Info(format string, args ...any)  { log.Info(format, args...) }
func Warn(format string, args ...any)  { log.Warn(format, args...) }
func Error(format string, args ...any) { log.Error(format, args...) }
