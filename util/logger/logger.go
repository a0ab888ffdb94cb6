// Package logger provides leveled logging for the daemon.
// All components log through here rather than the bare "log" package so the
// operator CLI's "loglvl" command can change verbosity at runtime.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"lsrouted.dev/lsrouted/util/assert"
)

// Level controls which messages are emitted.
type Level int32

const (
	None Level = iota
	Warn
	Info
	Debug
)

func (l Level) String() string {
	switch l {
	case None:
		return "NONE"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// LevelEnv is the environment variable consulted at startup to pick the
// initial log level; SetLevel changes it at runtime afterwards.
const LevelEnv = "LOG_LEVEL"

var level atomic.Int32

func init() {
	envvar, present := os.LookupEnv(LevelEnv)
	if !present {
		level.Store(int32(Info))
		return
	}

	l, ok := ParseLevel(envvar)
	if !ok {
		level.Store(int32(Info))
		Warnf("Unknown log level %q, defaulting to INFO", envvar)
		return
	}
	level.Store(int32(l))
}

// ParseLevel maps a level name (NONE, WARN, INFO, DEBUG) to a Level.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "NONE":
		return None, true
	case "WARN":
		return Warn, true
	case "INFO":
		return Info, true
	case "DEBUG":
		return Debug, true
	default:
		return None, false
	}
}

// SetLevel changes the active log level. Safe for concurrent use.
func SetLevel(l Level) {
	level.Store(int32(l))
}

// GetLevel returns the active log level. Safe for concurrent use.
func GetLevel() Level {
	return Level(level.Load())
}

// Errorf logs a fatal error and terminates the process.
// Used only for startup failures: nothing after Errorf executes.
func Errorf(format string, v ...any) {
	log.Fatalf(fmt.Sprintf("[ERROR] %s", format), v...)
	assert.Never("log.Fatalf returned")
}

// Warnf logs a message prefixed with "[WARN] ".
func Warnf(format string, v ...any) {
	if GetLevel() < Warn {
		return
	}
	log.Printf(fmt.Sprintf("[WARN] %s", format), v...)
}

// Infof logs a message prefixed with "[INFO] ".
func Infof(format string, v ...any) {
	if GetLevel() < Info {
		return
	}
	log.Printf(fmt.Sprintf("[INFO] %s", format), v...)
}

// Debugf logs a message prefixed with "[DEBUG] ".
func Debugf(format string, v ...any) {
	if GetLevel() < Debug {
		return
	}
	log.Printf(fmt.Sprintf("[DEBUG] %s", format), v...)
}
