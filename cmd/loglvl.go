package cmd

import (
	"fmt"
	"strings"

	"lsrouted.dev/lsrouted/util/logger"
)

// HandleLogLevel displays or sets the current log level.
// Usage: loglvl [NONE|WARN|INFO|DEBUG]
func HandleLogLevel(args []string) {
	if len(args) > 1 {
		fmt.Println("Usage: loglvl [NONE|WARN|INFO|DEBUG]")
		return
	}

	if len(args) == 1 {
		levelStr := strings.ToUpper(args[0])
		level, ok := logger.ParseLevel(levelStr)
		if !ok {
			fmt.Printf("Invalid log level: %s\n", levelStr)
			return
		}
		logger.SetLevel(level)
		fmt.Printf("Log level set to %s\n", levelStr)
		return
	}

	fmt.Printf("Current log level: %s\n", logger.GetLevel().String())
}
