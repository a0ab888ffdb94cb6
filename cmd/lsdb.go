package cmd

import (
	"fmt"
	"sort"

	"github.com/mitchellh/colorstring"

	"lsrouted.dev/lsrouted/routing"
	"lsrouted.dev/lsrouted/util/logger"
)

// HandleLSDB dumps every link-state database entry, sorted by origin.
// Usage: lsdb
func HandleLSDB(args []string) {
	if len(args) != 0 {
		logger.Warnf("Usage: lsdb")
		return
	}

	if router == nil {
		logger.Warnf("Router is not initialized.")
		return
	}

	entries := router.LSDBSnapshot()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Origin < entries[j].Origin })

	colorstring.Println("[bold]Link-State Database:[reset]")
	for _, e := range entries {
		if e.Sequence == routing.PlaceholderSequence {
			colorstring.Printf("  [yellow]%s -> placeholder (no LSA received yet)[reset]\n", e.Origin)
			continue
		}
		fmt.Printf("  %s -> seq=%d addresses=%v links=%v\n", e.Origin, e.Sequence, e.Addresses, e.Links)
	}
}
