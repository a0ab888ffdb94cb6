package cmd

import (
	"fmt"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"

	"lsrouted.dev/lsrouted/util/logger"
)

// HandleRoutes dumps the routing table, or re-applies every entry to
// the route installer with "routes install".
// Usage: routes [install]
func HandleRoutes(args []string) {
	if router == nil {
		logger.Warnf("Router is not initialized.")
		return
	}

	if len(args) == 1 && args[0] == "install" {
		handleRoutesInstall()
		return
	}
	if len(args) != 0 {
		logger.Warnf("Usage: routes [install]")
		return
	}

	routes := router.SortedRoutes()
	colorstring.Println("[bold]Routing Table:[reset]")
	for _, route := range routes {
		colorstring.Printf("  %s -> [green]%s[reset]\n", route.Destination, route.NextHop)
	}
}

func handleRoutesInstall() {
	routes := router.SortedRoutes()
	if len(routes) == 0 {
		fmt.Println("Routing table is empty, nothing to install.")
		return
	}

	table := make(map[string]string, len(routes))
	for _, r := range routes {
		table[r.Destination] = r.NextHop
	}

	bar := progressbar.Default(int64(len(routes)), "installing routes")
	router.InstallAll(table, func(done, total int) {
		bar.Set(done)
	})
	bar.Finish()
}
