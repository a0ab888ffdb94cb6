package cmd

import (
	"fmt"
	"sort"
	"time"

	"lsrouted.dev/lsrouted/util/logger"
)

// HandleNeighbors dumps the neighbor table: IP, link cost, and how long
// ago each neighbor was last heard from.
// Usage: neighbors
func HandleNeighbors(args []string) {
	if len(args) != 0 {
		logger.Warnf("Usage: neighbors")
		return
	}

	if router == nil {
		logger.Warnf("Router is not initialized.")
		return
	}

	neighbors := router.Neighbors()
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].RouterID < neighbors[j].RouterID })

	fmt.Println("Neighbor Table:")
	for _, n := range neighbors {
		fmt.Printf("  %s -> ip=%s cost=%d last_heard=%s ago\n", n.RouterID, n.IP, n.LinkCost, time.Since(n.LastHeard).Round(time.Second))
	}
}
