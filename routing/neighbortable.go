package routing

import (
	"net"
	"time"
)

// admitOrRefreshNeighbor inserts or refreshes a neighbor table entry
// for origin. The caller has already confirmed origin is declared
// adjacent in the static topology; this just records the IP learned
// from HELLO and bumps last-heard. Caller must hold r.mu.
func (r *Router) admitOrRefreshNeighbor(origin string, ip net.IP, cost int) {
	r.neighbors[origin] = &NeighborEntry{
		IP:        ip,
		LinkCost:  cost,
		LastHeard: time.Now(),
	}
}

// isNeighbor reports whether origin is a current neighbor. Caller must
// hold r.mu.
func (r *Router) isNeighbor(origin string) (*NeighborEntry, bool) {
	entry, ok := r.neighbors[origin]
	return entry, ok
}

// neighborCostView returns a RouterId -> link cost map built from the
// neighbor table, used as a self-LSA's links; neighbor IPs are left
// out.
func (r *Router) neighborCostView() map[string]int {
	view := make(map[string]int, len(r.neighbors))
	for id, n := range r.neighbors {
		view[id] = n.LinkCost
	}
	return view
}

// neighborIDs returns the current neighbor table's key set, used as a
// HELLO packet's known_neighbors field.
func (r *Router) neighborIDs() []string {
	ids := make([]string, 0, len(r.neighbors))
	for id := range r.neighbors {
		ids = append(ids, id)
	}
	return ids
}

// NeighborSnapshot is a read-only view of one neighbor table entry,
// returned by Router.Neighbors for the operator CLI.
type NeighborSnapshot struct {
	RouterID  string
	IP        net.IP
	LinkCost  int
	LastHeard time.Time
}

// Neighbors returns a snapshot of the neighbor table.
func (r *Router) Neighbors() []NeighborSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]NeighborSnapshot, 0, len(r.neighbors))
	for id, n := range r.neighbors {
		out = append(out, NeighborSnapshot{
			RouterID:  id,
			IP:        n.IP,
			LinkCost:  n.LinkCost,
			LastHeard: n.LastHeard,
		})
	}
	return out
}
