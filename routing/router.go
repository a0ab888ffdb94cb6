// Package routing implements the link-state control plane: the LSDB,
// the neighbor table, SPF, and the Router that ties HELLO/LSA handling
// to both.
package routing

import (
	"net"
	"sync"
	"time"

	"lsrouted.dev/lsrouted/proto"
	"lsrouted.dev/lsrouted/topology"
	"lsrouted.dev/lsrouted/util/logger"
)

// RouteInstaller is the host-side collaborator that pushes computed
// next-hops into a forwarding table. Implementations live outside this
// package (see installer).
type RouteInstaller interface {
	Install(destination, nextHop net.IP) error
}

// Router owns the LSDB, the neighbor table, and the routing table
// derived from them. All three are guarded by a single mutex: a coarse
// lock held across update + SPF, never across socket sends.
type Router struct {
	id        string
	topo      *topology.Topology
	installer RouteInstaller

	mu           sync.Mutex
	lsdb         map[string]*LSDBEntry
	neighbors    map[string]*NeighborEntry
	routingTable map[string]string
}

// New creates a Router for the local RouterId id.
func New(id string, topo *topology.Topology, installer RouteInstaller) *Router {
	return &Router{
		id:           id,
		topo:         topo,
		installer:    installer,
		lsdb:         make(map[string]*LSDBEntry),
		neighbors:    make(map[string]*NeighborEntry),
		routingTable: make(map[string]string),
	}
}

// ID returns the local RouterId.
func (r *Router) ID() string { return r.id }

// HandleHello admits or refreshes a neighbor. pkt's origin must be
// declared adjacent to self in the static topology file; otherwise the
// HELLO is logged and ignored (the topology file is authoritative for
// link existence and cost, not the wire).
func (r *Router) HandleHello(pkt *proto.Hello) {
	if pkt.Origin == r.id {
		return
	}

	cost, adjacent := r.topo.Cost(r.id, pkt.Origin)
	if !adjacent {
		logger.Debugf("Ignoring HELLO from non-adjacent origin %s", pkt.Origin)
		return
	}

	ip := net.ParseIP(pkt.AdvertisedIP)
	if ip == nil {
		logger.Warnf("HELLO from %s has unparseable advertised_ip %q", pkt.Origin, pkt.AdvertisedIP)
		return
	}

	r.mu.Lock()
	r.admitOrRefreshNeighbor(pkt.Origin, ip, cost)
	r.mu.Unlock()
}

// HandleLSA applies an inbound LSA if it is strictly newer than what is
// stored for its origin, triggering SPF and route installation on
// acceptance. Returns true if the LSA should be flooded onward.
func (r *Router) HandleLSA(pkt *proto.LSA) (accepted bool) {
	if pkt.Origin == r.id {
		return false
	}

	r.mu.Lock()
	if pkt.Sequence <= r.storedSequence(pkt.Origin) {
		r.mu.Unlock()
		return false
	}

	r.updateLSDB(pkt)
	r.runSPF()
	table := cloneTable(r.routingTable)
	r.mu.Unlock()

	r.installRoutes(table)

	return true
}

// OriginateLSA builds and applies a self-LSA from the current neighbor
// table, for the LSAEmitter to then send out. seq must already be the
// emitter's freshly-incremented counter: self-origination always
// succeeds because seq is strictly increasing.
func (r *Router) OriginateLSA(seq int, addresses []string) *proto.LSA {
	r.mu.Lock()
	links := r.neighborCostView()
	pkt := &proto.LSA{
		Type:         proto.TypeLSA,
		Origin:       r.id,
		Timestamp:    float64(time.Now().Unix()),
		Sequence:     seq,
		AdvertisedIP: firstOrEmpty(addresses),
		Addresses:    addresses,
		Links:        links,
	}

	r.updateLSDB(pkt)
	r.runSPF()
	table := cloneTable(r.routingTable)
	r.mu.Unlock()

	r.installRoutes(table)

	return pkt
}

// KnownNeighborIDs returns the neighbor table's current key set, for
// building outbound HELLOs.
func (r *Router) KnownNeighborIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.neighborIDs()
}

// NeighborIP returns the advertised IP of a known neighbor.
func (r *Router) NeighborIP(id string) (net.IP, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.isNeighbor(id)
	if !ok {
		return nil, false
	}
	return n.IP, true
}

// LSDBAddresses returns the addresses advertised by a given origin's
// LSDB entry, used to resolve install destinations.
func (r *Router) LSDBAddresses(origin string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.lsdb[origin]
	if !ok {
		return nil
	}
	return append([]string(nil), entry.Addresses...)
}

// LSDBSnapshot returns a read-only copy of every LSDB entry, for the
// operator CLI's "lsdb" command.
func (r *Router) LSDBSnapshot() []LSDBEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]LSDBEntry, 0, len(r.lsdb))
	for _, e := range r.lsdb {
		out = append(out, LSDBEntry{
			Origin:     e.Origin,
			Sequence:   e.Sequence,
			Addresses:  append([]string(nil), e.Addresses...),
			Links:      copyLinks(e.Links),
			LastUpdate: e.LastUpdate,
		})
	}
	return out
}

func cloneTable(table map[string]string) map[string]string {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

func firstOrEmpty(addrs []string) string {
	if len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}

// installRoutes resolves each (destination, next-hop) RouterId pair
// into IP addresses and asks the installer to apply them. Run outside
// r.mu: installer calls may block on syscalls and must never happen
// inside the LSDB/SPF critical section.
func (r *Router) installRoutes(table map[string]string) {
	r.InstallAll(table, nil)
}

// InstallAll pushes every (destination, next-hop) pair in table to the
// installer. progress, if non-nil, is called once per attempted install
// with (completed, total) so a caller can drive a progress bar; it is
// never called if table is empty. Individual failures are logged and
// skipped, never aborting the batch.
func (r *Router) InstallAll(table map[string]string, progress func(done, total int)) {
	if r.installer == nil {
		return
	}

	total := 0
	for _, addrs := range r.allLSDBAddresses(table) {
		total += len(addrs)
	}

	done := 0
	for dest, nextHop := range table {
		nextHopIP, ok := r.NeighborIP(nextHop)
		if !ok {
			logger.Warnf("Next-hop %s for destination %s has no known IP, skipping install", nextHop, dest)
			continue
		}

		for _, addr := range r.LSDBAddresses(dest) {
			destIP := net.ParseIP(addr)
			if destIP == nil {
				continue
			}
			if err := r.installer.Install(destIP, nextHopIP); err != nil {
				logger.Warnf("Failed to install route %s via %s: %v", addr, nextHopIP, err)
			}
			done++
			if progress != nil {
				progress(done, total)
			}
		}
	}
}

func (r *Router) allLSDBAddresses(table map[string]string) map[string][]string {
	out := make(map[string][]string, len(table))
	for dest := range table {
		out[dest] = r.LSDBAddresses(dest)
	}
	return out
}
