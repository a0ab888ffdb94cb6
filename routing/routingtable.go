package routing

import (
	"container/heap"
	"math"
	"sort"
)

// spfNode is one entry in the Dijkstra priority queue: a candidate
// RouterId with its current best known distance from self and the
// predecessor that achieved it.
type spfNode struct {
	id      string
	dist    int
	pred    string
	hasPred bool
	index   int
}

type spfQueue []*spfNode

func (q spfQueue) Len() int { return len(q) }

func (q spfQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }

func (q spfQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *spfQueue) Push(x any) {
	node := x.(*spfNode)
	node.index = len(*q)
	*q = append(*q, node)
}

func (q *spfQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// runSPF computes shortest paths from self over the LSDB graph and
// derives the RoutingTable. Nodes are the LSDB keys (placeholders
// included, so paths may pass through them, but a placeholder never
// becomes a destination); edges are each origin's Links map. The graph
// is undirected in intent but stored asymmetrically, so an edge
// surfaces as soon as either side reports it: an origin's own report
// gives the cost of its outgoing arc, and the other end's report is
// used only when the origin does not list that neighbor itself.
//
// Caller must hold r.mu.
func (r *Router) runSPF() {
	dist := make(map[string]int, len(r.lsdb))
	pred := make(map[string]string, len(r.lsdb))
	hasPred := make(map[string]bool, len(r.lsdb))

	nodes := make(map[string]*spfNode, len(r.lsdb))
	queue := make(spfQueue, 0, len(r.lsdb))
	for id := range r.lsdb {
		d := math.MaxInt
		if id == r.id {
			d = 0
		}
		n := &spfNode{id: id, dist: d}
		nodes[id] = n
		queue = append(queue, n)
		dist[id] = d
	}
	heap.Init(&queue)

	adj := make(map[string]map[string]int, len(r.lsdb))
	for id := range r.lsdb {
		adj[id] = make(map[string]int)
	}
	for id, entry := range r.lsdb {
		for neighbor, cost := range entry.Links {
			adj[id][neighbor] = cost
			if back, ok := r.lsdb[neighbor]; ok {
				if _, reported := back.Links[id]; !reported {
					adj[neighbor][id] = cost
				}
			}
		}
	}

	for queue.Len() > 0 {
		u := heap.Pop(&queue).(*spfNode)
		if u.dist == math.MaxInt {
			break // no finite-distance candidate remains
		}

		for neighbor, cost := range adj[u.id] {
			v, ok := nodes[neighbor]
			if !ok {
				continue // referenced but not (yet) a node in this SPF run
			}

			candidate := u.dist + cost
			if candidate < v.dist {
				v.dist = candidate
				v.pred = u.id
				v.hasPred = true
				dist[neighbor] = candidate
				pred[neighbor] = u.id
				hasPred[neighbor] = true
				heap.Fix(&queue, v.index)
			} else if candidate == v.dist && v.hasPred && u.id < v.pred {
				// Tie-break on equal cost: lower RouterId wins, keeping
				// SPF deterministic regardless of LSDB convergence order.
				v.pred = u.id
				pred[neighbor] = u.id
			}
		}
	}

	table := deriveNextHops(r.id, dist, pred, hasPred)
	for dest := range table {
		if r.lsdb[dest].Sequence == PlaceholderSequence {
			delete(table, dest) // no LSA from dest yet
		}
	}
	r.routingTable = table
}

// deriveNextHops walks each destination's predecessor chain back to
// self to find the next-hop. This differs from a single-phase Dijkstra
// that short-circuits the next-hop during relaxation.
func deriveNextHops(self string, dist map[string]int, pred map[string]string, hasPred map[string]bool) map[string]string {
	table := make(map[string]string)

	for dest, d := range dist {
		if dest == self || d == math.MaxInt {
			continue
		}

		cur := dest
		nextHop := ""
		reachable := true
		for {
			if !hasPred[cur] {
				reachable = false
				break
			}
			if pred[cur] == self {
				nextHop = cur
				break
			}
			cur = pred[cur]
		}

		if reachable && nextHop != "" {
			table[dest] = nextHop
		}
	}

	return table
}

// SortedRoutes returns the routing table as a slice sorted by
// destination RouterId, the deterministic iteration order required by
// the "recompute on update" scenario.
func (r *Router) SortedRoutes() []RouteEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedRoutesLocked(r.routingTable)
}

func sortedRoutesLocked(table map[string]string) []RouteEntry {
	routes := make([]RouteEntry, 0, len(table))
	for dest, nextHop := range table {
		routes = append(routes, RouteEntry{Destination: dest, NextHop: nextHop})
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Destination < routes[j].Destination
	})
	return routes
}
