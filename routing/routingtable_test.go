package routing

import "testing"

func TestRunSPFLoop(t *testing.T) {
	// A - B - C - D - E - F - A (a ring), A is self.
	r := &Router{
		id: "A",
		lsdb: map[string]*LSDBEntry{
			"A": {Origin: "A", Links: map[string]int{"B": 1, "F": 1}},
			"B": {Origin: "B", Links: map[string]int{"A": 1, "C": 1}},
			"C": {Origin: "C", Links: map[string]int{"B": 1, "D": 1}},
			"D": {Origin: "D", Links: map[string]int{"C": 1, "E": 1}},
			"E": {Origin: "E", Links: map[string]int{"D": 1, "F": 1}},
			"F": {Origin: "F", Links: map[string]int{"E": 1, "A": 1}},
		},
	}

	r.runSPF()

	want := map[string]string{
		"B": "B",
		"C": "B",
		"F": "F",
		"E": "F",
	}
	for dest, nextHop := range want {
		if r.routingTable[dest] != nextHop {
			t.Errorf("destination %s: expected next hop %s, got %s", dest, nextHop, r.routingTable[dest])
		}
	}

	// D is equidistant via B-C-D and F-E-D; tie-breaking on lower
	// RouterId resolves the predecessor chain through C, giving B.
	if r.routingTable["D"] != "B" {
		t.Errorf("expected tie-break to choose next hop B for D, got %s", r.routingTable["D"])
	}
}

func TestRunSPFIncompleteLSDB(t *testing.T) {
	// A - B - C, but C's own LSA hasn't arrived yet (only referenced by B).
	r := &Router{
		id: "A",
		lsdb: map[string]*LSDBEntry{
			"A": {Origin: "A", Links: map[string]int{"B": 1}},
			"B": {Origin: "B", Links: map[string]int{"A": 1, "C": 1}},
			"C": newPlaceholder("C"),
		},
	}

	r.runSPF()

	if r.routingTable["B"] != "B" {
		t.Fatalf("expected route to B via B, got %s", r.routingTable["B"])
	}
	if _, ok := r.routingTable["C"]; ok {
		t.Fatal("did not expect a route to C while only a placeholder exists")
	}
}

func TestRunSPFUnreachablePartition(t *testing.T) {
	r := &Router{
		id: "A",
		lsdb: map[string]*LSDBEntry{
			"A": {Origin: "A", Links: map[string]int{"B": 1}},
			"B": {Origin: "B", Links: map[string]int{"A": 1}},
			"X": {Origin: "X", Links: map[string]int{"Y": 1}},
			"Y": {Origin: "Y", Links: map[string]int{"X": 1}},
		},
	}

	r.runSPF()

	if _, ok := r.routingTable["X"]; ok {
		t.Fatal("expected X to be unreachable from a disconnected partition")
	}
	if _, ok := r.routingTable["Y"]; ok {
		t.Fatal("expected Y to be unreachable from a disconnected partition")
	}
	if r.routingTable["B"] != "B" {
		t.Fatalf("expected route to B via B, got %s", r.routingTable["B"])
	}
}

func TestSortedRoutesDeterministicOrder(t *testing.T) {
	table := map[string]string{
		"router3": "router1",
		"router2": "router1",
		"router5": "router4",
	}

	routes := sortedRoutesLocked(table)
	for i := 1; i < len(routes); i++ {
		if routes[i-1].Destination > routes[i].Destination {
			t.Fatalf("routes not sorted: %v", routes)
		}
	}
}
