package routing

import (
	"net"
	"os"
	"testing"

	"lsrouted.dev/lsrouted/proto"
	"lsrouted.dev/lsrouted/topology"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "topology-*.csv")
	if err != nil {
		t.Fatalf("create temp topology file: %v", err)
	}
	if _, err := f.WriteString(contents); err != nil {
		t.Fatalf("write temp topology file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp topology file: %v", err)
	}
	return f.Name()
}

func mustTopology(t *testing.T, csv string) *topology.Topology {
	t.Helper()
	topo, err := topology.Load(writeTempCSV(t, csv))
	if err != nil {
		t.Fatalf("load topology: %v", err)
	}
	return topo
}

func lsa(origin string, seq int, ip string, links map[string]int) *proto.LSA {
	return &proto.LSA{
		Type:         proto.TypeLSA,
		Origin:       origin,
		Sequence:     seq,
		AdvertisedIP: ip,
		Addresses:    []string{ip},
		Links:        links,
	}
}

func hello(origin, ip string) *proto.Hello {
	return &proto.Hello{Type: proto.TypeHello, Origin: origin, AdvertisedIP: ip}
}

func TestThreeRouterLine(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,B,1\nB,C,1\n")

	a := New("A", topo, nil)
	a.HandleHello(hello("B", "10.0.0.2"))
	if !a.HandleLSA(lsa("B", 1, "10.0.0.2", map[string]int{"A": 1, "C": 1})) {
		t.Fatal("expected B's LSA to be accepted at A")
	}
	if !a.HandleLSA(lsa("C", 1, "10.0.0.3", map[string]int{"B": 1})) {
		t.Fatal("expected C's LSA to be accepted at A")
	}

	routes := a.SortedRoutes()
	assertRoutes(t, routes, map[string]string{"B": "B", "C": "B"})

	c := New("C", topo, nil)
	c.HandleHello(hello("B", "10.0.0.2"))
	if !c.HandleLSA(lsa("B", 1, "10.0.0.2", map[string]int{"A": 1, "C": 1})) {
		t.Fatal("expected B's LSA to be accepted at C")
	}
	if !c.HandleLSA(lsa("A", 1, "10.0.0.1", map[string]int{"B": 1})) {
		t.Fatal("expected A's LSA to be accepted at C")
	}

	routesC := c.SortedRoutes()
	assertRoutes(t, routesC, map[string]string{"A": "B", "B": "B"})
}

func TestTriangleAsymmetricCosts(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,B,1\nB,C,1\nA,C,5\n")

	a := New("A", topo, nil)
	a.HandleHello(hello("B", "10.0.0.2"))
	a.HandleHello(hello("C", "10.0.0.3"))
	a.HandleLSA(lsa("B", 1, "10.0.0.2", map[string]int{"A": 1, "C": 1}))
	a.HandleLSA(lsa("C", 1, "10.0.0.3", map[string]int{"A": 5, "B": 1}))

	routes := a.SortedRoutes()
	assertRoutes(t, routes, map[string]string{"B": "B", "C": "B"})
}

func TestSequenceNumberReplay(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,X,1\n")
	a := New("A", topo, nil)
	a.HandleHello(hello("X", "10.0.0.9"))

	if !a.HandleLSA(lsa("X", 5, "10.0.0.9", map[string]int{"A": 1})) {
		t.Fatal("expected seq 5 to be accepted")
	}
	if a.HandleLSA(lsa("X", 4, "10.0.0.9", map[string]int{"A": 1})) {
		t.Fatal("expected seq 4 to be rejected after seq 5 was accepted")
	}

	found := false
	for _, e := range a.LSDBSnapshot() {
		if e.Origin == "X" {
			found = true
			if e.Sequence != 5 {
				t.Fatalf("expected stored sequence 5, got %d", e.Sequence)
			}
		}
	}
	if !found {
		t.Fatal("expected an LSDB entry for X")
	}
}

func TestUnknownNeighborFromHello(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,B,1\n")
	a := New("A", topo, nil)

	a.HandleHello(hello("Z", "10.0.0.99"))

	if _, ok := a.NeighborIP("Z"); ok {
		t.Fatal("expected Z to not be admitted as a neighbor")
	}
	if len(a.Neighbors()) != 0 {
		t.Fatalf("expected no neighbors, got %v", a.Neighbors())
	}
}

func TestPlaceholderDiscovery(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,B,1\nB,C,1\n")
	a := New("A", topo, nil)
	a.HandleHello(hello("B", "10.0.0.2"))

	a.HandleLSA(lsa("B", 1, "10.0.0.2", map[string]int{"A": 1, "C": 1}))

	var placeholder *LSDBEntry
	for _, e := range a.LSDBSnapshot() {
		if e.Origin == "C" {
			entry := e
			placeholder = &entry
		}
	}
	if placeholder == nil {
		t.Fatal("expected a placeholder LSDB entry for C")
	}
	if placeholder.Sequence != PlaceholderSequence {
		t.Fatalf("expected placeholder sequence, got %d", placeholder.Sequence)
	}

	routes := routeMap(a.SortedRoutes())
	if _, ok := routes["B"]; !ok {
		t.Fatal("expected a route to B")
	}
	if _, ok := routes["C"]; ok {
		t.Fatal("did not expect a route to C yet (placeholder only)")
	}
}

func TestLSAIdempotence(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,B,1\n")
	a := New("A", topo, nil)
	a.HandleHello(hello("B", "10.0.0.2"))

	pkt := lsa("B", 3, "10.0.0.2", map[string]int{"A": 1})
	a.HandleLSA(pkt)
	first := routeMap(a.SortedRoutes())

	if a.HandleLSA(pkt) {
		t.Fatal("expected the same LSA delivered twice to not re-accept")
	}

	assertRoutes(t, a.SortedRoutes(), first)
}

func TestInstallerInvokedOnAcceptedLSA(t *testing.T) {
	topo := mustTopology(t, "Origem,Destino,Custo\nA,B,1\n")
	installer := &fakeInstaller{}
	a := New("A", topo, installer)
	a.HandleHello(hello("B", "10.0.0.2"))

	a.HandleLSA(lsa("B", 1, "10.0.0.2", map[string]int{"A": 1}))

	if len(installer.calls) == 0 {
		t.Fatal("expected at least one Install call after accepted LSA")
	}
}

type fakeInstaller struct {
	calls []installCall
}

type installCall struct {
	dest, nextHop string
}

func (f *fakeInstaller) Install(destination, nextHop net.IP) error {
	f.calls = append(f.calls, installCall{destination.String(), nextHop.String()})
	return nil
}

func assertRoutes(t *testing.T, got []RouteEntry, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d routes, got %d: %v", len(want), len(got), got)
	}
	for _, r := range got {
		if want[r.Destination] != r.NextHop {
			t.Fatalf("route %s: expected next hop %s, got %s", r.Destination, want[r.Destination], r.NextHop)
		}
	}
}

func routeMap(routes []RouteEntry) map[string]string {
	m := make(map[string]string, len(routes))
	for _, r := range routes {
		m[r.Destination] = r.NextHop
	}
	return m
}
