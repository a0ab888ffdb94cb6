// Package topology loads the static, undirected cost graph describing
// which routers are adjacent and at what cost. It is the ground truth
// for neighbor admission: a HELLO from an origin not adjacent here is
// logged and ignored regardless of what the wire says.
package topology

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Topology is an undirected weighted adjacency graph loaded from the
// working-directory CSV file.
type Topology struct {
	edges map[string]map[string]int
}

// Load reads and parses a topology CSV file with header
// "Origem,Destino,Custo". Each data row declares one undirected edge;
// "Custo" is a positive integer or the literal "-" meaning cost 1.
func Load(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topology file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (*Topology, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read topology header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, want := range []string{"Origem", "Destino", "Custo"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("topology header missing column %q", want)
		}
	}

	t := &Topology{edges: make(map[string]map[string]int)}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read topology row: %w", err)
		}

		origin := row[cols["Origem"]]
		dest := row[cols["Destino"]]
		costField := row[cols["Custo"]]

		cost := 1
		if costField != "-" {
			if _, err := fmt.Sscanf(costField, "%d", &cost); err != nil {
				return nil, fmt.Errorf("parse cost %q for edge %s-%s: %w", costField, origin, dest, err)
			}
		}

		t.addEdge(origin, dest, cost)
	}

	return t, nil
}

func (t *Topology) addEdge(a, b string, cost int) {
	if t.edges[a] == nil {
		t.edges[a] = make(map[string]int)
	}
	if t.edges[b] == nil {
		t.edges[b] = make(map[string]int)
	}
	t.edges[a][b] = cost
	t.edges[b][a] = cost
}

// Cost returns the static cost of the edge (a, b) and whether it exists.
func (t *Topology) Cost(a, b string) (int, bool) {
	neighbors, ok := t.edges[a]
	if !ok {
		return 0, false
	}
	cost, ok := neighbors[b]
	return cost, ok
}

// IsAdjacent reports whether a and b are declared adjacent in the topology.
func (t *Topology) IsAdjacent(a, b string) bool {
	_, ok := t.Cost(a, b)
	return ok
}

// Neighbors returns the set of routers declared adjacent to id.
func (t *Topology) Neighbors(id string) map[string]int {
	neighbors := t.edges[id]
	out := make(map[string]int, len(neighbors))
	for n, c := range neighbors {
		out[n] = c
	}
	return out
}
