package routing

import (
	"time"

	"lsrouted.dev/lsrouted/proto"
)

// updateLSDB applies an LSA to the LSDB. Returns true if it caused a
// mutation (the packet was strictly newer than whatever was stored).
// Caller must hold r.mu; SPF runs in the same critical section as the
// update, but the resulting sends happen after this returns: never
// lock across socket sends.
func (r *Router) updateLSDB(pkt *proto.LSA) bool {
	stored, exists := r.lsdb[pkt.Origin]
	if exists && pkt.Sequence <= stored.Sequence {
		return false
	}

	r.lsdb[pkt.Origin] = &LSDBEntry{
		Origin:     pkt.Origin,
		Sequence:   pkt.Sequence,
		Addresses:  append([]string(nil), pkt.Addresses...),
		Links:      copyLinks(pkt.Links),
		LastUpdate: time.Now(),
	}

	for neighbor := range pkt.Links {
		if _, known := r.lsdb[neighbor]; !known {
			r.lsdb[neighbor] = newPlaceholder(neighbor)
		}
	}

	return true
}

func copyLinks(links map[string]int) map[string]int {
	out := make(map[string]int, len(links))
	for k, v := range links {
		out[k] = v
	}
	return out
}

// storedSequence returns the sequence number for origin, treating an
// absent entry as PlaceholderSequence.
func (r *Router) storedSequence(origin string) int {
	entry, ok := r.lsdb[origin]
	if !ok {
		return PlaceholderSequence
	}
	return entry.Sequence
}
