// Package lsa implements the LSAEmitter: periodic self-origination of
// link-state advertisements, plus split-horizon forwarding of accepted
// LSAs originated elsewhere.
package lsa

import (
	"net"
	"sync"
	"time"

	"lsrouted.dev/lsrouted/config"
	"lsrouted.dev/lsrouted/proto"
	"lsrouted.dev/lsrouted/routing"
	"lsrouted.dev/lsrouted/sock"
	"lsrouted.dev/lsrouted/util/logger"
)

// Emitter owns the local monotonic sequence counter and periodically
// originates a fresh self-LSA, unicasting it to every known neighbor.
// It also forwards LSAs accepted from other origins, skipping one
// neighbor identified by IP (split horizon).
type Emitter struct {
	router *routing.Router
	socket sock.Socket
	port   int

	mu  sync.Mutex
	seq int

	stop chan struct{}
}

// New creates an LSAEmitter. Call Start to begin originating LSAs.
func New(router *routing.Router, socket sock.Socket, port int) *Emitter {
	return &Emitter{router: router, socket: socket, port: port, stop: make(chan struct{})}
}

// Start launches the periodic self-origination loop at config.LSAInterval.
// addresses is the set of locally-advertised IPs included in every
// self-originated LSA.
func (e *Emitter) Start(addresses []string) {
	go e.run(addresses)
}

// Stop halts the periodic origination loop.
func (e *Emitter) Stop() {
	close(e.stop)
}

func (e *Emitter) run(addresses []string) {
	ticker := time.NewTicker(config.LSAInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.originate(addresses)
		}
	}
}

func (e *Emitter) originate(addresses []string) {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	pkt := e.router.OriginateLSA(seq, addresses)
	e.unicastToNeighbors(pkt, "")
}

// Forward floods an already-accepted LSA to every neighbor except the
// one whose IP equals exceptIP (the daemon passes the LSA's
// advertised_ip, which is the origin's address, not necessarily that
// of the neighbor the packet arrived from). It never touches the
// emitter's own sequence counter: only self-origination increments seq.
func (e *Emitter) Forward(pkt *proto.LSA, exceptIP string) {
	e.unicastToNeighbors(pkt, exceptIP)
}

func (e *Emitter) unicastToNeighbors(pkt *proto.LSA, exceptIP string) {
	data, err := proto.EncodeLSA(pkt)
	if err != nil {
		logger.Warnf("Failed to encode LSA from %s: %v", pkt.Origin, err)
		return
	}

	for _, id := range e.router.KnownNeighborIDs() {
		ip, ok := e.router.NeighborIP(id)
		if !ok {
			continue
		}
		if ip.String() == exceptIP {
			continue
		}

		addr := &net.UDPAddr{IP: ip, Port: e.port}
		if err := e.socket.SendTo(addr, data); err != nil {
			logger.Warnf("Failed to forward LSA from %s to %s: %v", pkt.Origin, id, err)
		}
	}
}
