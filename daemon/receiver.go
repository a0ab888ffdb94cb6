// Package daemon wires the control socket's inbound packet stream to
// the Router, dispatching by sniffed packet type and re-flooding
// accepted LSAs.
package daemon

import (
	"lsrouted.dev/lsrouted/lsa"
	"lsrouted.dev/lsrouted/proto"
	"lsrouted.dev/lsrouted/routing"
	"lsrouted.dev/lsrouted/sock"
	"lsrouted.dev/lsrouted/util/logger"
)

// Receiver drains a Socket's packet stream and dispatches each datagram
// to the Router, forwarding accepted LSAs via the LSAEmitter.
type Receiver struct {
	socket  sock.Socket
	router  *routing.Router
	emitter *lsa.Emitter
	stop    chan struct{}
}

// New creates a Receiver. Call Start to begin draining packets.
func New(socket sock.Socket, router *routing.Router, emitter *lsa.Emitter) *Receiver {
	return &Receiver{socket: socket, router: router, emitter: emitter, stop: make(chan struct{})}
}

// Start launches the dispatch loop in its own goroutine.
func (r *Receiver) Start() {
	go r.run()
}

// Stop halts the dispatch loop.
func (r *Receiver) Stop() {
	close(r.stop)
}

func (r *Receiver) run() {
	packets := r.socket.Subscribe()
	for {
		select {
		case <-r.stop:
			return
		case pkt, ok := <-packets:
			if !ok {
				return
			}
			r.dispatch(pkt)
		}
	}
}

func (r *Receiver) dispatch(pkt *sock.Packet) {
	kind, err := proto.Sniff(pkt.Data)
	if err != nil {
		logger.Debugf("Dropping malformed datagram from %s: %v", pkt.Addr, err)
		return
	}

	switch kind {
	case proto.TypeHello:
		hello, err := proto.DecodeHello(pkt.Data)
		if err != nil {
			logger.Debugf("Dropping malformed HELLO from %s: %v", pkt.Addr, err)
			return
		}
		r.router.HandleHello(hello)

	case proto.TypeLSA:
		l, err := proto.DecodeLSA(pkt.Data)
		if err != nil {
			logger.Debugf("Dropping malformed LSA from %s: %v", pkt.Addr, err)
			return
		}
		if r.router.HandleLSA(l) {
			r.emitter.Forward(l, l.AdvertisedIP)
		}
	}
}
