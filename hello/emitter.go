// Package hello implements the HelloEmitter: one periodic broadcaster
// per broadcast-capable interface, refreshing the neighbor table on
// every tick's worth of replies it provokes elsewhere.
package hello

import (
	"net"
	"time"

	"lsrouted.dev/lsrouted/config"
	"lsrouted.dev/lsrouted/iface"
	"lsrouted.dev/lsrouted/proto"
	"lsrouted.dev/lsrouted/routing"
	"lsrouted.dev/lsrouted/sock"
	"lsrouted.dev/lsrouted/util/logger"
)

// Emitter owns one goroutine per broadcast-capable interface, each
// ticking at config.HelloInterval.
type Emitter struct {
	router *routing.Router
	socket sock.Socket
	port   int
	stop   chan struct{}
}

// New creates a HelloEmitter. Call Start to launch one goroutine per
// interface in ifaces.
func New(router *routing.Router, socket sock.Socket, port int) *Emitter {
	return &Emitter{router: router, socket: socket, port: port, stop: make(chan struct{})}
}

// Start launches one ticking goroutine per broadcast-capable
// interface. Send failures are logged and never terminate the
// emitter; the next tick proceeds regardless.
func (e *Emitter) Start(ifaces []iface.Interface) {
	for _, i := range ifaces {
		go e.run(i)
	}
}

// Stop halts every running interface goroutine. The daemon calls this
// before closing the receive socket on shutdown, so no goroutine logs
// a spurious "socket closed" send error.
func (e *Emitter) Stop() {
	close(e.stop)
}

func (e *Emitter) run(i iface.Interface) {
	ticker := time.NewTicker(config.HelloInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.tick(i)
		}
	}
}

func (e *Emitter) tick(i iface.Interface) {
	pkt := &proto.Hello{
		Type:           proto.TypeHello,
		Origin:         e.router.ID(),
		Timestamp:      float64(time.Now().Unix()),
		AdvertisedIP:   i.Address.String(),
		KnownNeighbors: e.router.KnownNeighborIDs(),
	}

	data, err := proto.EncodeHello(pkt)
	if err != nil {
		logger.Warnf("Failed to encode HELLO: %v", err)
		return
	}

	addr := &net.UDPAddr{IP: i.Broadcast, Port: e.port}
	if err := e.socket.SendTo(addr, data); err != nil {
		logger.Warnf("Failed to send HELLO on %s: %v", i.Name, err)
	}
}
