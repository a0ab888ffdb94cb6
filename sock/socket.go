// Package sock manages the UDP control socket. There is one socket per
// daemon instance; HELLO and LSA traffic, broadcast and unicast alike,
// all flow through it.
package sock

import (
	"errors"
	"net"
	"net/netip"

	"golang.org/x/sys/unix"

	"lsrouted.dev/lsrouted/config"
	"lsrouted.dev/lsrouted/util/assert"
	"lsrouted.dev/lsrouted/util/logger"
	"lsrouted.dev/lsrouted/util/observer"
)

// Packet is a raw datagram delivered by the read loop, before any
// HELLO/LSA parsing happens.
type Packet struct {
	Addr *net.UDPAddr
	Data []byte
}

// Socket is the control-plane UDP socket: one conn for both broadcast
// HELLOs and unicast LSAs, consistent with the resource model's note
// that a single transmit socket may be shared across emitters because
// sendto is atomic at the datagram level.
type Socket interface {
	// GetLocalAddress returns the local address of the UDP socket.
	GetLocalAddress() (netip.AddrPort, error)

	// MustGetLocalAddress panics if the socket is not initialized.
	MustGetLocalAddress() netip.AddrPort

	// SendTo sends data to addr. Open() must be called first.
	SendTo(addr *net.UDPAddr, data []byte) error

	// Open binds a UDP socket to (ip, port) and enables SO_BROADCAST so
	// HELLO beacons can reach an interface's broadcast address.
	Open(ip net.IP, port int) error

	// Close closes the UDP socket. Packet observers are not cleared:
	// they keep receiving from any future socket opened on this value.
	Close() error

	// Subscribe registers to receive every packet read off the socket.
	Subscribe() chan *Packet
}

type udpSocket struct {
	conn             *net.UDPConn
	packetObservable *observer.Observable[*Packet]
}

// NewUDPSocket creates a Socket. Call Open before sending or receiving.
func NewUDPSocket() *udpSocket {
	return &udpSocket{
		packetObservable: observer.NewObservable[*Packet](config.SocketReceiveBufferSize),
	}
}

func (s *udpSocket) GetLocalAddress() (netip.AddrPort, error) {
	if s.conn == nil {
		return netip.AddrPort{}, errors.New("UDP socket is not initialized")
	}
	return s.conn.LocalAddr().(*net.UDPAddr).AddrPort(), nil
}

func (s *udpSocket) MustGetLocalAddress() netip.AddrPort {
	addr, err := s.GetLocalAddress()
	assert.IsNil(err)
	return addr
}

func (s *udpSocket) Subscribe() chan *Packet {
	return s.packetObservable.Subscribe()
}

func (s *udpSocket) Open(ip net.IP, port int) error {
	assert.Assert(s.conn == nil, "UDP socket is already initialized. Call Close() before calling Open() again.")

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: ip, Port: port})
	if err != nil {
		return err
	}

	if err := enableBroadcast(conn); err != nil {
		logger.Warnf("Failed to enable SO_BROADCAST on control socket: %v", err)
	}

	s.conn = conn

	go s.readLoop()

	return nil
}

// enableBroadcast promotes the socket to broadcast-capable via a raw
// SO_BROADCAST setsockopt, mirroring the reference daemon's explicit
// socket.setsockopt(SOL_SOCKET, SO_BROADCAST, 1) call.
func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

func (s *udpSocket) readLoop() {
	for {
		buffer := make([]byte, config.MaxDatagramBytes)
		n, addr, err := s.conn.ReadFromUDP(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				// Socket is closed, exit the loop
				return
			}

			logger.Warnf("Failed to read from UDP socket: %v", err)
			continue
		}

		s.packetObservable.NotifyObservers(&Packet{addr, buffer[:n]})
	}
}

func (s *udpSocket) SendTo(addr *net.UDPAddr, data []byte) error {
	assert.IsNotNil(s.conn, "UDP socket is not initialized.")

	_, err := s.conn.WriteToUDP(data, addr)
	if err != nil {
		return err
	}

	return nil
}

func (s *udpSocket) Close() error {
	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	if err != nil {
		return err
	}

	s.conn = nil

	return nil
}
