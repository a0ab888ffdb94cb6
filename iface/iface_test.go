package iface

import (
	"net"
	"testing"
)

func TestBroadcastAddrSlash24(t *testing.T) {
	ip := net.ParseIP("192.168.1.42").To4()
	mask := net.CIDRMask(24, 32)

	bcast, ok := broadcastAddr(ip, mask)
	if !ok {
		t.Fatal("expected broadcast address to be computable")
	}
	if !bcast.Equal(net.ParseIP("192.168.1.255")) {
		t.Fatalf("expected 192.168.1.255, got %v", bcast)
	}
}

func TestBroadcastAddrSlash30(t *testing.T) {
	ip := net.ParseIP("10.0.0.5").To4()
	mask := net.CIDRMask(30, 32)

	bcast, ok := broadcastAddr(ip, mask)
	if !ok {
		t.Fatal("expected broadcast address to be computable")
	}
	if !bcast.Equal(net.ParseIP("10.0.0.7")) {
		t.Fatalf("expected 10.0.0.7, got %v", bcast)
	}
}

func TestBroadcastAddrSlash32(t *testing.T) {
	ip := net.ParseIP("10.0.0.5").To4()
	mask := net.CIDRMask(32, 32)

	_, ok := broadcastAddr(ip, mask)
	if ok {
		t.Fatal("expected /32 to have no broadcast address")
	}
}
