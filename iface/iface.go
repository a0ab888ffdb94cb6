// Package iface enumerates local IPv4 interfaces that expose a
// broadcast address. Go's net package, unlike Python's psutil.net_if_addrs,
// does not hand back a broadcast field directly, so we derive it from
// each address's IPNet (ip | ^mask).
package iface

import (
	"net"

	"lsrouted.dev/lsrouted/util/logger"
)

// Interface is a local IPv4 interface usable for HELLO broadcasts.
type Interface struct {
	Name      string
	Address   net.IP
	Broadcast net.IP
}

// Enumerate lists IPv4 interfaces that are up, not loopback, and have a
// computable broadcast address. Failure to enumerate is non-fatal: a
// caller left with an empty (or partial) list still has a working
// daemon as long as at least one interface remains.
func Enumerate() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []Interface
	for _, i := range ifaces {
		if i.Flags&net.FlagUp == 0 || i.Flags&net.FlagLoopback != 0 {
			continue
		}
		if i.Flags&net.FlagBroadcast == 0 {
			continue
		}

		addrs, err := i.Addrs()
		if err != nil {
			logger.Warnf("Failed to get addresses for interface %s: %v", i.Name, err)
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipnet.IP.To4()
			if ip4 == nil {
				continue
			}
			bcast, ok := broadcastAddr(ip4, ipnet.Mask)
			if !ok {
				continue
			}
			out = append(out, Interface{Name: i.Name, Address: ip4, Broadcast: bcast})
		}
	}

	return out, nil
}

// broadcastAddr computes ip | ^mask for an IPv4 address and mask. A
// /32 (or malformed) mask has no meaningful broadcast address.
func broadcastAddr(ip net.IP, mask net.IPMask) (net.IP, bool) {
	if len(mask) != net.IPv4len || len(ip) != net.IPv4len {
		return nil, false
	}
	ones, bits := mask.Size()
	if ones >= bits {
		return nil, false
	}

	bcast := make(net.IP, net.IPv4len)
	for i := range bcast {
		bcast[i] = ip[i] | ^mask[i]
	}
	return bcast, true
}
