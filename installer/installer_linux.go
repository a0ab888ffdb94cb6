//go:build linux

package installer

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// Netlink installs routes into the Linux kernel's forwarding table via
// RTNETLINK, replacing any existing route to the same destination.
type Netlink struct{}

// NewNetlink creates a Netlink route installer.
func NewNetlink() *Netlink { return &Netlink{} }

// Install replaces the kernel route to destination via nextHop. A /32
// host route is used: this daemon installs per-router routes, not
// subnet aggregates.
func (Netlink) Install(destination, nextHop net.IP) error {
	dst := &net.IPNet{IP: destination, Mask: net.CIDRMask(32, 32)}
	route := &netlink.Route{
		Dst: dst,
		Gw:  nextHop,
	}

	if err := netlink.RouteReplace(route); err != nil {
		return fmt.Errorf("netlink route replace %s via %s: %w", destination, nextHop, err)
	}
	return nil
}
