//go:build !linux

package installer

import "net"

// Netlink is a no-op stand-in on platforms without RTNETLINK.
type Netlink struct{}

// NewNetlink creates a no-op route installer on unsupported platforms.
func NewNetlink() *Netlink { return &Netlink{} }

// Install does nothing on non-Linux platforms.
func (Netlink) Install(destination, nextHop net.IP) error { return nil }
