// Package installer provides RouteInstaller implementations that push
// computed next-hops into the host's forwarding table.
package installer

import "net"

// Noop discards every install request. Used when route installation is
// disabled (config.InstallRoutesEnabled is false), or on platforms with
// no installer implementation.
type Noop struct{}

// Install implements routing.RouteInstaller by doing nothing.
func (Noop) Install(destination, nextHop net.IP) error { return nil }
