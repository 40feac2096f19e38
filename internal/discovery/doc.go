// Package discovery locates MPD backends on the local network via mDNS.
//
// MPD advertises itself as "_mpd._tcp" when built with zeroconf support
// (both Volumio and moOde images ship it that way). Browsing that service
// type yields the backends reachable on the segment; the daemon uses the
// first hit when its config names no host, and the scan subcommand lists
// all of them.
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Backends must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can
// run simultaneously without interference.
package discovery
