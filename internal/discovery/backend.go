package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Backend is a discovered MPD server.
type Backend struct {
	// Name is the advertised service instance name (typically the
	// player's configured name, e.g. "moOde MPD").
	Name string

	// Hostname is the mDNS hostname (e.g., "moode.local.")
	Hostname string

	// IP is the IPv4 address (or IPv6 when no v4 address was advertised)
	IP string

	// Port is the MPD control port (typically 6600)
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the backend was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable description of the backend.
func (b *Backend) String() string {
	name := b.Name
	if name == "" {
		name = strings.TrimSuffix(b.Hostname, ".")
	}
	return fmt.Sprintf("%s at %s:%d", name, b.IP, b.Port)
}

// Addr returns the host:port dial address for the backend.
func (b *Backend) Addr() string {
	return fmt.Sprintf("%s:%d", b.IP, b.Port)
}

// GetMetadata retrieves a TXT record value by key, or returns an empty
// string if not found.
func (b *Backend) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
