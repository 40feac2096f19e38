package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type MPD advertises
	ServiceType = "_mpd._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for backend discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is MPD's default control port
	DefaultPort = 6600
)

// Scanner handles mDNS backend discovery
type Scanner struct {
	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForBackends discovers all MPD servers on the local network
// Returns a list of discovered backends or an error
func (s *Scanner) ScanForBackends() ([]*Backend, error) {
	return s.ScanForBackendsWithContext(context.Background())
}

// ScanForBackendsWithContext discovers backends with a custom context
func (s *Scanner) ScanForBackendsWithContext(ctx context.Context) ([]*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	backends := make([]*Backend, 0)
	collected := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(collected)
		for entry := range entries {
			if backend := parseServiceEntry(entry); backend != nil {
				backends = append(backends, backend)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the timeout, then for the collector to drain the channel.
	<-ctx.Done()
	<-collected

	return backends, nil
}

// FindFirst waits for the first MPD server to answer. Used when the
// config names no backend host.
func (s *Scanner) FindFirst(ctx context.Context) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Backend, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if backend := parseServiceEntry(entry); backend != nil {
				select {
				case found <- backend:
					cancel()
				default:
				}
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case backend := <-found:
		return backend, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("no MPD server found within timeout")
	}
}

// parseServiceEntry converts a zeroconf service entry to a Backend
// Returns nil for entries with no usable address
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Backend {
	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Backend{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForBackends is a convenience function to scan with a custom timeout
func ScanForBackends(timeout time.Duration) ([]*Backend, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForBackends()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Backend, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForBackends()
}
