package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "backend with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "moOde MPD"},
				HostName:      "moode.local.",
				Port:          6600,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				Text:          []string{"version=0.23"},
			},
			wantIP:   "192.168.1.50",
			wantPort: 6600,
		},
		{
			name: "backend with custom port",
			entry: &zeroconf.ServiceEntry{
				HostName: "volumio.local",
				Port:     6601,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantIP:   "10.0.0.5",
			wantPort: 6601,
		},
		{
			name: "no port advertised defaults to 6600",
			entry: &zeroconf.ServiceEntry{
				HostName: "music.local",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantIP:   "172.16.0.1",
			wantPort: 6600,
		},
		{
			name: "IPv6 fallback",
			entry: &zeroconf.ServiceEntry{
				HostName: "music.local",
				Port:     6600,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 6600,
		},
		{
			name: "no usable address",
			entry: &zeroconf.ServiceEntry{
				HostName: "music.local",
				Port:     6600,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if backend != nil {
					t.Fatalf("parseServiceEntry() = %+v, want nil", backend)
				}
				return
			}
			if backend == nil {
				t.Fatal("parseServiceEntry() = nil, want backend")
			}
			if backend.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", backend.IP, tt.wantIP)
			}
			if backend.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", backend.Port, tt.wantPort)
			}
			if backend.DiscoveredAt.IsZero() {
				t.Error("DiscoveredAt not set")
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "moode.local.",
		Port:     6600,
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
		Text:     []string{"version=0.23.5", "flag"},
	}

	backend := parseServiceEntry(entry)
	if backend == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if got := backend.GetMetadata("version"); got != "0.23.5" {
		t.Errorf("GetMetadata(version) = %q, want 0.23.5", got)
	}
	if _, ok := backend.Metadata["flag"]; !ok {
		t.Error("bare TXT key dropped")
	}
	if got := backend.GetMetadata("absent"); got != "" {
		t.Errorf("GetMetadata(absent) = %q, want empty", got)
	}
}

func TestBackendAddr(t *testing.T) {
	b := &Backend{IP: "192.168.1.50", Port: 6600}
	if got := b.Addr(); got != "192.168.1.50:6600" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestBackendString(t *testing.T) {
	b := &Backend{Name: "moOde MPD", Hostname: "moode.local.", IP: "192.168.1.50", Port: 6600}
	if got := b.String(); got != "moOde MPD at 192.168.1.50:6600" {
		t.Errorf("String() = %q", got)
	}

	// Without an instance name the hostname stands in.
	b = &Backend{Hostname: "moode.local.", IP: "192.168.1.50", Port: 6600}
	if got := b.String(); got != "moode.local at 192.168.1.50:6600" {
		t.Errorf("String() without name = %q", got)
	}
}

func TestNewScannerDefaults(t *testing.T) {
	s := NewScanner()
	if s.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}
