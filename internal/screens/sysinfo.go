package screens

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/aldenhart/quadrant/internal/coordinator"
	"github.com/aldenhart/quadrant/internal/display"
	"github.com/aldenhart/quadrant/internal/state"
	"github.com/aldenhart/quadrant/internal/version"
)

var processStart = time.Now()

// SystemInfo shows host identity and daemon health at a glance.
type SystemInfo struct {
	backendAddr string
}

// NewSystemInfo returns the system info screen. backendAddr is the
// configured player address, shown so a misconfigured host is visible
// from the panel itself.
func NewSystemInfo(backendAddr string) *SystemInfo {
	return &SystemInfo{backendAddr: backendAddr}
}

func (si *SystemInfo) Mode() coordinator.Mode { return coordinator.ModeSystemInfo }

func (si *SystemInfo) Render(cv *display.Canvas, _ state.PlaybackState, now time.Time) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	cv.Text(2, 10, host)
	cv.Text(2, 22, "ip "+localAddr())
	cv.Text(2, 34, "mpd "+si.backendAddr)
	cv.Text(2, 46, "up "+formatUptime(now.Sub(processStart)))
	cv.Text(2, 58, version.Version)
}

// localAddr returns the first non-loopback IPv4 address, or "-" when the
// host has none.
func localAddr() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "-"
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "-"
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
