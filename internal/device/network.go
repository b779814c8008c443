package device

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// NMCLINetwork drives the Wi-Fi interface through NetworkManager's nmcli.
// Thin shim: the interesting behavior (bounded join, AP fallback) lives in
// the runtime.
type NMCLINetwork struct {
	iface string
}

func NewNMCLINetwork(iface string) *NMCLINetwork {
	return &NMCLINetwork{iface: iface}
}

// StartAccessPoint brings up a hotspot and returns its gateway address.
func (n *NMCLINetwork) StartAccessPoint(ssid, password string) (string, error) {
	args := []string{"device", "wifi", "hotspot", "ifname", n.iface, "ssid", ssid}
	if password != "" {
		args = append(args, "password", password)
	}
	out, err := exec.Command("nmcli", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("nmcli hotspot: %w: %s", err, strings.TrimSpace(string(out)))
	}
	// NetworkManager's shared-mode default gateway.
	return "10.42.0.1", nil
}

// Join connects to the stored network, blocking at most timeout.
func (n *NMCLINetwork) Join(ctx context.Context, ssid, password string, timeout time.Duration) error {
	joinCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	secs := int(timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	args := []string{"--wait", strconv.Itoa(secs), "device", "wifi", "connect", ssid, "ifname", n.iface}
	if password != "" {
		args = append(args, "password", password)
	}
	out, err := exec.CommandContext(joinCtx, "nmcli", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("join %q: %w: %s", ssid, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Disconnect releases the interface, tearing down hotspot or station mode.
func (n *NMCLINetwork) Disconnect() error {
	out, err := exec.Command("nmcli", "device", "disconnect", n.iface).CombinedOutput()
	if err != nil {
		return fmt.Errorf("nmcli disconnect: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
