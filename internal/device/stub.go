//go:build !linux

package device

import (
	"errors"
)

// OpenHardware has no real implementation off Linux; development on other
// platforms uses the fakes.
func OpenHardware(chipName string, pins PinConfig, iface string) (Hardware, error) {
	return Hardware{}, errors.New("gpio hardware requires linux")
}
