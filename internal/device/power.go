package device

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// SystemPower suspends or reboots the board through systemd. On real
// hardware HaltUntilWake does not return: execution resumes at boot after
// the wake pin's active-low transition.
type SystemPower struct{}

// HaltUntilWake arms the wake pin as a wakeup source and suspends.
func (SystemPower) HaltUntilWake(wakePin int) error {
	// The pin must be board-configured as a wakeup source (gpio-keys with
	// wakeup-source in the device tree); the pin number is recorded for the
	// log trail only.
	out, err := exec.Command("systemctl", "suspend").CombinedOutput()
	if err != nil {
		return fmt.Errorf("suspend (wake pin %s): %w: %s",
			strconv.Itoa(wakePin), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Reboot restarts the device; used after provisioning saves credentials.
func (SystemPower) Reboot() error {
	out, err := exec.Command("systemctl", "reboot").CombinedOutput()
	if err != nil {
		return fmt.Errorf("reboot: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
