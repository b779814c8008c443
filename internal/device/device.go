// Package device abstracts the thermostat's hardware collaborators: buttons,
// status LEDs, the temperature sensor, the Wi-Fi interface and power
// control. Real implementations exist for Linux boards; fakes allow the
// runtime to be exercised without hardware.
package device

import (
	"context"
	"time"

	"thermostat_controller"
)

// ButtonSample is one poll of the three input buttons, already inverted from
// the raw active-low levels: true means pressed.
type ButtonSample struct {
	Up   bool
	Down bool
	Mode bool
}

// Buttons reads the input buttons.
type Buttons interface {
	Read() (ButtonSample, error)
	Close() error
}

// LEDs renders the current heat state. Pure output, driven every cycle.
type LEDs interface {
	SetHeatState(s thermostat_controller.HeatState) error
	Close() error
}

// Sensor reads the temperature in °C. An error means the probe faulted or is
// disconnected; the runtime maps that to the missing sample sentinel.
type Sensor interface {
	Read() (float64, error)
	Close() error
}

// Network brings the Wi-Fi interface up in either access-point or station
// role. Join blocks up to timeout.
type Network interface {
	StartAccessPoint(ssid, password string) (string, error)
	Join(ctx context.Context, ssid, password string, timeout time.Duration) error
	Disconnect() error
}

// Power controls the device's power state. HaltUntilWake only returns via
// reboot on real hardware; fakes return so the loop can be tested.
type Power interface {
	HaltUntilWake(wakePin int) error
	Reboot() error
}

// Hardware bundles all collaborators for wiring.
type Hardware struct {
	Buttons Buttons
	LEDs    LEDs
	Sensor  Sensor
	Network Network
	Power   Power
}

// PinConfig is the GPIO assignment (BCM numbering).
type PinConfig struct {
	ButtonUp   int
	ButtonDown int
	ButtonMode int
	LEDHeat    int
	LEDCool    int
	SensorData int
}
