package thermostat_controller

import "time"

// HeatState is the output of the thermostat decision. The integer values are
// a stable wire contract: remote consumers already rely on 0/1/2, so they
// must never be reordered.
type HeatState int

const (
	Cooling HeatState = iota
	OnTarget
	Heating
)

func (s HeatState) String() string {
	switch s {
	case Cooling:
		return "COOLING"
	case Heating:
		return "HEATING"
	default:
		return "ONTARGET"
	}
}

// MissingSample is the sentinel stored for a failed sensor read. -127 °C is
// the classic one-wire disconnect reading and is far outside any temperature
// this device can encounter.
const MissingSample float64 = -127.0

// IsMissing reports whether a sample is the missing sentinel. Anything at or
// below the sentinel is treated as missing so corrupted slots fail safe too.
func IsMissing(v float64) bool {
	return v <= MissingSample
}

// DeviceMode is the top-level operating mode. Exactly one is active at a
// time and each mode owns its own route set and button behavior. Sleep is
// not a mode: the device halts and re-enters NORMAL (or PROVISIONING) at
// boot.
type DeviceMode string

const (
	ModeProvisioning DeviceMode = "PROVISIONING"
	ModeNormal       DeviceMode = "NORMAL"
)

// ThermostatConfig holds the tunable control parameters. HysteresisC never
// drops below the 0.1 °C floor; there is intentionally no upper clamp on the
// setpoint.
type ThermostatConfig struct {
	SetpointC   float64 `json:"setpoint_c"`
	HysteresisC float64 `json:"hysteresis_c"`
}

// WiFiCredentials is the persisted station configuration. An empty SSID
// means the device is unprovisioned and must boot into PROVISIONING.
type WiFiCredentials struct {
	SSID     string `json:"ssid"`
	Password string `json:"-"`
}

// Provisioned reports whether credentials have been captured.
func (c WiFiCredentials) Provisioned() bool {
	return c.SSID != ""
}

// DeviceStatus is the read-only snapshot served to remote consumers.
// TemperatureC and History entries are nil when the underlying sample is the
// missing sentinel.
type DeviceStatus struct {
	Mode         DeviceMode `json:"mode"`
	SetpointC    float64    `json:"setpoint_c"`
	HysteresisC  float64    `json:"hysteresis_c"`
	TemperatureC *float64   `json:"temperature_c"`
	HeatState    HeatState  `json:"heat_state"`
	History      []*float64 `json:"history,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DeviceEvent is a single entry in the append-only device log.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // MODE_CHANGE | SLEEP | SENSOR_FAULT | NETWORK_JOIN_FAILED | CONFIG_CHANGE | PROVISIONED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
