package service

import "time"

// ConfigParams carries a partial thermostat config update. Nil fields are
// left unchanged. Source tags the origin ("api" or "button") for the event
// log.
type ConfigParams struct {
	SetpointC   *float64
	HysteresisC *float64
	Source      string
}

// LogFilter selects device events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "MODE_CHANGE", "SLEEP", "SENSOR_FAULT", "NETWORK_JOIN_FAILED", "CONFIG_CHANGE", "PROVISIONED"
}

// Options are the runtime tuning knobs, normally loaded from config.yml.
type Options struct {
	SampleInterval time.Duration // temperature sampling cadence
	DebounceWindow time.Duration // adjust-button debounce
	LongPressAfter time.Duration // mode-button hold threshold
	AwakeBudget    time.Duration // time in NORMAL before sleeping
	JoinTimeout    time.Duration // bounded station join at boot
	SetpointStepC  float64       // per button press

	APSSID     string // provisioning hotspot name
	APPassword string // empty means an open hotspot
	WakePin    int    // mode button pin, armed as wake source
}

// DefaultOptions matches the reference device configuration.
func DefaultOptions() Options {
	return Options{
		SampleInterval: time.Second,
		DebounceWindow: 150 * time.Millisecond,
		LongPressAfter: 10 * time.Second,
		AwakeBudget:    time.Minute,
		JoinTimeout:    20 * time.Second,
		SetpointStepC:  0.5,
		APSSID:         "thermostat-setup",
	}
}

// Device event types.
const (
	EventModeChange        = "MODE_CHANGE"
	EventSleep             = "SLEEP"
	EventSensorFault       = "SENSOR_FAULT"
	EventNetworkJoinFailed = "NETWORK_JOIN_FAILED"
	EventConfigChange      = "CONFIG_CHANGE"
	EventProvisioned       = "PROVISIONED"
)
