// Package control holds the pure control and timing logic of the thermostat.
// Nothing in here touches hardware, storage, or the wall clock: time always
// arrives as a time.Time parameter so every component can be driven
// deterministically from tests.
package control

import (
	"thermostat_controller"
)

// Decide maps the latest temperature sample onto a heat state using a
// symmetric deadband around the setpoint. A missing sample fails safe to
// OnTarget so a dead sensor can never latch heating or cooling on.
func Decide(tempC, setpointC, hysteresisC float64) thermostat_controller.HeatState {
	if thermostat_controller.IsMissing(tempC) {
		return thermostat_controller.OnTarget
	}
	half := hysteresisC / 2
	switch {
	case tempC < setpointC-half:
		return thermostat_controller.Heating
	case tempC > setpointC+half:
		return thermostat_controller.Cooling
	default:
		return thermostat_controller.OnTarget
	}
}

// MinHysteresisC is the floor applied to every hysteresis mutation. A zero
// band would make the relay chatter on sensor noise.
const MinHysteresisC = 0.1

// ClampHysteresis applies the floor. Out-of-range values are corrected, not
// rejected.
func ClampHysteresis(v float64) float64 {
	if v < MinHysteresisC {
		return MinHysteresisC
	}
	return v
}
