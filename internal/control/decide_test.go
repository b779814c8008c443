package control

import (
	"testing"

	"thermostat_controller"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		tempC      float64
		setpointC  float64
		hysteresis float64
		want       thermostat_controller.HeatState
	}{
		{"well below band", 18.0, 21.0, 0.5, thermostat_controller.Heating},
		{"well above band", 24.0, 21.0, 0.5, thermostat_controller.Cooling},
		{"inside band", 21.1, 21.0, 0.5, thermostat_controller.OnTarget},
		{"exactly at setpoint", 21.0, 21.0, 0.5, thermostat_controller.OnTarget},
		{"lower boundary exactly is on target", 20.6, 21.0, 0.8, thermostat_controller.OnTarget},
		{"just inside lower edge", 20.74, 21.0, 0.8, thermostat_controller.OnTarget},
		{"below lower edge", 20.24, 21.0, 0.8, thermostat_controller.Heating},
		{"upper boundary exactly is on target", 21.25, 21.0, 0.5, thermostat_controller.OnTarget},
		{"just above upper edge", 21.26, 21.0, 0.5, thermostat_controller.Cooling},
		{"just below lower edge", 20.74, 21.0, 0.5, thermostat_controller.Heating},
		{"negative temperatures", -5.0, 4.0, 1.0, thermostat_controller.Heating},
		{"missing sample fails safe", thermostat_controller.MissingSample, 21.0, 0.5, thermostat_controller.OnTarget},
		{"missing with extreme setpoint", thermostat_controller.MissingSample, -50.0, 10.0, thermostat_controller.OnTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.tempC, tt.setpointC, tt.hysteresis)
			if got != tt.want {
				t.Fatalf("Decide(%v, %v, %v) = %v, want %v", tt.tempC, tt.setpointC, tt.hysteresis, got, tt.want)
			}
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	first := Decide(19.3, 21.0, 0.5)
	for i := 0; i < 10; i++ {
		if got := Decide(19.3, 21.0, 0.5); got != first {
			t.Fatalf("repeated call %d returned %v, first returned %v", i, got, first)
		}
	}
}

func TestHeatStateWireEncoding(t *testing.T) {
	// Remote consumers depend on these integers.
	if thermostat_controller.Cooling != 0 || thermostat_controller.OnTarget != 1 || thermostat_controller.Heating != 2 {
		t.Fatalf("heat state encoding changed: cooling=%d ontarget=%d heating=%d",
			thermostat_controller.Cooling, thermostat_controller.OnTarget, thermostat_controller.Heating)
	}
}

func TestClampHysteresis(t *testing.T) {
	if got := ClampHysteresis(0.0); got != MinHysteresisC {
		t.Fatalf("clamp(0.0) = %v, want %v", got, MinHysteresisC)
	}
	if got := ClampHysteresis(-3.0); got != MinHysteresisC {
		t.Fatalf("clamp(-3.0) = %v, want %v", got, MinHysteresisC)
	}
	if got := ClampHysteresis(0.5); got != 0.5 {
		t.Fatalf("clamp(0.5) = %v, want 0.5", got)
	}
}
