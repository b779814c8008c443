package service

import (
	"sync"
	"time"

	"thermostat_controller"
)

// StateTracker is the runtime's published snapshot of mode, latest sample
// and heat state. The loop writes it once per pass; HTTP handlers and the
// websocket stream read it concurrently.
type StateTracker struct {
	mu        sync.RWMutex
	mode      thermostat_controller.DeviceMode
	tempC     float64
	heat      thermostat_controller.HeatState
	updatedAt time.Time
}

func NewStateTracker() *StateTracker {
	return &StateTracker{
		mode:  thermostat_controller.ModeProvisioning,
		tempC: thermostat_controller.MissingSample,
		heat:  thermostat_controller.OnTarget,
	}
}

func (t *StateTracker) SetMode(m thermostat_controller.DeviceMode, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = m
	t.updatedAt = now.UTC()
}

func (t *StateTracker) SetReading(tempC float64, heat thermostat_controller.HeatState, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tempC = tempC
	t.heat = heat
	t.updatedAt = now.UTC()
}

func (t *StateTracker) Mode() thermostat_controller.DeviceMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// Snapshot returns all published values consistently.
func (t *StateTracker) Snapshot() (thermostat_controller.DeviceMode, float64, thermostat_controller.HeatState, time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode, t.tempC, t.heat, t.updatedAt
}
