package service

import (
	"context"

	"thermostat_controller"
)

// MonitoringService assembles the read-only status snapshot from the
// tracker, the control config and the history ring.
type MonitoringService struct {
	thermostat Thermostat
	history    History
	state      *StateTracker
}

func NewMonitoringService(thermostat Thermostat, history History, state *StateTracker) *MonitoringService {
	return &MonitoringService{thermostat: thermostat, history: history, state: state}
}

// Status returns the current snapshot. Missing samples surface as nils so
// JSON consumers see null rather than the sentinel value.
func (s *MonitoringService) Status(ctx context.Context) (thermostat_controller.DeviceStatus, error) {
	cfg, err := s.thermostat.Config(ctx)
	if err != nil {
		return thermostat_controller.DeviceStatus{}, err
	}
	mode, tempC, heat, updatedAt := s.state.Snapshot()

	st := thermostat_controller.DeviceStatus{
		Mode:        mode,
		SetpointC:   cfg.SetpointC,
		HysteresisC: cfg.HysteresisC,
		HeatState:   heat,
		UpdatedAt:   updatedAt,
	}
	if !thermostat_controller.IsMissing(tempC) {
		t := tempC
		st.TemperatureC = &t
	}
	for _, v := range s.history.ReadOrdered() {
		if thermostat_controller.IsMissing(v) {
			st.History = append(st.History, nil)
			continue
		}
		sample := v
		st.History = append(st.History, &sample)
	}
	return st, nil
}
