package service

import (
	"context"
	"sync"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/control"
	"thermostat_controller/internal/repository"
)

// Settings keys for the control configuration.
const (
	keySetpoint   = "thermostat.setpoint"
	keyHysteresis = "thermostat.hysteresis"
)

// Defaults used when the store has never been written.
const (
	DefaultSetpointC   = 21.0
	DefaultHysteresisC = 0.5
)

// ThermostatService serves and mutates the control configuration. The
// in-memory copy is committed only after the durable write succeeds, so a
// decision cycle can never observe an unpersisted mutation.
type ThermostatService struct {
	settings repository.Settings
	events   repository.EventRepo

	mu     sync.Mutex
	loaded bool
	cfg    thermostat_controller.ThermostatConfig
}

func NewThermostatService(settings repository.Settings, events repository.EventRepo) *ThermostatService {
	return &ThermostatService{settings: settings, events: events}
}

// Config returns the current configuration, loading it from the store on
// first use. Stored out-of-range hysteresis is clamped on the way in.
func (s *ThermostatService) Config(ctx context.Context) (thermostat_controller.ThermostatConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return thermostat_controller.ThermostatConfig{}, err
	}
	return s.cfg, nil
}

func (s *ThermostatService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	sp, err := s.settings.GetFloat(ctx, keySetpoint, DefaultSetpointC)
	if err != nil {
		return err
	}
	hy, err := s.settings.GetFloat(ctx, keyHysteresis, DefaultHysteresisC)
	if err != nil {
		return err
	}
	s.cfg = thermostat_controller.ThermostatConfig{
		SetpointC:   sp,
		HysteresisC: control.ClampHysteresis(hy),
	}
	s.loaded = true
	return nil
}

// Update applies a partial configuration change. The hysteresis floor is
// applied silently; the change is persisted before the new value is
// visible, then logged.
func (s *ThermostatService) Update(ctx context.Context, p ConfigParams) (thermostat_controller.ThermostatConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return thermostat_controller.ThermostatConfig{}, err
	}

	next := s.cfg
	if p.SetpointC != nil {
		next.SetpointC = *p.SetpointC
	}
	if p.HysteresisC != nil {
		next.HysteresisC = control.ClampHysteresis(*p.HysteresisC)
	}
	if next == s.cfg {
		return s.cfg, nil
	}

	if next.SetpointC != s.cfg.SetpointC {
		if err := s.settings.PutFloat(ctx, keySetpoint, next.SetpointC); err != nil {
			return thermostat_controller.ThermostatConfig{}, err
		}
	}
	if next.HysteresisC != s.cfg.HysteresisC {
		if err := s.settings.PutFloat(ctx, keyHysteresis, next.HysteresisC); err != nil {
			return thermostat_controller.ThermostatConfig{}, err
		}
	}
	prev := s.cfg
	s.cfg = next

	source := p.Source
	if source == "" {
		source = "api"
	}
	_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        EventConfigChange,
		Description: "thermostat configuration changed",
		Metadata: map[string]any{
			"setpoint_c":      next.SetpointC,
			"hysteresis_c":    next.HysteresisC,
			"prev_setpoint_c": prev.SetpointC,
			"source":          source,
		},
	})

	return s.cfg, nil
}

// Adjust nudges the setpoint by deltaC, used by the physical buttons.
func (s *ThermostatService) Adjust(ctx context.Context, deltaC float64) (thermostat_controller.ThermostatConfig, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return thermostat_controller.ThermostatConfig{}, err
	}
	next := cfg.SetpointC + deltaC
	return s.Update(ctx, ConfigParams{SetpointC: &next, Source: "button"})
}
