package service

import (
	"context"
	"errors"
	"testing"
)

func newThermostatUnderTest() (*ThermostatService, *memSettings, *memEvents) {
	settings := newMemSettings()
	events := &memEvents{}
	return NewThermostatService(settings, events), settings, events
}

func TestConfigDefaultsOnFreshStore(t *testing.T) {
	svc, _, _ := newThermostatUnderTest()

	cfg, err := svc.Config(context.Background())
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.SetpointC != DefaultSetpointC {
		t.Errorf("setpoint = %v, want %v", cfg.SetpointC, DefaultSetpointC)
	}
	if cfg.HysteresisC != DefaultHysteresisC {
		t.Errorf("hysteresis = %v, want %v", cfg.HysteresisC, DefaultHysteresisC)
	}
}

func TestConfigLoadsStoredValues(t *testing.T) {
	svc, settings, _ := newThermostatUnderTest()
	settings.floats[keySetpoint] = 18.5
	settings.floats[keyHysteresis] = 1.0

	cfg, err := svc.Config(context.Background())
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.SetpointC != 18.5 || cfg.HysteresisC != 1.0 {
		t.Errorf("got %+v, want 18.5/1.0", cfg)
	}
}

func TestUpdateClampsHysteresisFloor(t *testing.T) {
	svc, settings, _ := newThermostatUnderTest()

	zero := 0.0
	cfg, err := svc.Update(context.Background(), ConfigParams{HysteresisC: &zero})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cfg.HysteresisC != 0.1 {
		t.Errorf("hysteresis = %v, want clamped 0.1", cfg.HysteresisC)
	}
	if settings.floats[keyHysteresis] != 0.1 {
		t.Errorf("stored hysteresis = %v, want 0.1", settings.floats[keyHysteresis])
	}
}

func TestUpdatePartialLeavesOtherFieldAlone(t *testing.T) {
	svc, _, _ := newThermostatUnderTest()

	sp := 23.0
	cfg, err := svc.Update(context.Background(), ConfigParams{SetpointC: &sp})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cfg.SetpointC != 23.0 {
		t.Errorf("setpoint = %v, want 23.0", cfg.SetpointC)
	}
	if cfg.HysteresisC != DefaultHysteresisC {
		t.Errorf("hysteresis = %v, want untouched %v", cfg.HysteresisC, DefaultHysteresisC)
	}
}

func TestUpdateFailedWriteLeavesConfigUnchanged(t *testing.T) {
	svc, settings, events := newThermostatUnderTest()
	ctx := context.Background()

	if _, err := svc.Config(ctx); err != nil {
		t.Fatalf("Config: %v", err)
	}
	settings.PutErr = errors.New("disk full")

	sp := 25.0
	if _, err := svc.Update(ctx, ConfigParams{SetpointC: &sp}); err == nil {
		t.Fatal("Update succeeded despite failing store")
	}

	cfg, err := svc.Config(ctx)
	if err != nil {
		t.Fatalf("Config after failed update: %v", err)
	}
	if cfg.SetpointC != DefaultSetpointC {
		t.Errorf("setpoint = %v, unpersisted change became visible", cfg.SetpointC)
	}
	if len(events.Events) != 0 {
		t.Errorf("logged %d events for a failed update", len(events.Events))
	}
}

func TestUpdateNoopSkipsWriteAndEvent(t *testing.T) {
	svc, settings, events := newThermostatUnderTest()

	sp := DefaultSetpointC
	if _, err := svc.Update(context.Background(), ConfigParams{SetpointC: &sp}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(settings.putKeys) != 0 {
		t.Errorf("wrote keys %v for a no-op update", settings.putKeys)
	}
	if len(events.Events) != 0 {
		t.Errorf("logged %d events for a no-op update", len(events.Events))
	}
}

func TestAdjustStepsSetpointAndTagsSource(t *testing.T) {
	svc, _, events := newThermostatUnderTest()
	ctx := context.Background()

	cfg, err := svc.Adjust(ctx, 0.5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if cfg.SetpointC != DefaultSetpointC+0.5 {
		t.Errorf("setpoint = %v, want %v", cfg.SetpointC, DefaultSetpointC+0.5)
	}

	cfg, err = svc.Adjust(ctx, -0.5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if cfg.SetpointC != DefaultSetpointC {
		t.Errorf("setpoint = %v, want back at %v", cfg.SetpointC, DefaultSetpointC)
	}

	changes := events.byType(EventConfigChange)
	if len(changes) != 2 {
		t.Fatalf("logged %d config changes, want 2", len(changes))
	}
	for _, e := range changes {
		meta, ok := e.Metadata.(map[string]any)
		if !ok {
			t.Fatalf("event metadata is %T, want map", e.Metadata)
		}
		if meta["source"] != "button" {
			t.Errorf("event source = %v, want button", meta["source"])
		}
	}
}
