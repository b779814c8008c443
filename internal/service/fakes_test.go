package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"thermostat_controller"
)

// memSettings is an in-memory repository.Settings used across the service
// tests. PutErr, when set, fails every write so persistence ordering can be
// asserted.
type memSettings struct {
	mu      sync.Mutex
	floats  map[string]float64
	ints    map[string]int
	bools   map[string]bool
	strs    map[string]string
	bytes   map[string][]byte
	PutErr  error
	putKeys []string
}

func newMemSettings() *memSettings {
	return &memSettings{
		floats: map[string]float64{},
		ints:   map[string]int{},
		bools:  map[string]bool{},
		strs:   map[string]string{},
		bytes:  map[string][]byte{},
	}
}

func (m *memSettings) GetFloat(_ context.Context, key string, def float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.floats[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *memSettings) PutFloat(_ context.Context, key string, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.floats[key] = v
	m.putKeys = append(m.putKeys, key)
	return nil
}

func (m *memSettings) GetInt(_ context.Context, key string, def int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.ints[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *memSettings) PutInt(_ context.Context, key string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.ints[key] = v
	m.putKeys = append(m.putKeys, key)
	return nil
}

func (m *memSettings) GetBool(_ context.Context, key string, def bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.bools[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *memSettings) PutBool(_ context.Context, key string, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.bools[key] = v
	m.putKeys = append(m.putKeys, key)
	return nil
}

func (m *memSettings) GetString(_ context.Context, key string, def string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.strs[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *memSettings) PutString(_ context.Context, key string, v string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.strs[key] = v
	m.putKeys = append(m.putKeys, key)
	return nil
}

func (m *memSettings) GetBytes(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.bytes[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	return nil, nil
}

func (m *memSettings) PutBytes(_ context.Context, key string, v []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	stored := make([]byte, len(v))
	copy(stored, v)
	m.bytes[key] = stored
	m.putKeys = append(m.putKeys, key)
	return nil
}

// memEvents is an in-memory repository.EventRepo.
type memEvents struct {
	mu     sync.Mutex
	Events []thermostat_controller.DeviceEvent
}

func (m *memEvents) Append(_ context.Context, e thermostat_controller.DeviceEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Type = strings.ToUpper(e.Type)
	m.Events = append(m.Events, e)
	return nil
}

func (m *memEvents) List(_ context.Context, from, to time.Time, typ string) ([]thermostat_controller.DeviceEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []thermostat_controller.DeviceEvent
	for _, e := range m.Events {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memEvents) byType(typ string) []thermostat_controller.DeviceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []thermostat_controller.DeviceEvent
	for _, e := range m.Events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
