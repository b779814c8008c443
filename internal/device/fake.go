package device

import (
	"context"
	"errors"
	"sync"
	"time"

	"thermostat_controller"
)

// FakeButtons returns scripted button samples. Once the script is exhausted
// the last sample repeats, so a "held" tail is easy to express.
type FakeButtons struct {
	Samples []ButtonSample
	ReadErr error
	Closed  bool

	index int
}

func NewFakeButtons(samples ...ButtonSample) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

func (f *FakeButtons) Read() (ButtonSample, error) {
	if f.ReadErr != nil {
		return ButtonSample{}, f.ReadErr
	}
	if len(f.Samples) == 0 {
		return ButtonSample{}, nil
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// FakeLEDs records every heat state written to it.
type FakeLEDs struct {
	States []thermostat_controller.HeatState
	Closed bool
}

func (f *FakeLEDs) SetHeatState(s thermostat_controller.HeatState) error {
	f.States = append(f.States, s)
	return nil
}

func (f *FakeLEDs) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recent state written, or OnTarget if none.
func (f *FakeLEDs) Last() thermostat_controller.HeatState {
	if len(f.States) == 0 {
		return thermostat_controller.OnTarget
	}
	return f.States[len(f.States)-1]
}

// FakeSensor returns scripted readings; a reading equal to the missing
// sentinel is served as an error, matching a faulted probe.
type FakeSensor struct {
	Readings []float64
	Closed   bool

	index int
}

func NewFakeSensor(readings ...float64) *FakeSensor {
	return &FakeSensor{Readings: readings}
}

func (f *FakeSensor) Read() (float64, error) {
	if len(f.Readings) == 0 {
		return 0, errors.New("no readings configured")
	}
	v := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	if thermostat_controller.IsMissing(v) {
		return 0, errors.New("sensor fault")
	}
	return v, nil
}

func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}

// FakeNetwork records network calls and fails them on demand.
type FakeNetwork struct {
	mu sync.Mutex

	JoinErr error
	APErr   error

	JoinCalls       []string // ssids
	APCalls         []string // ssids
	DisconnectCalls int
}

func (f *FakeNetwork) StartAccessPoint(ssid, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.APCalls = append(f.APCalls, ssid)
	if f.APErr != nil {
		return "", f.APErr
	}
	return "10.42.0.1", nil
}

func (f *FakeNetwork) Join(ctx context.Context, ssid, password string, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.JoinCalls = append(f.JoinCalls, ssid)
	return f.JoinErr
}

func (f *FakeNetwork) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DisconnectCalls++
	return nil
}

// FakePower records halt/reboot requests and returns, letting loop tests
// observe the terminal actions.
type FakePower struct {
	HaltCalls   []int // wake pins
	RebootCalls int
}

func (f *FakePower) HaltUntilWake(wakePin int) error {
	f.HaltCalls = append(f.HaltCalls, wakePin)
	return nil
}

func (f *FakePower) Reboot() error {
	f.RebootCalls++
	return nil
}

// FakeHardware bundles fresh fakes with sane defaults: buttons idle, sensor
// reporting 21 °C.
func FakeHardware() (Hardware, *FakeButtons, *FakeLEDs, *FakeSensor, *FakeNetwork, *FakePower) {
	buttons := NewFakeButtons(ButtonSample{})
	leds := &FakeLEDs{}
	sensor := NewFakeSensor(21.0)
	network := &FakeNetwork{}
	power := &FakePower{}
	hw := Hardware{
		Buttons: buttons,
		LEDs:    leds,
		Sensor:  sensor,
		Network: network,
		Power:   power,
	}
	return hw, buttons, leds, sensor, network, power
}
