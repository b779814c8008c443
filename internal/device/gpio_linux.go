//go:build linux

package device

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"thermostat_controller"
)

// GPIOButtons reads the three buttons through the Linux GPIO character
// device. Buttons are wired active-low with internal pull-ups; Read inverts
// to logical pressed.
type GPIOButtons struct {
	chip *gpiocdev.Chip
	up   *gpiocdev.Line
	down *gpiocdev.Line
	mode *gpiocdev.Line
}

// NewGPIOButtons requests the three button lines as pulled-up inputs.
func NewGPIOButtons(chipName string, pins PinConfig) (*GPIOButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &GPIOButtons{chip: chip}
	for _, req := range []struct {
		pin  int
		dst  **gpiocdev.Line
		name string
	}{
		{pins.ButtonUp, &b.up, "up"},
		{pins.ButtonDown, &b.down, "down"},
		{pins.ButtonMode, &b.mode, "mode"},
	} {
		line, err := chip.RequestLine(req.pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("request %s button pin %d: %w", req.name, req.pin, err)
		}
		*req.dst = line
	}
	return b, nil
}

// Read samples all three lines. Raw 0 (pulled low) means pressed.
func (b *GPIOButtons) Read() (ButtonSample, error) {
	var s ButtonSample
	for _, l := range []struct {
		line *gpiocdev.Line
		dst  *bool
		name string
	}{
		{b.up, &s.Up, "up"},
		{b.down, &s.Down, "down"},
		{b.mode, &s.Mode, "mode"},
	} {
		v, err := l.line.Value()
		if err != nil {
			return ButtonSample{}, fmt.Errorf("read %s button: %w", l.name, err)
		}
		*l.dst = v == 0
	}
	return s, nil
}

func (b *GPIOButtons) Close() error {
	var firstErr error
	for _, line := range []*gpiocdev.Line{b.up, b.down, b.mode} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GPIOLEDs drives the heat and cool indicator LEDs. Both off means on
// target.
type GPIOLEDs struct {
	chip *gpiocdev.Chip
	heat *gpiocdev.Line
	cool *gpiocdev.Line
}

func NewGPIOLEDs(chipName string, pins PinConfig) (*GPIOLEDs, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	heat, err := chip.RequestLine(pins.LEDHeat, gpiocdev.AsOutput(0))
	if err != nil {
		_ = chip.Close()
		return nil, fmt.Errorf("request heat LED pin %d: %w", pins.LEDHeat, err)
	}
	cool, err := chip.RequestLine(pins.LEDCool, gpiocdev.AsOutput(0))
	if err != nil {
		_ = heat.Close()
		_ = chip.Close()
		return nil, fmt.Errorf("request cool LED pin %d: %w", pins.LEDCool, err)
	}
	return &GPIOLEDs{chip: chip, heat: heat, cool: cool}, nil
}

func (l *GPIOLEDs) SetHeatState(s thermostat_controller.HeatState) error {
	heat, cool := 0, 0
	switch s {
	case thermostat_controller.Heating:
		heat = 1
	case thermostat_controller.Cooling:
		cool = 1
	}
	if err := l.heat.SetValue(heat); err != nil {
		return fmt.Errorf("set heat LED: %w", err)
	}
	if err := l.cool.SetValue(cool); err != nil {
		return fmt.Errorf("set cool LED: %w", err)
	}
	return nil
}

func (l *GPIOLEDs) Close() error {
	var firstErr error
	for _, line := range []*gpiocdev.Line{l.heat, l.cool} {
		if line == nil {
			continue
		}
		// Dark LEDs on shutdown.
		_ = line.SetValue(0)
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
