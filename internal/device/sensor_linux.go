//go:build linux

package device

import (
	"fmt"

	"github.com/afroash/dht"
)

// DHTSensor reads temperature from a DHT11 probe on a single GPIO data pin.
type DHTSensor struct {
	sensor     *dht.Sensor
	maxRetries int
}

func NewDHTSensor(pin int) (*DHTSensor, error) {
	s, err := dht.NewDHT11(pin)
	if err != nil {
		return nil, fmt.Errorf("init dht11 on pin %d: %w", pin, err)
	}
	return &DHTSensor{sensor: s, maxRetries: 3}, nil
}

// Read returns the temperature in °C. The DHT protocol is timing sensitive
// so a few retries are allowed before reporting a fault.
func (d *DHTSensor) Read() (float64, error) {
	reading, err := d.sensor.ReadRetry(d.maxRetries)
	if err != nil {
		return 0, fmt.Errorf("dht read after %d retries: %w", d.maxRetries, err)
	}
	return reading.Temperature, nil
}

func (d *DHTSensor) Close() error {
	return d.sensor.Close()
}

// OpenHardware builds the full hardware set for a Linux board.
func OpenHardware(chipName string, pins PinConfig, iface string) (Hardware, error) {
	buttons, err := NewGPIOButtons(chipName, pins)
	if err != nil {
		return Hardware{}, err
	}
	leds, err := NewGPIOLEDs(chipName, pins)
	if err != nil {
		_ = buttons.Close()
		return Hardware{}, err
	}
	sensor, err := NewDHTSensor(pins.SensorData)
	if err != nil {
		_ = leds.Close()
		_ = buttons.Close()
		return Hardware{}, err
	}
	return Hardware{
		Buttons: buttons,
		LEDs:    leds,
		Sensor:  sensor,
		Network: NewNMCLINetwork(iface),
		Power:   SystemPower{},
	}, nil
}
