// Package telemetry publishes heat-state transitions and lifecycle events to
// an MQTT broker when one is configured. Publishing is best effort: a broker
// outage never disturbs the control loop.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"thermostat_controller"
)

// Publisher pushes thermostat telemetry to an external consumer.
type Publisher interface {
	// PublishState sends a heat-state transition.
	PublishState(s thermostat_controller.HeatState, tempC float64) error
	// PublishLifecycle sends a device lifecycle marker (boot, sleep, mode
	// change).
	PublishLifecycle(event string) error
	// Close disconnects from the broker.
	Close() error
}

type statePayload struct {
	Timestamp    time.Time `json:"timestamp"`
	HeatState    int       `json:"heat_state"`
	TemperatureC *float64  `json:"temperature_c"`
}

type lifecyclePayload struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
}

// MQTTPublisher publishes to a real broker over paho.
type MQTTPublisher struct {
	client     paho.Client
	stateTopic string
	lifeTopic  string
}

// NewMQTTPublisher connects to the broker; topic is the base, with /state
// and /lifecycle beneath it.
func NewMQTTPublisher(broker, topic, clientID string) (*MQTTPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTPublisher{
		client:     client,
		stateTopic: topic + "/state",
		lifeTopic:  topic + "/lifecycle",
	}, nil
}

func (p *MQTTPublisher) PublishState(s thermostat_controller.HeatState, tempC float64) error {
	pl := statePayload{
		Timestamp: time.Now().UTC(),
		HeatState: int(s),
	}
	if !thermostat_controller.IsMissing(tempC) {
		pl.TemperatureC = &tempC
	}
	return p.publish(p.stateTopic, 0, pl)
}

func (p *MQTTPublisher) PublishLifecycle(event string) error {
	// QoS 1 so sleep markers survive a flaky link.
	return p.publish(p.lifeTopic, 1, lifecyclePayload{
		Timestamp: time.Now().UTC(),
		Event:     event,
	})
}

func (p *MQTTPublisher) publish(topic string, qos byte, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	token := p.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) PublishState(thermostat_controller.HeatState, float64) error { return nil }
func (Nop) PublishLifecycle(string) error                               { return nil }
func (Nop) Close() error                                                { return nil }

// Fake records published telemetry for tests.
type Fake struct {
	States     []thermostat_controller.HeatState
	Lifecycles []string
	Closed     bool
}

func (f *Fake) PublishState(s thermostat_controller.HeatState, _ float64) error {
	f.States = append(f.States, s)
	return nil
}

func (f *Fake) PublishLifecycle(event string) error {
	f.Lifecycles = append(f.Lifecycles, event)
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
