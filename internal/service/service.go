package service

import (
	"context"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/device"
	"thermostat_controller/internal/logger"
	"thermostat_controller/internal/repository"
	"thermostat_controller/internal/telemetry"
)

// Thermostat owns the control configuration. Every mutation is persisted
// before it returns, so the next decision cycle always sees durable state.
type Thermostat interface {
	Config(ctx context.Context) (thermostat_controller.ThermostatConfig, error)
	Update(ctx context.Context, p ConfigParams) (thermostat_controller.ThermostatConfig, error)
	Adjust(ctx context.Context, deltaC float64) (thermostat_controller.ThermostatConfig, error)
}

// History owns the durable temperature ring buffer.
type History interface {
	LoadOrInit(ctx context.Context) error
	Append(ctx context.Context, sample float64) error
	ReadOrdered() []float64
}

// Credentials owns the persisted Wi-Fi station configuration.
type Credentials interface {
	Load(ctx context.Context) (thermostat_controller.WiFiCredentials, error)
	Save(ctx context.Context, c thermostat_controller.WiFiCredentials) error
}

// Monitoring exposes the read-only status snapshot served to routes and the
// websocket stream.
type Monitoring interface {
	Status(ctx context.Context) (thermostat_controller.DeviceStatus, error)
}

// EventLog exposes the append-only device log with filtered access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]thermostat_controller.DeviceEvent, error)
}

// RouteController is how the runtime arbitrates the active route set. Each
// Serve call tears down whatever set was live before installing its own, so
// the two sets are never active together.
type RouteController interface {
	ServeNormal() error
	ServeProvisioning() error
	Shutdown(ctx context.Context) error
}

// Runtime is the device mode controller and service loop. Stop via context
// cancellation; Run also returns after the sleep halt or a requested
// restart.
type Runtime interface {
	Run(ctx context.Context, tick time.Duration)
	AttachRoutes(rc RouteController)
	RequestRestart()
	Mode() thermostat_controller.DeviceMode
}

// Service aggregates all sub-services.
type Service struct {
	Thermostat
	History
	Credentials
	Monitoring
	EventLog
	Runtime
}

// NewService wires the repository layer, hardware and telemetry into the
// concrete services.
func NewService(repos *repository.Repository, hw device.Hardware, pub telemetry.Publisher, log *logger.Logger, opts Options) *Service {
	thermo := NewThermostatService(repos.Settings, repos.Events)
	hist := NewHistoryService(repos.Settings)
	creds := NewCredentialsService(repos.Settings, repos.Events)
	state := NewStateTracker()
	return &Service{
		Thermostat:  thermo,
		History:     hist,
		Credentials: creds,
		Monitoring:  NewMonitoringService(thermo, hist, state),
		EventLog:    NewEventLogService(repos.Events),
		Runtime:     NewRuntimeService(thermo, hist, creds, repos.Events, state, hw, pub, log, opts),
	}
}
