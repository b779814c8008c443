package handlers

import (
	"context"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/logger"
	"thermostat_controller/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockThermostat struct {
	cfg       thermostat_controller.ThermostatConfig
	configErr error
	updateErr error

	lastUpdate  service.ConfigParams
	updateCalls int
}

func (m *mockThermostat) Config(ctx context.Context) (thermostat_controller.ThermostatConfig, error) {
	return m.cfg, m.configErr
}

func (m *mockThermostat) Update(ctx context.Context, p service.ConfigParams) (thermostat_controller.ThermostatConfig, error) {
	m.updateCalls++
	m.lastUpdate = p
	if m.updateErr != nil {
		return thermostat_controller.ThermostatConfig{}, m.updateErr
	}
	if p.SetpointC != nil {
		m.cfg.SetpointC = *p.SetpointC
	}
	if p.HysteresisC != nil {
		m.cfg.HysteresisC = *p.HysteresisC
	}
	return m.cfg, nil
}

func (m *mockThermostat) Adjust(ctx context.Context, deltaC float64) (thermostat_controller.ThermostatConfig, error) {
	next := m.cfg.SetpointC + deltaC
	return m.Update(ctx, service.ConfigParams{SetpointC: &next, Source: "button"})
}

type mockHistory struct {
	samples []float64
}

func (m *mockHistory) LoadOrInit(ctx context.Context) error        { return nil }
func (m *mockHistory) Append(ctx context.Context, v float64) error { return nil }
func (m *mockHistory) ReadOrdered() []float64                      { return m.samples }

type mockCredentials struct {
	creds   thermostat_controller.WiFiCredentials
	saveErr error

	lastSaved thermostat_controller.WiFiCredentials
	saveCalls int
}

func (m *mockCredentials) Load(ctx context.Context) (thermostat_controller.WiFiCredentials, error) {
	return m.creds, nil
}

func (m *mockCredentials) Save(ctx context.Context, c thermostat_controller.WiFiCredentials) error {
	m.saveCalls++
	m.lastSaved = c
	if m.saveErr != nil {
		return m.saveErr
	}
	m.creds = c
	return nil
}

type mockMonitoring struct {
	status    thermostat_controller.DeviceStatus
	statusErr error
}

func (m *mockMonitoring) Status(ctx context.Context) (thermostat_controller.DeviceStatus, error) {
	return m.status, m.statusErr
}

type mockEventLog struct {
	events  []thermostat_controller.DeviceEvent
	listErr error

	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]thermostat_controller.DeviceEvent, error) {
	m.lastFilter = f
	return m.events, m.listErr
}

type mockRuntime struct {
	mode         thermostat_controller.DeviceMode
	restartCalls int
}

func (m *mockRuntime) Run(ctx context.Context, tick time.Duration) {}
func (m *mockRuntime) AttachRoutes(rc service.RouteController)     {}
func (m *mockRuntime) RequestRestart()                             { m.restartCalls++ }
func (m *mockRuntime) Mode() thermostat_controller.DeviceMode      { return m.mode }

// newTestRouter builds the normal-mode router over the given services.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, logger.Nop())
	return h.NormalRoutes()
}

// newProvisioningRouter builds the portal router over the given services.
func newProvisioningRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, logger.Nop())
	return h.ProvisioningRoutes()
}
