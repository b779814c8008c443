package service

import (
	"context"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/control"
	"thermostat_controller/internal/device"
	"thermostat_controller/internal/logger"
	"thermostat_controller/internal/repository"
	"thermostat_controller/internal/telemetry"
)

// RuntimeService is the device mode controller: it owns the current mode,
// the active route set, the button trackers and the awake budget, and runs
// the polling loop that ties them together. All transitions happen inside
// one loop goroutine; only the published StateTracker is read concurrently.
type RuntimeService struct {
	thermostat Thermostat
	history    History
	creds      Credentials
	events     repository.EventRepo
	state      *StateTracker
	hw         device.Hardware
	pub        telemetry.Publisher
	log        *logger.Logger
	opts       Options

	routes RouteController

	mode    thermostat_controller.DeviceMode
	upBtn   *control.Debouncer
	downBtn *control.Debouncer
	modeBtn *control.LongPress
	awake   *control.AwakeTimer
	sampler *control.Interval

	latest   float64
	lastHeat thermostat_controller.HeatState
	haveHeat bool
	faulted  bool

	restartCh chan struct{}
}

func NewRuntimeService(
	thermostat Thermostat,
	history History,
	creds Credentials,
	events repository.EventRepo,
	state *StateTracker,
	hw device.Hardware,
	pub telemetry.Publisher,
	log *logger.Logger,
	opts Options,
) *RuntimeService {
	return &RuntimeService{
		thermostat: thermostat,
		history:    history,
		creds:      creds,
		events:     events,
		state:      state,
		hw:         hw,
		pub:        pub,
		log:        log,
		opts:       opts,
		mode:       thermostat_controller.ModeProvisioning,
		upBtn:      control.NewDebouncer(opts.DebounceWindow),
		downBtn:    control.NewDebouncer(opts.DebounceWindow),
		modeBtn:    control.NewLongPress(opts.LongPressAfter),
		awake:      control.NewAwakeTimer(opts.AwakeBudget),
		sampler:    control.NewInterval(opts.SampleInterval),
		latest:     thermostat_controller.MissingSample,
		restartCh:  make(chan struct{}, 1),
	}
}

// AttachRoutes hands the runtime exclusive ownership of the route set
// switcher. Must be called before Run.
func (s *RuntimeService) AttachRoutes(rc RouteController) {
	s.routes = rc
}

// Mode returns the currently active device mode.
func (s *RuntimeService) Mode() thermostat_controller.DeviceMode {
	return s.state.Mode()
}

// RequestRestart schedules a reboot, used after provisioning persists new
// credentials. Non-blocking; repeated requests coalesce.
func (s *RuntimeService) RequestRestart() {
	select {
	case s.restartCh <- struct{}{}:
	default:
	}
}

// Run boots the device into its initial mode and then ticks at the given
// interval until the context is canceled, the sleep halt fires, or a
// restart is requested.
func (s *RuntimeService) Run(ctx context.Context, tick time.Duration) {
	s.boot(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.restartCh:
			s.restart(ctx)
			return
		case now := <-t.C:
			if halted := s.Tick(ctx, now); halted {
				return
			}
		}
	}
}

// boot decides the initial mode per the stored credentials: unprovisioned
// goes straight to the access point without a join attempt; a provisioned
// device tries the stored network within the bounded timeout and falls back
// to provisioning on failure. No outcome here is fatal.
func (s *RuntimeService) boot(ctx context.Context) {
	now := time.Now()

	if err := s.history.LoadOrInit(ctx); err != nil {
		s.log.Errorw("history_load_failed", "err", err)
	}
	if _, err := s.thermostat.Config(ctx); err != nil {
		s.log.Errorw("config_load_failed", "err", err)
	}

	creds, err := s.creds.Load(ctx)
	if err != nil {
		s.log.Errorw("credentials_load_failed", "err", err)
	}
	if !creds.Provisioned() {
		s.log.Infow("no stored network; entering provisioning")
		s.enterProvisioning(ctx, now, "unprovisioned")
		return
	}

	if err := s.hw.Network.Join(ctx, creds.SSID, creds.Password, s.opts.JoinTimeout); err != nil {
		s.log.Warnw("network_join_failed", "ssid", creds.SSID, "err", err)
		_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
			OccurredAt:  now.UTC(),
			Type:        EventNetworkJoinFailed,
			Description: "could not join stored network",
			Metadata:    map[string]any{"ssid": creds.SSID},
		})
		s.enterProvisioning(ctx, now, "join failed")
		return
	}

	s.enterNormal(ctx, now)
}

// Tick is one pass of the service loop. Order is fixed: inputs, decision,
// mode and sleep triggers, then temperature sampling, so a button press and
// a sample in the same pass are both reflected before the next one. Returns
// true once the device has halted for sleep.
func (s *RuntimeService) Tick(ctx context.Context, now time.Time) bool {
	btns, err := s.hw.Buttons.Read()
	if err != nil {
		s.log.Debugw("button_read_failed", "err", err)
		btns = device.ButtonSample{}
	}

	// The adjustment buttons belong to normal mode's input table only.
	if s.mode == thermostat_controller.ModeNormal {
		if s.upBtn.Poll(now, btns.Up) {
			s.adjust(ctx, s.opts.SetpointStepC)
		}
		if s.downBtn.Poll(now, btns.Down) {
			s.adjust(ctx, -s.opts.SetpointStepC)
		}
	}

	cfg, err := s.thermostat.Config(ctx)
	if err != nil {
		s.log.Errorw("config_read_failed", "err", err)
		cfg = thermostat_controller.ThermostatConfig{SetpointC: DefaultSetpointC, HysteresisC: DefaultHysteresisC}
	}
	heat := control.Decide(s.latest, cfg.SetpointC, cfg.HysteresisC)
	if err := s.hw.LEDs.SetHeatState(heat); err != nil {
		s.log.Debugw("led_write_failed", "err", err)
	}
	s.state.SetReading(s.latest, heat, now)
	if !s.haveHeat || heat != s.lastHeat {
		if err := s.pub.PublishState(heat, s.latest); err != nil {
			s.log.Debugw("telemetry_publish_failed", "err", err)
		}
		s.lastHeat = heat
		s.haveHeat = true
	}

	if s.mode == thermostat_controller.ModeNormal {
		if s.modeBtn.Poll(now, btns.Mode) {
			s.log.Infow("mode button long press; switching to provisioning")
			s.enterProvisioning(ctx, now, "long press")
			return false
		}
		if s.awake.Expired(now) {
			s.sleep(ctx, now)
			return true
		}
	}

	if s.mode == thermostat_controller.ModeNormal && s.sampler.Due(now) {
		s.sample(ctx, now)
	}

	return false
}

// sample reads the sensor and appends to the durable history. A fault is
// recorded as the missing sentinel and logged once per fault episode.
func (s *RuntimeService) sample(ctx context.Context, now time.Time) {
	v, err := s.hw.Sensor.Read()
	if err != nil {
		v = thermostat_controller.MissingSample
		if !s.faulted {
			s.log.Warnw("sensor_fault", "err", err)
			_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
				OccurredAt:  now.UTC(),
				Type:        EventSensorFault,
				Description: "temperature sensor not responding",
			})
		}
		s.faulted = true
	} else {
		if s.faulted {
			s.log.Infow("sensor_recovered", "temp_c", v)
		}
		s.faulted = false
	}
	s.latest = v
	if err := s.history.Append(ctx, v); err != nil {
		s.log.Errorw("history_append_failed", "err", err)
	}
}

func (s *RuntimeService) adjust(ctx context.Context, deltaC float64) {
	cfg, err := s.thermostat.Adjust(ctx, deltaC)
	if err != nil {
		s.log.Errorw("setpoint_adjust_failed", "delta_c", deltaC, "err", err)
		return
	}
	s.log.Infow("setpoint adjusted", "setpoint_c", cfg.SetpointC)
}

func (s *RuntimeService) enterNormal(ctx context.Context, now time.Time) {
	s.mode = thermostat_controller.ModeNormal
	s.state.SetMode(thermostat_controller.ModeNormal, now)
	if s.routes != nil {
		if err := s.routes.ServeNormal(); err != nil {
			s.log.Errorw("serve_normal_failed", "err", err)
		}
	}
	s.awake.Start(now)
	_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
		OccurredAt:  now.UTC(),
		Type:        EventModeChange,
		Description: "entered normal operation",
		Metadata:    map[string]any{"to": thermostat_controller.ModeNormal},
	})
	if err := s.pub.PublishLifecycle("normal"); err != nil {
		s.log.Debugw("telemetry_publish_failed", "err", err)
	}
	s.log.Infow("normal mode active", "awake_budget", s.opts.AwakeBudget)
}

func (s *RuntimeService) enterProvisioning(ctx context.Context, now time.Time, reason string) {
	wasNormal := s.mode == thermostat_controller.ModeNormal
	s.mode = thermostat_controller.ModeProvisioning
	s.state.SetMode(thermostat_controller.ModeProvisioning, now)
	s.awake.Stop()

	// ServeProvisioning tears the normal route set down before installing
	// its own, keeping the sets mutually exclusive.
	if s.routes != nil {
		if err := s.routes.ServeProvisioning(); err != nil {
			s.log.Errorw("serve_provisioning_failed", "err", err)
		}
	}
	if wasNormal {
		if err := s.hw.Network.Disconnect(); err != nil {
			s.log.Warnw("station_disconnect_failed", "err", err)
		}
	}
	addr, err := s.hw.Network.StartAccessPoint(s.opts.APSSID, s.opts.APPassword)
	if err != nil {
		s.log.Errorw("access_point_start_failed", "err", err)
	} else {
		s.log.Infow("provisioning access point up", "ssid", s.opts.APSSID, "addr", addr)
	}

	_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
		OccurredAt:  now.UTC(),
		Type:        EventModeChange,
		Description: "entered provisioning",
		Metadata: map[string]any{
			"to":     thermostat_controller.ModeProvisioning,
			"reason": reason,
		},
	})
}

// sleep is the terminal path of a normal-mode session: stop serving,
// release the network, arm the wake pin and halt. On real hardware
// execution resumes at boot; under fakes the call returns and the loop
// exits.
func (s *RuntimeService) sleep(ctx context.Context, now time.Time) {
	s.log.Infow("awake budget spent; halting", "wake_pin", s.opts.WakePin)
	_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
		OccurredAt:  now.UTC(),
		Type:        EventSleep,
		Description: "entering deep sleep",
		Metadata:    map[string]any{"awake": s.opts.AwakeBudget.String()},
	})
	if err := s.pub.PublishLifecycle("sleep"); err != nil {
		s.log.Debugw("telemetry_publish_failed", "err", err)
	}

	if s.routes != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.routes.Shutdown(shutdownCtx); err != nil {
			s.log.Warnw("route_shutdown_failed", "err", err)
		}
	}
	if err := s.hw.Network.Disconnect(); err != nil {
		s.log.Warnw("network_release_failed", "err", err)
	}
	_ = s.pub.Close()

	if err := s.hw.Power.HaltUntilWake(s.opts.WakePin); err != nil {
		s.log.Errorw("halt_failed", "err", err)
	}
}

// restart reboots after provisioning saved new credentials; the
// PROVISIONING to NORMAL transition is only realized across this reboot.
func (s *RuntimeService) restart(ctx context.Context) {
	s.log.Infow("restarting to apply new credentials")
	if s.routes != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.routes.Shutdown(shutdownCtx); err != nil {
			s.log.Warnw("route_shutdown_failed", "err", err)
		}
	}
	_ = s.pub.Close()
	if err := s.hw.Power.Reboot(); err != nil {
		s.log.Errorw("reboot_failed", "err", err)
	}
}
