package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thermostat_controller/internal/device"
	"thermostat_controller/internal/handlers"
	"thermostat_controller/internal/logger"
	"thermostat_controller/internal/repository"
	"thermostat_controller/internal/server"
	"thermostat_controller/internal/service"
	"thermostat_controller/internal/telemetry"

	"github.com/spf13/viper"
)

// defaultLoopTick is the service loop pass interval. It must stay well
// below the button debounce window so no press lands between polls.
const defaultLoopTick = 50 * time.Millisecond

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	hw := openHardware(log)
	pub := openTelemetry(log)
	services := service.NewService(repos, hw, pub, log, loadOptions())
	apiHandler := handlers.NewHandler(services, log)

	// the runtime decides which route set is live; the switcher owns the port
	sw := server.NewSwitcher(viper.GetString("port"), apiHandler.NormalRoutes(), apiHandler.ProvisioningRoutes(), log)
	services.Runtime.AttachRoutes(sw)

	// context for the service loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		services.Runtime.Run(ctx, viper.GetDuration("loop.tick"))
	}()

	// graceful shutdown
	waitForShutdown(cancel, loopDone, sw, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("loop.tick", defaultLoopTick)
	viper.SetDefault("db.path", "thermostat.db")
	viper.SetDefault("hardware.chip", "gpiochip0")
	viper.SetDefault("wifi.interface", "wlan0")
	viper.SetDefault("provisioning.ssid", "thermostat-setup")
	viper.SetDefault("thermostat.sample_interval", time.Second)
	viper.SetDefault("thermostat.debounce_window", 150*time.Millisecond)
	viper.SetDefault("thermostat.long_press_after", 10*time.Second)
	viper.SetDefault("thermostat.awake_budget", time.Minute)
	viper.SetDefault("thermostat.join_timeout", 20*time.Second)
	viper.SetDefault("thermostat.setpoint_step", 0.5)
	viper.SetDefault("pins.button_up", 5)
	viper.SetDefault("pins.button_down", 6)
	viper.SetDefault("pins.button_mode", 13)
	viper.SetDefault("pins.led_heat", 17)
	viper.SetDefault("pins.led_cool", 27)
	viper.SetDefault("pins.sensor_data", 4)

	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening settings store", "path", dbPath)
	return repository.InitDB(dbPath)
}

// openHardware requests the GPIO lines and sensor, or falls back to fakes
// when hardware.fake is set or the chip is unavailable, keeping development
// machines usable without a device tree.
func openHardware(log *logger.Logger) device.Hardware {
	if viper.GetBool("hardware.fake") {
		log.Infow("using fake hardware")
		hw, _, _, _, _, _ := device.FakeHardware()
		return hw
	}
	pins := device.PinConfig{
		ButtonUp:   viper.GetInt("pins.button_up"),
		ButtonDown: viper.GetInt("pins.button_down"),
		ButtonMode: viper.GetInt("pins.button_mode"),
		LEDHeat:    viper.GetInt("pins.led_heat"),
		LEDCool:    viper.GetInt("pins.led_cool"),
		SensorData: viper.GetInt("pins.sensor_data"),
	}
	hw, err := device.OpenHardware(viper.GetString("hardware.chip"), pins, viper.GetString("wifi.interface"))
	if err != nil {
		log.Warnw("hardware unavailable; using fakes", "err", err)
		hw, _, _, _, _, _ = device.FakeHardware()
	}
	return hw
}

// openTelemetry connects the MQTT publisher when a broker is configured.
func openTelemetry(log *logger.Logger) telemetry.Publisher {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return telemetry.Nop{}
	}
	topic := viper.GetString("mqtt.topic")
	if topic == "" {
		topic = "thermostat"
	}
	pub, err := telemetry.NewMQTTPublisher(broker, topic, viper.GetString("mqtt.client_id"))
	if err != nil {
		log.Warnw("mqtt unavailable; telemetry disabled", "broker", broker, "err", err)
		return telemetry.Nop{}
	}
	log.Infow("mqtt telemetry connected", "broker", broker, "topic", topic)
	return pub
}

func loadOptions() service.Options {
	opts := service.DefaultOptions()
	opts.SampleInterval = viper.GetDuration("thermostat.sample_interval")
	opts.DebounceWindow = viper.GetDuration("thermostat.debounce_window")
	opts.LongPressAfter = viper.GetDuration("thermostat.long_press_after")
	opts.AwakeBudget = viper.GetDuration("thermostat.awake_budget")
	opts.JoinTimeout = viper.GetDuration("thermostat.join_timeout")
	opts.SetpointStepC = viper.GetFloat64("thermostat.setpoint_step")
	opts.APSSID = viper.GetString("provisioning.ssid")
	opts.APPassword = viper.GetString("provisioning.password")
	opts.WakePin = viper.GetInt("pins.button_mode")
	return opts
}

// waitForShutdown listens for termination signals, stops the service loop
// and drains the live route set.
func waitForShutdown(cancel context.CancelFunc, loopDone <-chan struct{}, sw *server.Switcher, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Infow("shutting down...")
		cancel()
		<-loopDone
	case <-loopDone:
		// The loop already halted or rebooted; nothing left to serve.
	}

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := sw.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
