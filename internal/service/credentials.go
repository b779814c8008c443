package service

import (
	"context"
	"errors"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/repository"
)

// Settings keys for the Wi-Fi station credentials.
const (
	keyWiFiSSID     = "wifi.ssid"
	keyWiFiPassword = "wifi.password"
)

var errEmptySSID = errors.New("ssid must not be empty")

// CredentialsService persists the station credentials captured by the
// provisioning route. The stored password is plaintext; encrypting it is an
// explicit non-goal of this device.
type CredentialsService struct {
	settings repository.Settings
	events   repository.EventRepo
}

func NewCredentialsService(settings repository.Settings, events repository.EventRepo) *CredentialsService {
	return &CredentialsService{settings: settings, events: events}
}

// Load returns the stored credentials; an empty SSID means unprovisioned.
func (s *CredentialsService) Load(ctx context.Context) (thermostat_controller.WiFiCredentials, error) {
	ssid, err := s.settings.GetString(ctx, keyWiFiSSID, "")
	if err != nil {
		return thermostat_controller.WiFiCredentials{}, err
	}
	password, err := s.settings.GetString(ctx, keyWiFiPassword, "")
	if err != nil {
		return thermostat_controller.WiFiCredentials{}, err
	}
	return thermostat_controller.WiFiCredentials{SSID: ssid, Password: password}, nil
}

// Save persists new credentials and logs the provisioning. The caller is
// responsible for the restart that realizes the mode switch.
func (s *CredentialsService) Save(ctx context.Context, c thermostat_controller.WiFiCredentials) error {
	if c.SSID == "" {
		return errEmptySSID
	}
	if err := s.settings.PutString(ctx, keyWiFiSSID, c.SSID); err != nil {
		return err
	}
	if err := s.settings.PutString(ctx, keyWiFiPassword, c.Password); err != nil {
		return err
	}
	_ = s.events.Append(ctx, thermostat_controller.DeviceEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        EventProvisioned,
		Description: "network credentials saved",
		Metadata:    map[string]any{"ssid": c.SSID},
	})
	return nil
}
