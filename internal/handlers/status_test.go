package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/service"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	temp := 20.25
	mon := &mockMonitoring{status: thermostat_controller.DeviceStatus{
		Mode:         thermostat_controller.ModeNormal,
		SetpointC:    21,
		HysteresisC:  0.5,
		TemperatureC: &temp,
		HeatState:    thermostat_controller.Heating,
		UpdatedAt:    time.Now().UTC(),
	}}
	s := &service.Service{Monitoring: mon}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var st thermostat_controller.DeviceStatus
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if st.Mode != thermostat_controller.ModeNormal || st.SetpointC != 21 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.TemperatureC == nil || *st.TemperatureC != 20.25 {
		t.Fatalf("temperature missing/invalid: %+v", st.TemperatureC)
	}
	if st.HeatState != thermostat_controller.Heating {
		t.Fatalf("heat state = %v, want heating", st.HeatState)
	}
}

func TestStatusHandler_NullTemperature(t *testing.T) {
	mon := &mockMonitoring{status: thermostat_controller.DeviceStatus{
		Mode:      thermostat_controller.ModeNormal,
		HeatState: thermostat_controller.OnTarget,
	}}
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["temperature_c"]) != "null" {
		t.Fatalf("temperature_c = %s, want null", raw["temperature_c"])
	}
}

func TestConfigHandler_PartialUpdate(t *testing.T) {
	thermo := &mockThermostat{cfg: thermostat_controller.ThermostatConfig{SetpointC: 21, HysteresisC: 0.5}}
	s := &service.Service{Thermostat: thermo}
	r := newTestRouter(s)

	body, _ := json.Marshal(map[string]float64{"setpoint_c": 22.5})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/config", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("config status=%d, body=%s", w.Code, w.Body.String())
	}
	if thermo.updateCalls != 1 {
		t.Fatalf("Update called %d times, want 1", thermo.updateCalls)
	}
	if thermo.lastUpdate.SetpointC == nil || *thermo.lastUpdate.SetpointC != 22.5 {
		t.Fatalf("setpoint param missing/invalid: %+v", thermo.lastUpdate)
	}
	if thermo.lastUpdate.HysteresisC != nil {
		t.Fatalf("hysteresis param should be nil for a partial update")
	}
	if thermo.lastUpdate.Source != "api" {
		t.Fatalf("source = %q, want api", thermo.lastUpdate.Source)
	}

	var resp struct {
		SetpointC   float64 `json:"setpoint_c"`
		HysteresisC float64 `json:"hysteresis_c"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.SetpointC != 22.5 || resp.HysteresisC != 0.5 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestConfigHandler_InvalidBody(t *testing.T) {
	thermo := &mockThermostat{}
	r := newTestRouter(&service.Service{Thermostat: thermo})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/config", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid body, got %d", w.Code)
	}
	if thermo.updateCalls != 0 {
		t.Fatalf("Update called for an invalid body")
	}
}

func TestHistoryHandler_NullsForMissing(t *testing.T) {
	hist := &mockHistory{samples: []float64{20.0, thermostat_controller.MissingSample, 20.5}}
	r := newTestRouter(&service.Service{History: hist})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int        `json:"count"`
		Samples []*float64 `json:"samples"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 3 || len(out.Samples) != 3 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Samples[0] == nil || *out.Samples[0] != 20.0 {
		t.Fatalf("samples[0] = %v, want 20.0", out.Samples[0])
	}
	if out.Samples[1] != nil {
		t.Fatalf("samples[1] = %v, want null", *out.Samples[1])
	}
}

func TestNormalRoutesExcludeProvisioning(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/provision", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("provision on normal routes: status=%d, want 404", w.Code)
	}
}
