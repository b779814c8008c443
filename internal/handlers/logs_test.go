package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thermostat_controller"
	"thermostat_controller/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []thermostat_controller.DeviceEvent{
		{EventID: "e1", OccurredAt: now, Type: "MODE_CHANGE", Description: "entered normal operation"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: "SLEEP", Description: "entering deep sleep"},
	}
	logs := &mockEventLog{events: events}
	r := newTestRouter(&service.Service{EventLog: logs})

	// Invalid 'from' → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=notatime", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Valid range and type; lowercase type is normalized to upper.
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=mode_change"
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, q, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                                 `json:"count"`
		Events []thermostat_controller.DeviceEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastFilter.Type != "MODE_CHANGE" {
		t.Fatalf("type filter = %q, want MODE_CHANGE", logs.lastFilter.Type)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?to=2026-08-15", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}

	wantDay := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	got := logs.lastFilter.To
	if !got.After(wantDay.Add(23 * time.Hour)) || !got.Before(wantDay.Add(24*time.Hour)) {
		t.Fatalf("'to' = %v, want end of 2026-08-15", got)
	}
}

func TestLogsHandler_InvertedRange(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2026-08-20&to=2026-08-10", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
}
