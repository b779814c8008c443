package control

import (
	"testing"

	"thermostat_controller"
)

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory()
	if got := h.ReadOrdered(); len(got) != 0 {
		t.Fatalf("empty ring returned %d samples", len(got))
	}
	if h.Filled() || h.Index() != 0 {
		t.Fatalf("empty ring: filled=%v index=%d", h.Filled(), h.Index())
	}
}

func TestHistoryPartialFill(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		h.Append(float64(i))
	}
	got := h.ReadOrdered()
	if len(got) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(got))
	}
	for i, v := range got {
		if v != float64(i) {
			t.Fatalf("sample %d = %v, want %v", i, v, float64(i))
		}
	}
	if h.Filled() {
		t.Fatalf("ring reported filled before wrapping")
	}
}

func TestHistoryExactCapacity(t *testing.T) {
	h := NewHistory()
	for i := 0; i < HistorySize; i++ {
		h.Append(float64(i))
	}
	if !h.Filled() {
		t.Fatalf("expected filled=true after %d appends", HistorySize)
	}
	if h.Index() != 0 {
		t.Fatalf("expected index=0 after wrap, got %d", h.Index())
	}
	got := h.ReadOrdered()
	if len(got) != HistorySize {
		t.Fatalf("expected %d samples, got %d", HistorySize, len(got))
	}
	if got[0] != 0 || got[HistorySize-1] != float64(HistorySize-1) {
		t.Fatalf("order wrong: first=%v last=%v", got[0], got[HistorySize-1])
	}
}

func TestHistoryOverfillKeepsNewest(t *testing.T) {
	const k = 7
	h := NewHistory()
	for i := 0; i < HistorySize+k; i++ {
		h.Append(float64(i))
	}
	got := h.ReadOrdered()
	if len(got) != HistorySize {
		t.Fatalf("expected %d samples, got %d", HistorySize, len(got))
	}
	// Oldest surviving sample is the k-th inserted one.
	for i, v := range got {
		want := float64(k + i)
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestHistoryRestoreRoundTrip(t *testing.T) {
	h := NewHistory()
	h.Append(20.5)
	h.Append(20.75)
	h.Append(thermostat_controller.MissingSample)

	blob, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Simulated restart: a fresh ring restored from the persisted parts.
	h2 := NewHistory()
	if err := h2.Restore(blob, h.Index(), h.Filled()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	a, b := h.ReadOrdered(), h2.ReadOrdered()
	if len(a) != len(b) {
		t.Fatalf("restored length %d, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("restored sample %d = %v, want %v", i, b[i], a[i])
		}
	}
}

func TestHistoryRestoreWrongLength(t *testing.T) {
	h := NewHistory()
	if err := h.Restore(make([]byte, 17), 0, false); err == nil {
		t.Fatalf("expected error for wrong blob length")
	}
}

func TestHistoryRestoreCursorOutOfRange(t *testing.T) {
	h := NewHistory()
	blob, _ := NewHistory().MarshalBinary()
	for _, idx := range []int{-1, HistorySize + 1, 9999} {
		if err := h.Restore(blob, idx, false); err == nil {
			t.Fatalf("expected error for cursor %d", idx)
		}
	}
}

func TestHistoryRestoreWrappedCursorNormalizes(t *testing.T) {
	h := NewHistory()
	blob, _ := NewHistory().MarshalBinary()
	if err := h.Restore(blob, HistorySize, false); err != nil {
		t.Fatalf("restore at wrap point: %v", err)
	}
	if h.Index() != 0 || !h.Filled() {
		t.Fatalf("wrap point should normalize to index=0 filled=true, got index=%d filled=%v", h.Index(), h.Filled())
	}
}
