package control

import (
	"encoding/binary"
	"fmt"
	"math"

	"thermostat_controller"
)

// HistorySize is the fixed capacity of the temperature ring buffer: two
// minutes of 1 Hz samples.
const HistorySize = 120

// historyBlobLen is the length of the persisted sample blob in bytes.
const historyBlobLen = HistorySize * 8

// History is a fixed-capacity ring of temperature samples. The write cursor
// stays in [0, HistorySize); filled flips to true once the cursor has
// wrapped at least once. Not safe for concurrent use; the owner serializes
// access.
type History struct {
	samples [HistorySize]float64
	index   int
	filled  bool
}

// NewHistory returns an empty ring with every slot holding the missing
// sentinel.
func NewHistory() *History {
	h := &History{}
	h.Reset()
	return h
}

// Reset returns the ring to the empty state: all slots missing, cursor at
// zero, not filled.
func (h *History) Reset() {
	for i := range h.samples {
		h.samples[i] = thermostat_controller.MissingSample
	}
	h.index = 0
	h.filled = false
}

// Append writes the sample at the cursor and advances it, wrapping to zero
// and marking the ring filled at capacity.
func (h *History) Append(v float64) {
	h.samples[h.index] = v
	h.index++
	if h.index == HistorySize {
		h.index = 0
		h.filled = true
	}
}

// ReadOrdered returns up to HistorySize samples oldest first. Before the
// first wrap the valid range is [0, index); afterwards the full ring
// starting at the cursor.
func (h *History) ReadOrdered() []float64 {
	if !h.filled {
		out := make([]float64, h.index)
		copy(out, h.samples[:h.index])
		return out
	}
	out := make([]float64, 0, HistorySize)
	out = append(out, h.samples[h.index:]...)
	out = append(out, h.samples[:h.index]...)
	return out
}

// Index returns the current write cursor.
func (h *History) Index() int { return h.index }

// Filled reports whether the cursor has wrapped at least once.
func (h *History) Filled() bool { return h.filled }

// MarshalBinary encodes the raw sample slots as little-endian float64 bits.
// Cursor and filled flag are persisted separately by the owner.
func (h *History) MarshalBinary() ([]byte, error) {
	buf := make([]byte, historyBlobLen)
	for i, v := range h.samples {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf, nil
}

// Restore rebuilds the ring from a persisted blob plus cursor and filled
// flag. A blob of the wrong length or a cursor outside [0, HistorySize] is
// treated as corruption and returns an error; the caller resets to empty. A
// cursor equal to HistorySize is the just-wrapped position and normalizes to
// zero.
func (h *History) Restore(blob []byte, index int, filled bool) error {
	if len(blob) != historyBlobLen {
		return fmt.Errorf("history blob length %d, want %d", len(blob), historyBlobLen)
	}
	if index < 0 || index > HistorySize {
		return fmt.Errorf("history cursor %d out of range [0, %d]", index, HistorySize)
	}
	if index == HistorySize {
		index = 0
		filled = true
	}
	for i := range h.samples {
		h.samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	h.index = index
	h.filled = filled
	return nil
}
