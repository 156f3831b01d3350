package signal

import (
	"encoding/binary"
	"fmt"
	"time"
)

// MaxMicros is the largest duration, in microseconds, that fits the uint16
// wire representation shared by the supported vendor formats.
const MaxMicros = 0xFFFF

// Signal is a raw IR signal: alternating mark/space durations, with the
// first entry belonging to a mark (high state).
type Signal []time.Duration

// Micros converts a duration to whole microseconds, truncating any
// sub-microsecond remainder.
func Micros(d time.Duration) int64 {
	return int64(d / time.Microsecond)
}

// FromMicros builds a Signal from microsecond values.
func FromMicros(us []int64) Signal {
	sig := make(Signal, len(us))
	for i, u := range us {
		sig[i] = time.Duration(u) * time.Microsecond
	}
	return sig
}

// MicrosSlice returns the signal's durations as whole microseconds.
func (s Signal) MicrosSlice() []int64 {
	us := make([]int64, len(s))
	for i, d := range s {
		us[i] = Micros(d)
	}
	return us
}

// RangeError reports a duration outside the encodable 0..65535 µs range.
// Durations are never silently truncated to uint16.
type RangeError struct {
	Index    int
	Duration time.Duration
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("duration out of range at index %d: %s (must be 0..%dµs)",
		e.Index, e.Duration, MaxMicros)
}

// Validate checks that every duration fits the uint16 microsecond wire
// range. Returns a *RangeError for the first offending entry.
func (s Signal) Validate() error {
	for i, d := range s {
		us := Micros(d)
		if us < 0 || us > MaxMicros {
			return &RangeError{Index: i, Duration: d}
		}
	}
	return nil
}

// CanonicalBytes serializes the signal as a little-endian uint16 stream of
// microsecond durations. This is the ONLY serialization used for content
// hashing, and doubles as the Tuya pre-compression payload.
func (s Signal) CanonicalBytes() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 2*len(s))
	for i, d := range s {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(Micros(d)))
	}
	return out, nil
}

// FromCanonicalBytes parses a little-endian uint16 microsecond stream.
// The payload must have an even byte count; a trailing odd byte means the
// stream is corrupt.
func FromCanonicalBytes(payload []byte) (Signal, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("odd byte count in signal payload: %d", len(payload))
	}
	sig := make(Signal, len(payload)/2)
	for i := range sig {
		us := binary.LittleEndian.Uint16(payload[2*i:])
		sig[i] = time.Duration(us) * time.Microsecond
	}
	return sig, nil
}

// Equal reports whether two signals have identical durations.
func (s Signal) Equal(other Signal) bool {
	if len(s) != len(other) {
		return false
	}
	for i, d := range s {
		if d != other[i] {
			return false
		}
	}
	return true
}
