// Package testutil provides deterministic generators for round-trip tests.
// Callers pass a seeded *rand.Rand so failures reproduce exactly.
package testutil

import (
	"math/rand"
	"time"

	"github.com/MicaelJarniac/ir-utils/internal/signal"
)

// RandomSignal returns a signal of up to maxLen durations in the encodable
// 0..65535µs range.
func RandomSignal(r *rand.Rand, maxLen int) signal.Signal {
	n := r.Intn(maxLen + 1)
	sig := make(signal.Signal, n)
	for i := range sig {
		sig[i] = time.Duration(r.Intn(signal.MaxMicros+1)) * time.Microsecond
	}
	return sig
}

// RandomBytes returns n random bytes.
func RandomBytes(r *rand.Rand, n int) []byte {
	data := make([]byte, n)
	r.Read(data)
	return data
}

// RepetitiveBytes returns n bytes built from short repeated runs drawn
// from a small alphabet, so compressors find plenty of matches.
func RepetitiveBytes(r *rand.Rand, n int) []byte {
	data := make([]byte, 0, n)
	for len(data) < n {
		run := 1 + r.Intn(12)
		b := byte(r.Intn(4))
		for i := 0; i < run && len(data) < n; i++ {
			data = append(data, b)
		}
	}
	return data
}
