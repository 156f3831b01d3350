package signal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSignal is the domain prefix for signal content hashing.
// Version suffix enables future algorithm migration.
const DomainSignal = "ir-utils/signal/v1"

// Hash computes the content-addressed identity of a signal.
// Format: SHA256(domain + 0x00 + canonical bytes), hex encoded.
// The null byte separator prevents domain/data boundary ambiguity.
//
// The hash depends only on the microsecond durations, so the same signal
// stored under different vendor formats hashes identically. The library
// store uses this for cross-format duplicate detection.
func Hash(s Signal) (string, error) {
	payload, err := s.CanonicalBytes()
	if err != nil {
		return "", fmt.Errorf("signal hash: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainSignal))
	h.Write([]byte{0x00})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when the signal is known to be valid.
func MustHash(s Signal) string {
	id, err := Hash(s)
	if err != nil {
		panic(err)
	}
	return id
}
