// Package protocol defines the vendor-agnostic contract for IR code
// formats and conversion between them.
//
// A Protocol maps between a vendor's string code representation and the
// raw signal form (internal/signal). Conversion between any two formats is
// decode-then-encode through the raw form, so protocols never need to know
// about each other.
package protocol

import (
	"fmt"

	"github.com/MicaelJarniac/ir-utils/internal/signal"
)

// Protocol converts between a vendor code string and raw signal timings.
type Protocol interface {
	// Name returns the registry name, lowercase.
	Name() string
	// Decode parses a vendor code into raw timings.
	Decode(code string) (signal.Signal, error)
	// Encode renders raw timings as a vendor code.
	Encode(sig signal.Signal) (string, error)
}

// Convert re-encodes a code from one format to another through the raw
// signal form.
func Convert(from, to Protocol, code string) (string, error) {
	sig, err := from.Decode(code)
	if err != nil {
		return "", fmt.Errorf("decode %s code: %w", from.Name(), err)
	}
	out, err := to.Encode(sig)
	if err != nil {
		return "", fmt.Errorf("encode %s code: %w", to.Name(), err)
	}
	return out, nil
}
