// Package tuya implements the Tuya IR blaster code format.
//
// A Tuya code is the raw signal's little-endian uint16 microsecond stream,
// compressed as a Tuya stream (internal/fastlz) and base64 encoded. Codes
// produced here drive ZS06/ZS08/TS1201/UFO-R11 class blasters.
package tuya

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MicaelJarniac/ir-utils/internal/fastlz"
	"github.com/MicaelJarniac/ir-utils/internal/signal"
)

// Name is the registry name for this protocol.
const Name = "tuya"

// Protocol encodes and decodes Tuya IR codes.
type Protocol struct {
	// Level is the compression level used by Encode.
	Level fastlz.Level
}

// New returns a Protocol with the default compression level.
func New() *Protocol {
	return &Protocol{Level: fastlz.DefaultLevel}
}

// Name implements protocol.Protocol.
func (p *Protocol) Name() string { return Name }

// Encode renders the signal as a Tuya code string. Every duration must fit
// the 0..65535µs wire range.
func (p *Protocol) Encode(sig signal.Signal) (string, error) {
	payload, err := sig.CanonicalBytes()
	if err != nil {
		return "", fmt.Errorf("tuya encode: %w", err)
	}

	var compressed bytes.Buffer
	if err := fastlz.Compress(&compressed, payload, p.Level); err != nil {
		return "", fmt.Errorf("tuya encode: %w", err)
	}

	return base64.StdEncoding.EncodeToString(compressed.Bytes()), nil
}

// Decode parses a Tuya code string into raw timings. Whitespace embedded
// in the base64 text is tolerated; codes copied out of configs and chat
// logs often carry line breaks.
func (p *Protocol) Decode(code string) (signal.Signal, error) {
	compressed, err := base64.StdEncoding.DecodeString(stripWhitespace(code))
	if err != nil {
		return nil, fmt.Errorf("tuya decode: %w", err)
	}

	payload, err := fastlz.Decompress(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("tuya decode: %w", err)
	}

	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("tuya decode: garbage in decompressed payload: %x", payload)
	}
	sig, err := signal.FromCanonicalBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("tuya decode: %w", err)
	}
	return sig, nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
