// Package broadlink implements the Broadlink remote code packet format.
//
// A packet is: transport type byte (0x26 for IR), repeat count, uint16 LE
// payload length, then pulse bytes. A pulse byte of 0x00 escapes a uint16
// BE wide value. Pulse values count ticks of 8192/269 µs (~30.46µs). The
// payload ends with a trailer pulse that decodes above the 65535µs signal
// range. Codes are exchanged base64 encoded, e.g. in SmartIR device files.
package broadlink

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MicaelJarniac/ir-utils/internal/signal"
)

// Name is the registry name for this protocol.
const Name = "broadlink"

// irTransport identifies an IR payload. RF transports (0xb2, 0xd7) are not
// supported.
const irTransport = 0x26

// tickNumerator/tickDenominator define the pulse tick scale: one tick is
// 8192/269 µs.
const (
	tickNumerator   = 8192
	tickDenominator = 269
)

// Trailer pulse appended by Encode, as a wide value. 0x0d05 ticks decode
// to ~101.5ms, beyond the signal range, terminating the read.
const trailerTicks = 0x0d05

// Protocol encodes and decodes Broadlink IR codes.
type Protocol struct {
	// Repeat is the packet repeat count used by Encode.
	Repeat byte
	// Log receives diagnostics such as ignored trailing bytes.
	Log zerolog.Logger
}

// New returns a Protocol with no repeats and logging disabled.
func New() *Protocol {
	return &Protocol{Log: zerolog.Nop()}
}

// Name implements protocol.Protocol.
func (p *Protocol) Name() string { return Name }

// Decode parses a base64-encoded Broadlink packet into raw timings.
func (p *Protocol) Decode(code string) (signal.Signal, error) {
	packet, err := base64.StdEncoding.DecodeString(stripWhitespace(code))
	if err != nil {
		return nil, fmt.Errorf("broadlink decode: %w", err)
	}
	return p.DecodePacket(packet)
}

// DecodePacket parses a raw Broadlink packet into raw timings.
//
// Reading stops at the trailer pulse. Plain zero padding after the trailer
// is expected (packets are padded for transport encryption); any nonzero
// leftover bytes are ignored with a warning.
func (p *Protocol) DecodePacket(packet []byte) (signal.Signal, error) {
	if len(packet) < 4 {
		return nil, fmt.Errorf("broadlink decode: packet too short: %d byte(s)", len(packet))
	}
	if packet[0] != irTransport {
		return nil, fmt.Errorf("broadlink decode: unsupported transport type 0x%02x (IR is 0x%02x)",
			packet[0], irTransport)
	}

	length := int(binary.LittleEndian.Uint16(packet[2:4]))
	if length < 3 {
		return nil, fmt.Errorf("broadlink decode: payload length %d below trailer size", length)
	}

	payload := packet[4:]
	limit := length
	if limit > len(payload) {
		limit = len(payload)
	}

	var sig signal.Signal
	i := 0
	for i < limit {
		ticks := int(payload[i])
		i++
		if ticks == 0 {
			if i+2 > len(payload) {
				return nil, fmt.Errorf("broadlink decode: truncated wide pulse at offset %d", i)
			}
			ticks = int(binary.BigEndian.Uint16(payload[i : i+2]))
			i += 2
		}

		us := int64(math.Round(float64(ticks) * tickNumerator / tickDenominator))
		if us > signal.MaxMicros {
			// trailer: end of signal
			break
		}
		sig = append(sig, time.Duration(us)*time.Microsecond)
	}

	if rest := payload[i:]; anyNonzero(rest) {
		p.Log.Warn().Hex("data", rest).Msg("ignoring extra data after trailer")
	}
	return sig, nil
}

// Encode renders the signal as a base64-encoded Broadlink packet.
func (p *Protocol) Encode(sig signal.Signal) (string, error) {
	packet, err := p.EncodePacket(sig)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(packet), nil
}

// EncodePacket renders the signal as a raw Broadlink packet.
//
// The tick scale cannot represent durations below one tick; such durations
// are an error rather than a silent zero, since a 0x00 pulse byte is the
// wide-value escape. The packet is zero-padded to a 16-byte multiple as
// the hardware requires.
func (p *Protocol) EncodePacket(sig signal.Signal) ([]byte, error) {
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("broadlink encode: %w", err)
	}

	var body []byte
	for i, d := range sig {
		ticks := int(math.Round(float64(signal.Micros(d)) * tickDenominator / tickNumerator))
		switch {
		case ticks <= 0:
			return nil, fmt.Errorf("broadlink encode: duration %s at index %d below one tick", d, i)
		case ticks < 0x100:
			body = append(body, byte(ticks))
		default:
			body = append(body, 0x00, byte(ticks>>8), byte(ticks))
		}
	}
	body = append(body, 0x00, trailerTicks>>8, trailerTicks&0xFF)

	if len(body) > 0xFFFF {
		return nil, fmt.Errorf("broadlink encode: payload too long: %d byte(s)", len(body))
	}

	packet := make([]byte, 4, 4+len(body))
	packet[0] = irTransport
	packet[1] = p.Repeat
	binary.LittleEndian.PutUint16(packet[2:4], uint16(len(body)))
	packet = append(packet, body...)

	// pad to 16-byte boundary
	if rem := len(packet) % 16; rem != 0 {
		packet = append(packet, make([]byte, 16-rem)...)
	}
	return packet, nil
}

func anyNonzero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return true
		}
	}
	return false
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
