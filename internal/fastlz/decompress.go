package fastlz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated indicates the stream ended inside a block.
var ErrTruncated = errors.New("unexpected end of stream")

// DistanceError reports a back-reference pointing before the start of the
// decompressed output. No valid encoder produces such a stream.
type DistanceError struct {
	Distance int
	Written  int
}

func (e *DistanceError) Error() string {
	return fmt.Sprintf("invalid distance %d with only %d byte(s) written", e.Distance, e.Written)
}

// Decompress reads a Tuya stream and returns the decompressed byte string.
// The stream is consumed until EOF.
func Decompress(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	var out []byte

	for {
		header, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}

		length := int(header >> 5)
		distance := int(header & 0b11111)

		if length == 0 {
			// literal block
			length = distance + 1
			block := make([]byte, length)
			if _, err := io.ReadFull(br, block); err != nil {
				return nil, ErrTruncated
			}
			out = append(out, block...)
			continue
		}

		// length-distance pair block
		if length == 7 {
			extra, err := br.ReadByte()
			if err != nil {
				return nil, ErrTruncated
			}
			length += int(extra)
		}
		length += 2

		low, err := br.ReadByte()
		if err != nil {
			return nil, ErrTruncated
		}
		distance = (distance<<8 | int(low)) + 1
		if distance > len(out) {
			return nil, &DistanceError{Distance: distance, Written: len(out)}
		}

		// Byte-at-a-time copy so overlapping references repeat already
		// copied output (distance 1, length n emits one byte n times).
		start := len(out) - distance
		for i := 0; i < length; i++ {
			out = append(out, out[start+i])
		}
	}
}
