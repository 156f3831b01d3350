package fastlz

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Level selects the compression effort.
type Level int

const (
	// LevelNone copies data over in literal blocks (~3.1% overhead).
	LevelNone Level = iota
	// LevelFast eagerly uses the first match found (linear scan).
	LevelFast
	// LevelBalanced eagerly uses the best match found.
	LevelBalanced
	// LevelOptimal computes an optimal parse (O(n^3) worst case).
	LevelOptimal
)

// DefaultLevel matches the reference tooling's default.
const DefaultLevel = LevelBalanced

const (
	windowSize = 1 << 13 // back-reference reach
	maxMatch   = 255 + 9 // longest encodable match
	maxLiteral = 32      // longest literal block
	minMatch   = 3       // shortest profitable match
)

// Valid reports whether l is an implemented compression level.
func (l Level) Valid() bool {
	return l >= LevelNone && l <= LevelOptimal
}

// Compress writes data to w as a Tuya stream at the given level.
// Output is byte-identical per level to the encoder Tuya devices accept.
func Compress(w io.Writer, data []byte, level Level) error {
	if !level.Valid() {
		return fmt.Errorf("invalid compression level: %d", level)
	}

	var buf bytes.Buffer
	c := &compressor{data: data, out: &buf}

	switch level {
	case LevelNone:
		c.emitLiteralBlocks(data)
	case LevelFast:
		c.compressGreedy(c.firstMatch)
	case LevelBalanced:
		c.compressGreedy(c.bestMatch)
	case LevelOptimal:
		c.compressOptimal()
	}
	if c.err != nil {
		return c.err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}

type compressor struct {
	data   []byte
	out    *bytes.Buffer
	window *suffixWindow
	err    error
}

// matchLength returns how many bytes starting at pos repeat the bytes
// starting at start, capped at maxMatch and the end of the input.
func (c *compressor) matchLength(pos, start int) int {
	limit := len(c.data) - pos
	if limit > maxMatch {
		limit = maxMatch
	}
	length := 0
	for length < limit && c.data[pos+length] == c.data[start+length] {
		length++
	}
	return length
}

// firstMatch scans distances 1..window and returns the first match of at
// least minMatch bytes.
func (c *compressor) firstMatch(pos int) (length, distance int, ok bool) {
	limit := pos
	if limit > windowSize {
		limit = windowSize
	}
	for d := 1; d <= limit; d++ {
		if l := c.matchLength(pos, pos-d); l >= minMatch {
			return l, d, true
		}
	}
	return 0, 0, false
}

// bestMatch returns the longest match among the suffix-neighbor candidates,
// preferring smaller distances on ties.
func (c *compressor) bestMatch(pos int) (length, distance int, ok bool) {
	if c.window == nil {
		c.window = &suffixWindow{data: c.data}
	}
	bestLen, bestDist := 0, 0
	for _, d := range c.window.candidates(pos) {
		l := c.matchLength(pos, pos-d)
		if l > bestLen || (l == bestLen && bestLen > 0 && d < bestDist) {
			bestLen, bestDist = l, d
		}
	}
	if bestLen == 0 {
		return 0, 0, false
	}
	return bestLen, bestDist, true
}

// compressGreedy runs the greedy parse shared by LevelFast and
// LevelBalanced: take any match of at least minMatch bytes, otherwise
// extend the pending literal run.
func (c *compressor) compressGreedy(find func(int) (int, int, bool)) {
	blockStart, pos := 0, 0
	for pos < len(c.data) {
		if l, d, ok := find(pos); ok && l >= minMatch {
			c.emitLiteralBlocks(c.data[blockStart:pos])
			c.emitDistanceBlock(l, d)
			pos += l
			blockStart = pos
		} else {
			pos++
		}
	}
	c.emitLiteralBlocks(c.data[blockStart:])
}

// parseStep records the cheapest way to reach an output position:
// distance 0 means a literal block of the given length.
type parseStep struct {
	cost     int
	length   int
	distance int
	set      bool
}

// compressOptimal finds the cheapest block sequence as a shortest path over
// positions 0..len(data). Literal edges cost 1+length (length <= 32);
// match edges cost 2 bytes below length 9, 3 at or above.
func (c *compressor) compressOptimal() {
	steps := make([]parseStep, len(c.data)+1)
	steps[0].set = true

	putEdge := func(pos, cost, length, distance int) {
		npos := pos + length
		total := steps[pos].cost + cost
		if !steps[npos].set || total < steps[npos].cost {
			steps[npos] = parseStep{cost: total, length: length, distance: distance, set: true}
		}
	}

	for pos := 0; pos < len(c.data); pos++ {
		// Every position is reachable through length-1 literal edges,
		// so steps[pos] is always set here.
		if l, d, ok := c.bestMatch(pos); ok {
			for length := minMatch; length <= l; length++ {
				cost := 2
				if length >= 9 {
					cost = 3
				}
				putEdge(pos, cost, length, d)
			}
		}
		limit := len(c.data) - pos
		if limit > maxLiteral {
			limit = maxLiteral
		}
		for length := 1; length <= limit; length++ {
			putEdge(pos, 1+length, length, 0)
		}
	}

	// Reconstruct the path back to front, then emit in order.
	type block struct{ pos, length, distance int }
	var blocks []block
	pos := len(c.data)
	for pos > 0 {
		st := steps[pos]
		pos -= st.length
		blocks = append(blocks, block{pos, st.length, st.distance})
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if b.distance == 0 {
			c.emitLiteralBlock(c.data[b.pos : b.pos+b.length])
		} else {
			c.emitDistanceBlock(b.length, b.distance)
		}
	}
}

// emitLiteralBlocks splits data into literal blocks of at most maxLiteral
// bytes. Empty input emits nothing.
func (c *compressor) emitLiteralBlocks(data []byte) {
	for i := 0; i < len(data); i += maxLiteral {
		end := i + maxLiteral
		if end > len(data) {
			end = len(data)
		}
		c.emitLiteralBlock(data[i:end])
	}
}

func (c *compressor) emitLiteralBlock(block []byte) {
	if c.err != nil {
		return
	}
	if len(block) < 1 || len(block) > maxLiteral {
		c.err = fmt.Errorf("invalid literal block length: %d", len(block))
		return
	}
	c.out.WriteByte(byte(len(block) - 1))
	c.out.Write(block)
}

func (c *compressor) emitDistanceBlock(length, distance int) {
	if c.err != nil {
		return
	}
	distance--
	if distance < 0 || distance >= 1<<13 {
		c.err = fmt.Errorf("invalid distance: %d", distance+1)
		return
	}
	length -= 2
	if length <= 0 {
		c.err = fmt.Errorf("invalid match length: %d", length+2)
		return
	}

	var block []byte
	if length >= 7 {
		if length-7 >= 1<<8 {
			c.err = fmt.Errorf("invalid match length: %d", length+2)
			return
		}
		block = append(block, byte(length-7))
		length = 7
	}
	block = append([]byte{byte(length<<5 | distance>>8)}, block...)
	block = append(block, byte(distance&0xFF))
	c.out.Write(block)
}

// suffixWindow maintains window positions sorted by their suffix of the
// input, so match candidates for a position are its two lexicographic
// neighbors. A near-best heuristic; exhaustive search rarely beats it on
// IR payloads and never below the block cost difference.
type suffixWindow struct {
	data     []byte
	suffixes []int
	nextPos  int
}

// findIdx returns the insertion index for suffix n, after any equal entry.
func (w *suffixWindow) findIdx(n int) int {
	return sort.Search(len(w.suffixes), func(i int) bool {
		return bytes.Compare(w.data[w.suffixes[i]:], w.data[n:]) > 0
	})
}

// candidates inserts all positions up to and including pos, evicting
// positions that fell out of the window, and returns up to two match
// distances: the suffix successor first, then the predecessor.
func (w *suffixWindow) candidates(pos int) []int {
	var idx int
	for w.nextPos <= pos {
		if len(w.suffixes) == windowSize {
			evict := w.nextPos - windowSize
			// The equal entry sits just before the insertion point.
			i := w.findIdx(evict) - 1
			w.suffixes = append(w.suffixes[:i], w.suffixes[i+1:]...)
		}
		idx = w.findIdx(w.nextPos)
		w.suffixes = append(w.suffixes, 0)
		copy(w.suffixes[idx+1:], w.suffixes[idx:])
		w.suffixes[idx] = w.nextPos
		w.nextPos++
	}

	var distances []int
	for _, i := range []int{idx + 1, idx - 1} {
		if i >= 0 && i < len(w.suffixes) {
			distances = append(distances, pos-w.suffixes[i])
		}
	}
	return distances
}
