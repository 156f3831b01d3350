// Package signal provides the raw infrared signal representation shared by
// all protocol codecs.
//
// A Signal is a sequence of mark/space durations, starting with a mark
// (IR LED on). This package contains the representation, its canonical wire
// serialization, and content hashing only; vendor code formats live under
// internal/protocol. All other internal packages import signal; signal
// imports nothing internal, keeping it the foundational layer with no
// circular dependencies.
package signal
