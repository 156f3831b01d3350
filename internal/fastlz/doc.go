// Package fastlz implements the FastLZ-derived "Tuya stream" compression
// used by Tuya IR blaster codes.
//
// The stream is a sequence of blocks, each introduced by a header byte
// whose top 3 bits are a length field and bottom 5 bits a distance field:
//
//   - length == 0: literal block of distance+1 bytes (1..32) follows.
//   - length != 0: length-distance pair. length 7 pulls one extra length
//     byte; the effective match length is length+2 (3..264). The distance
//     field is extended by one byte ((dist5<<8 | next) + 1, 1..8192) and
//     references previously decompressed output, with overlap allowed.
//
// Compression supports four levels, from literal copy-over to an optimal
// shortest-path parse. Output is byte-for-byte compatible with the
// reference Tuya blaster tooling at every level.
package fastlz
