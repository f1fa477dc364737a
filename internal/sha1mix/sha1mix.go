// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sha1mix implements the raw SHA-1 compression function with its
// chaining value exposed, rather than the padded, one-shot digest that
// crypto/sha1 provides.
//
// The entropy pool mixer needs to run the compression function once per
// 64-byte window and read back the resulting 20-byte chaining value without
// ever appending the length-suffix padding a normal digest would add; the
// standard library's hash.Hash interface has no way to do that, so this
// package keeps its own minimal state.
package sha1mix

const (
	// BlockLen is the number of bytes absorbed by one compression round.
	BlockLen = 64
	// DigestLen is the width of the chaining value in bytes.
	DigestLen = 20
)

const (
	k0 uint32 = 0x5a827999
	k1 uint32 = 0x6ed9eba1
	k2 uint32 = 0x8f1bbcdc
	k3 uint32 = 0xca62c1d6
)

// State is the 160-bit chaining value carried across successive MixBlock
// calls. The zero value is not valid; use NewState.
type State struct {
	h [5]uint32
}

// NewState returns a State initialized to the standard SHA-1 IV.
func NewState() State {
	return State{h: [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}}
}

// MixBlock treats block as a single 64-byte compression input, advances the
// chaining value, and overwrites block[:DigestLen] with the resulting
// 20-byte state. It returns a burn-cost hint: the number of scratch bytes an
// adapter should scrub after the call.
func (s *State) MixBlock(block *[BlockLen]byte) int {
	var w [80]uint32
	for i := range 16 {
		o := i * 4
		w[i] = uint32(block[o])<<24 | uint32(block[o+1])<<16 | uint32(block[o+2])<<8 | uint32(block[o+3])
	}
	for i := 16; i < 80; i++ {
		w[i] = rotl(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]
	for i := 0; i < 20; i++ {
		t := rotl(a, 5) + ((b & c) | (^b & d)) + e + k0 + w[i]
		e, d, c, b, a = d, c, rotl(b, 30), a, t
	}
	for i := 20; i < 40; i++ {
		t := rotl(a, 5) + (b ^ c ^ d) + e + k1 + w[i]
		e, d, c, b, a = d, c, rotl(b, 30), a, t
	}
	for i := 40; i < 60; i++ {
		t := rotl(a, 5) + ((b & c) | (b & d) | (c & d)) + e + k2 + w[i]
		e, d, c, b, a = d, c, rotl(b, 30), a, t
	}
	for i := 60; i < 80; i++ {
		t := rotl(a, 5) + (b ^ c ^ d) + e + k3 + w[i]
		e, d, c, b, a = d, c, rotl(b, 30), a, t
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e

	putBE32(block[0:4], s.h[0])
	putBE32(block[4:8], s.h[1])
	putBE32(block[8:12], s.h[2])
	putBE32(block[12:16], s.h[3])
	putBE32(block[16:20], s.h[4])

	for i := range w {
		w[i] = 0
	}
	return len(w) * 4
}

func rotl(v uint32, n uint) uint32 {
	return v<<n | v>>(32-n)
}

func putBE32(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}
