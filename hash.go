// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import (
	"crypto/sha1"

	"github.com/entropic-labs/csprng/internal/sha1mix"
)

// hasher adapts internal/sha1mix to the incremental per-block update the
// mixer needs (mixBlock), which never appends length-suffix padding. The
// one-shot full digest, hashBuffer, is a plain function over crypto/sha1
// and does not use hasher. The 160-bit,
// 64-byte-block hash primitive is fixed at SHA-1; it is not tunable.
type hasher struct {
	state sha1mix.State
}

func newHasher() hasher {
	return hasher{state: sha1mix.NewState()}
}

// hashBuffer computes the full SHA-1 digest of an arbitrary byte range.
func hashBuffer(buf []byte) [digestLen]byte {
	d := sha1.Sum(buf)
	return d
}

// mixBlock treats block as one 64-byte compression input, advances h's
// internal state, and overwrites block[:digestLen] with the resulting
// chaining value. It returns a burn-cost hint used to size the
// stack-scrubbing pass.
func (h *hasher) mixBlock(block *[blockLen]byte) int {
	burn := h.state.MixBlock(block)
	return burn
}

// burnStack clears n bytes of scratch residue. On real libgcrypt this walks
// the C stack; Go's runtime gives no such hook, so this clears the
// heap-allocated scratch buffers the caller hands it instead: the
// practical equivalent available to a garbage-collected runtime.
func burnStack(scratch []byte, n int) {
	if n > len(scratch) {
		n = len(scratch)
	}
	for i := 0; i < n; i++ {
		scratch[i] = 0
	}
}
