// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

// mix applies one full sliding-window pass over a poolSize-byte pool backed
// by a poolSize+blockLen-byte buffer (the trailing blockLen bytes are
// scratch space). Precondition: p.mu held.
//
//	         <................600...............>   <.64.>
//	pool    |------------------------------------| |------|
//	         <20><.24.>                      <20>
//
// Each 64-byte window overlaps the previous one by 44 bytes (it advances by
// digestLen, not blockLen), so every pool byte influences and is influenced
// by several adjacent windows. isRnd selects whether the failsafe digest is
// applied/refreshed. It only ever guards rndpool, never keypool.
func (p *Pool) mix(pool []byte, isRnd bool) {
	scratch := pool[poolSize : poolSize+blockLen]
	var block [blockLen]byte
	h := newHasher()
	burn := 0

	// First window: last digestLen bytes of the pool, then the first
	// blockLen-digestLen bytes.
	copy(block[:digestLen], pool[poolSize-digestLen:poolSize])
	copy(block[digestLen:], pool[:blockLen-digestLen])
	burn = h.mixBlock(&block)
	copy(pool[:digestLen], block[:digestLen])

	if isRnd && p.failsafeDigestValid {
		for i := 0; i < digestLen; i++ {
			pool[i] ^= p.failsafeDigest[i]
		}
	}

	for n := 1; n < numBlocks; n++ {
		start := n * digestLen
		readWrapped(pool[:poolSize], start, block[:])
		burn = h.mixBlock(&block)
		copy(pool[start:start+digestLen], block[:digestLen])
	}

	if isRnd {
		p.failsafeDigest = hashBuffer(pool[:poolSize])
		p.failsafeDigestValid = true
	}

	burnStack(scratch, burn)
	for i := range block {
		block[i] = 0
	}
}

// readWrapped copies blockLen bytes from pool starting at start, wrapping
// around the end of the poolSize-byte region.
func readWrapped(pool []byte, start int, dst []byte) {
	if start+blockLen <= len(pool) {
		copy(dst, pool[start:start+blockLen])
		return
	}
	n := copy(dst, pool[start:])
	copy(dst[n:], pool[:blockLen-n])
}
