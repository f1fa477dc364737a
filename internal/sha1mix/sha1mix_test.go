// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sha1mix

import "testing"

func TestMixBlockDeterministic(t *testing.T) {
	var a, b [BlockLen]byte
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	sa, sb := NewState(), NewState()
	sa.MixBlock(&a)
	sb.MixBlock(&b)
	if a != b {
		t.Fatalf("MixBlock is not a pure function of (state, block): %x != %x", a[:DigestLen], b[:DigestLen])
	}
	if sa != sb {
		t.Fatalf("chaining values diverged for identical inputs")
	}
}

func TestMixBlockChangesOnDifferentInput(t *testing.T) {
	var a, b [BlockLen]byte
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	b[63] ^= 1
	sa, sb := NewState(), NewState()
	sa.MixBlock(&a)
	sb.MixBlock(&b)
	if a == b {
		t.Fatalf("a single-bit input difference did not change the output")
	}
}

func TestMixBlockChangesOnDifferentState(t *testing.T) {
	var a, b [BlockLen]byte
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	sa := NewState()
	sb := NewState()
	sb.h[0] ^= 1
	sa.MixBlock(&a)
	sb.MixBlock(&b)
	if a == b {
		t.Fatalf("a different chaining value did not change the output")
	}
}

func TestMixBlockBurnCost(t *testing.T) {
	var block [BlockLen]byte
	s := NewState()
	if got := s.MixBlock(&block); got <= 0 {
		t.Fatalf("expected a positive burn-cost hint, got %d", got)
	}
}
