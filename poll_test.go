// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import "testing"

func TestRandomPollUsesSlowGatherAtStrongQuality(t *testing.T) {
	p, g := newFilledPool(0x77)
	p.fullInit()
	p.randomPoll()
	if g.calls != 1 {
		t.Fatalf("randomPoll must invoke the slow gather capability exactly once, got %d calls", g.calls)
	}
	if p.stats.slowpolls != 1 {
		t.Fatalf("slowpolls stat = %d, want 1", p.stats.slowpolls)
	}
}

func TestReadRandomSourcePanicsWithoutSlowGather(t *testing.T) {
	p := NewPool()
	p.fullInit()
	p.slowGather = nil
	defer func() {
		if recover() == nil {
			t.Fatalf("readRandomSource must panic when no SlowGather is configured")
		}
	}()
	p.readRandomSource(OriginSlowPoll, 16, Strong)
}

func TestDoFastPollNeverCreditsFill(t *testing.T) {
	p, _ := newFilledPool(0x01)
	p.fullInit()
	p.doFastPoll()
	if p.poolFilled {
		t.Fatalf("doFastPoll must never set poolFilled on its own")
	}
	if p.stats.fastpolls != 1 {
		t.Fatalf("fastpolls stat = %d, want 1", p.stats.fastpolls)
	}
}

func TestFastPollNoopBeforeFullInit(t *testing.T) {
	p := NewPool()
	p.FastPoll()
	if p.fullInitDone {
		t.Fatalf("FastPoll must not itself trigger fullInit")
	}
}
