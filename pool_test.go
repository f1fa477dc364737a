// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import "testing"

func TestNewPoolBasicInit(t *testing.T) {
	p := NewPool()
	if !p.basicInitDone {
		t.Fatalf("NewPool must run basicInit")
	}
	if p.fullInitDone {
		t.Fatalf("NewPool must defer fullInit")
	}
	if p.myPID != -1 {
		t.Fatalf("myPID = %d, want -1 before any extraction", p.myPID)
	}
}

func TestFullInitAllocatesBuffers(t *testing.T) {
	p := NewPool()
	p.fullInit()
	if len(p.rndpool) != poolSize+blockLen || len(p.keypool) != poolSize+blockLen {
		t.Fatalf("fullInit allocated wrong buffer sizes: rndpool=%d keypool=%d", len(p.rndpool), len(p.keypool))
	}
	if p.slowGather == nil || p.fastGather == nil {
		t.Fatalf("fullInit must resolve default gather capabilities")
	}
}

func TestFullInitIdempotent(t *testing.T) {
	p := NewPool()
	p.fullInit()
	rp := p.rndpool
	p.fullInit()
	if &rp[0] != &p.rndpool[0] {
		t.Fatalf("second fullInit call reallocated the pool buffers")
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("Default() must return the same Pool every call")
	}
}

func TestSetGatherBeforeFullInit(t *testing.T) {
	p := NewPool()
	g := &fixedSlowGather{fill: 0x42}
	p.SetSlowGather(g)
	p.fullInit()
	if p.slowGather != g {
		t.Fatalf("custom SlowGather was overwritten by fullInit's default")
	}
}

func TestCloseResetsStateAndReleases(t *testing.T) {
	p, g := newFilledPool(0x5a)
	buf := make([]byte, 16)
	p.Randomize(buf, Strong)
	if !p.poolFilled {
		t.Fatalf("pool should be filled after a successful Randomize call")
	}
	p.Close()
	if g.released == false {
		t.Fatalf("Close must call Release on the configured SlowGather")
	}
	if p.poolFilled || p.fullInitDone {
		t.Fatalf("Close must reset poolFilled and fullInitDone")
	}
}

func TestEnableSecureAllocUsesSecureAllocator(t *testing.T) {
	p := NewPool()
	p.EnableSecureAlloc()
	p.fullInit()
	if p.secureMem == nil {
		t.Fatalf("EnableSecureAlloc must cause fullInit to use the secure allocator")
	}
}

func TestIsFaked(t *testing.T) {
	p := NewPool()
	if p.IsFaked() {
		t.Fatalf("IsFaked should be false before EnableQuickTest")
	}
	p.EnableQuickTest()
	if !p.IsFaked() {
		t.Fatalf("IsFaked should be true after EnableQuickTest")
	}
}
