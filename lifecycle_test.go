// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import "testing"

func TestAddBytesNilBuffer(t *testing.T) {
	p := NewPool()
	if err := p.AddBytes(nil, 50); err != ErrNilBuffer {
		t.Fatalf("AddBytes(nil, ...) = %v, want ErrNilBuffer", err)
	}
}

func TestAddBytesLowQualityShortcut(t *testing.T) {
	p := NewPool()
	before := p.stats.naddbytes
	if err := p.AddBytes([]byte{1, 2, 3}, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.stats.naddbytes != before {
		t.Fatalf("AddBytes with quality < 10 must not touch the addbytes stats, naddbytes went from %d to %d", before, p.stats.naddbytes)
	}
	if p.fullInitDone {
		t.Fatalf("AddBytes with quality < 10 must return before triggering fullInit")
	}
}

func TestAddBytesFoldsEntropy(t *testing.T) {
	p := NewPool()
	if err := p.AddBytes([]byte{1, 2, 3, 4}, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.stats.naddbytes != 1 {
		t.Fatalf("naddbytes = %d, want 1", p.stats.naddbytes)
	}
	if p.poolFilled {
		t.Fatalf("AddBytes (OriginExternal) must never satisfy the fill counter by itself")
	}
}

func TestAddBytesClampsQuality(t *testing.T) {
	p := NewPool()
	if err := p.AddBytes([]byte{1}, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.stats.naddbytes != 1 {
		t.Fatalf("out-of-range quality should clamp, not reject: naddbytes = %d", p.stats.naddbytes)
	}
}

func TestAddBytesChunksLargeBuffers(t *testing.T) {
	p := NewPool()
	buf := make([]byte, poolSize+10)
	if err := p.AddBytes(buf, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.stats.naddbytes != 2 {
		t.Fatalf("naddbytes = %d, want 2 (one per poolSize-sized chunk)", p.stats.naddbytes)
	}
}

func TestDumpStatsDoesNotPanic(t *testing.T) {
	p := NewPool()
	p.AddBytes([]byte{1, 2, 3}, 80)
	p.DumpStats()
}

func TestSetSeedFileTwicePanics(t *testing.T) {
	p := NewPool()
	p.SetSeedFile("/tmp/does-not-matter")
	defer func() {
		if recover() == nil {
			t.Fatalf("a second SetSeedFile call must panic")
		}
	}()
	p.SetSeedFile("/tmp/other")
}
