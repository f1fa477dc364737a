// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

// fixedSlowGather is a deterministic SlowGather double: every Gather call
// fills the requested length with a repeating byte value and hands it to
// add under the requested origin.
type fixedSlowGather struct {
	fill     byte
	calls    int
	released bool
}

func (f *fixedSlowGather) Gather(add AddFunc, origin Origin, length int, level Level) error {
	f.calls++
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = f.fill
	}
	add(buf, origin)
	return nil
}

func (f *fixedSlowGather) Release() { f.released = true }

// noFastGather is a FastGather double that contributes nothing, so tests
// stay deterministic even through doFastPoll.
type noFastGather struct{}

func (noFastGather) Gather(add AddFunc, origin Origin) {}

// newFilledPool returns a Pool wired to a fixedSlowGather/noFastGather pair
// with quick-test mode enabled. The pool is not yet filled: its first
// extraction fills it from the fixedSlowGather.
func newFilledPool(fill byte) (*Pool, *fixedSlowGather) {
	p := NewPool()
	g := &fixedSlowGather{fill: fill}
	p.SetSlowGather(g)
	p.SetFastGather(noFastGather{})
	p.EnableQuickTest()
	return p, g
}
