// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import (
	"fmt"

	"github.com/entropic-labs/csprng/internal/gather"
)

// kernelSlowGather is the default SlowGather: a blocking read from the
// platform's kernel CSPRNG (see internal/gather).
type kernelSlowGather struct{}

func (kernelSlowGather) Gather(add AddFunc, origin Origin, length int, level Level) error {
	buf := make([]byte, length)
	if err := gather.SlowRead(buf); err != nil {
		return fmt.Errorf("csprng: slow gather failed: %w", err)
	}
	add(buf, origin)
	return nil
}

func (kernelSlowGather) Release() {}

func defaultSlowGather() SlowGather { return kernelSlowGather{} }

// kernelFastGather is the default FastGather: cheap time/resource-usage
// samples, no hardware RNG hookup. A hardware-RNG "quick read" capability
// is optional and left nil by default; SetFastGather can install one.
type kernelFastGather struct{}

func (kernelFastGather) Gather(add AddFunc, origin Origin) {
	for _, sample := range gather.FastSamples() {
		add(sample, origin)
	}
}

func defaultFastGather() FastGather { return kernelFastGather{} }

// doFastPoll runs the best-effort fast poll: the configured FastGather
// capability, if any. The generic time/clock samples are what the default
// FastGather folds in; a FastGather installed with SetFastGather replaces
// them. It never updates the entropy-fill estimate. Precondition: p.mu held,
// p.fullInitDone.
func (p *Pool) doFastPoll() {
	p.stats.fastpolls++
	p.metrics.FastPolls.Inc()
	if p.fastGather != nil {
		p.fastGather.Gather(func(buf []byte, origin Origin) { p.add(buf, origin) }, OriginFastPoll)
	}
}

// FastPoll runs an opportunistic fast poll independent of any extraction,
// a standalone "perturb the pool for free" entry point mirroring
// _gcry_rngcsprng_fast_poll. It is a no-op until the pool has been fully
// initialized by some other operation.
func (p *Pool) FastPoll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.basicInit()
	if !p.fullInitDone {
		return
	}
	p.doFastPoll()
}

// randomPoll requests poolSize/5 bytes at Strong quality from the slow
// gather capability, tagged OriginSlowPoll. Precondition: p.mu held.
func (p *Pool) randomPoll() {
	p.stats.slowpolls++
	p.metrics.SlowPolls.Inc()
	p.readRandomSource(OriginSlowPoll, poolSize/5, Strong)
}

// readRandomSource invokes the slow gather capability with the given
// parameters. Precondition: p.mu held, p.fullInitDone. Panics if no
// SlowGather is configured or if it hard-fails: an unrecoverable resource
// failure with no safe way to continue.
func (p *Pool) readRandomSource(origin Origin, length int, level Level) {
	if p.slowGather == nil {
		panic("csprng: no slow entropy gathering capability configured")
	}
	if err := p.slowGather.Gather(func(buf []byte, o Origin) { p.add(buf, o) }, origin, length, level); err != nil {
		panic(fmt.Sprintf("csprng: no way to gather entropy for the RNG: %v", err))
	}
}
