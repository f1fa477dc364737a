// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

// add folds buf into rndpool by XOR at writePos, wrapping (and mixing) at
// poolSize. Precondition: p.mu held, p.fullInitDone.
func (p *Pool) add(buf []byte, origin Origin) {
	p.stats.addbytes += uint64(len(buf))
	p.stats.naddbytes++
	p.metrics.AddBytes.Add(float64(len(buf)))
	p.metrics.NAddBytes.Inc()

	count := 0
	for i, b := range buf {
		p.rndpool[p.writePos] ^= b
		p.writePos++
		count++
		if p.writePos >= poolSize {
			if origin.reliable() && !p.poolFilled {
				p.poolFilledCounter += count
				count = 0
				if p.poolFilledCounter >= poolSize {
					p.poolFilled = true
				}
			}
			p.writePos = 0
			p.mix(p.rndpool, true)
			p.stats.mixrnd++
			p.metrics.MixRND.Inc()
			p.justMixed = i == len(buf)-1
		}
	}
}
