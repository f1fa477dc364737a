// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import "os"

// Randomize fills buffer with length cryptographically strong random bytes
// at the requested quality level, the package's outward entry point. It
// chunks requests larger than poolSize into multiple extractions, each
// using a fresh read_pos-derived key pool.
func (p *Pool) Randomize(buffer []byte, level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullInit()

	if p.quickTest && level > Strong {
		level = Strong
	}

	if level >= VeryStrong {
		p.stats.getbytes2 += uint64(len(buffer))
		p.stats.ngetbytes2++
		p.metrics.GetBytes2.Add(float64(len(buffer)))
	} else {
		p.stats.getbytes1 += uint64(len(buffer))
		p.stats.ngetbytes1++
		p.metrics.GetBytes1.Add(float64(len(buffer)))
	}

	for len(buffer) > 0 {
		n := len(buffer)
		if n > poolSize {
			n = poolSize
		}
		p.read(buffer[:n], level)
		buffer = buffer[n:]
	}
}

// read is the core of the public random functions. It must be called with
// p.mu held and fullInitDone, and length <= poolSize.
func (p *Pool) read(out []byte, level Level) {
	if len(out) > poolSize {
		panic("csprng: too many random bytes requested in one extraction")
	}

retry:
	myPID2 := os.Getpid()
	if p.myPID == -1 {
		p.myPID = myPID2
	}
	if p.myPID != myPID2 {
		p.myPID = myPID2
		p.add(int64Bytes(int64(myPID2)), OriginInit)
		p.justMixed = false
	}

	if !p.poolFilled {
		p.readSeed()
	}
	for !p.poolFilled {
		p.randomPoll()
	}

	if level == VeryStrong {
		if !p.didExtraSeeding {
			p.poolBalance = 0
			needed := len(out)
			if needed < 16 {
				needed = 16
			} else if needed > poolSize {
				panic("csprng: VeryStrong top-up request exceeds pool size")
			}
			p.readRandomSource(OriginExtraPoll, needed, VeryStrong)
			p.poolBalance += needed
			p.didExtraSeeding = true
		}
		if p.poolBalance < len(out) {
			if p.poolBalance < 0 {
				p.poolBalance = 0
			}
			needed := len(out) - p.poolBalance
			if needed > poolSize {
				panic("csprng: VeryStrong top-up request exceeds pool size")
			}
			p.readRandomSource(OriginExtraPoll, needed, VeryStrong)
			p.poolBalance += needed
		}
	}

	p.doFastPoll()

	p.add(int64Bytes(int64(p.myPID)), OriginInit)

	if !p.justMixed {
		p.mix(p.rndpool, true)
		p.stats.mixrnd++
		p.metrics.MixRND.Inc()
	}

	for i := 0; i < poolWords; i++ {
		o := i * 8
		v := beUint64(p.rndpool[o:o+8]) + addValue
		putBEUint64(p.keypool[o:o+8], v)
	}

	p.mix(p.rndpool, true)
	p.stats.mixrnd++
	p.metrics.MixRND.Inc()
	p.mix(p.keypool, false)
	p.stats.mixkey++
	p.metrics.MixKey.Inc()

	for j := range out {
		out[j] = p.keypool[p.readPos]
		p.readPos++
		if p.readPos >= poolSize {
			p.readPos = 0
		}
		p.poolBalance--
	}
	if p.poolBalance < 0 {
		p.poolBalance = 0
	}

	for i := 0; i < poolSize; i++ {
		p.keypool[i] = 0
	}

	if os.Getpid() != myPID2 {
		newPID := os.Getpid()
		p.add(int64Bytes(int64(newPID)), OriginInit)
		p.justMixed = false
		p.myPID = newPID
		goto retry
	}
}
