// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNilBuffer is returned by AddBytes when buf is nil.
var ErrNilBuffer = errors.New("csprng: nil buffer passed to AddBytes")

// AddBytes folds caller-supplied entropy into the pool. quality is 0..100;
// values below 10 are dropped entirely as a shortcut, including skipping
// the addbytes/naddbytes stats update. Because origin is OriginExternal
// (below OriginSlowPoll), this never credits pool_filled_counter either.
func (p *Pool) AddBytes(buf []byte, quality int) error {
	if buf == nil {
		return ErrNilBuffer
	}
	if quality < 0 {
		quality = 0
	} else if quality > 100 {
		quality = 100
	}
	if len(buf) == 0 || quality < 10 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullInit()

	for len(buf) > 0 {
		n := len(buf)
		if n > poolSize {
			n = poolSize
		}
		p.add(buf[:n], OriginExternal)
		buf = buf[n:]
	}
	return nil
}

// DumpStats logs the accumulated counters. It may race with concurrent
// pool operations; this is accepted as a best-effort diagnostic.
func (p *Pool) DumpStats() {
	s := p.stats
	p.log.WithFields(logrus.Fields{
		"pool_size":  poolSize,
		"mixrnd":     s.mixrnd,
		"mixkey":     s.mixkey,
		"slowpolls":  s.slowpolls,
		"fastpolls":  s.fastpolls,
		"addbytes":   s.addbytes,
		"naddbytes":  s.naddbytes,
		"getbytes1":  s.getbytes1,
		"ngetbytes1": s.ngetbytes1,
		"getbytes2":  s.getbytes2,
		"ngetbytes2": s.ngetbytes2,
	}).Info("csprng random usage")
}
