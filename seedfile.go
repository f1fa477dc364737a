// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/entropic-labs/csprng/internal/gather"
	"github.com/sirupsen/logrus"
)

// SetSeedFile registers the path of the on-disk seed file. May be called at
// most once; a second call is an unrecoverable programmer error.
func (p *Pool) SetSeedFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seedFileIsSet {
		panic("csprng: SetSeedFile called more than once")
	}
	p.seedFileName = path
	p.seedFileIsSet = true
}

// readSeed loads and folds in the on-disk seed file. Precondition: p.mu
// held, p.fullInitDone. Returns true if the pool was loaded from a seed
// file.
func (p *Pool) readSeed() bool {
	if p.seedFileName == "" {
		return false
	}

	f, err := os.Open(p.seedFileName)
	if errors.Is(err, os.ErrNotExist) {
		p.allowSeedWrite = true
		return false
	}
	if err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't open seed file")
		return false
	}
	defer f.Close()

	if err := p.lockSeedFile(f, false); err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't lock seed file")
		return false
	}

	fi, err := f.Stat()
	if err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't stat seed file")
		return false
	}
	if !fi.Mode().IsRegular() {
		p.log.WithField("seed_file", p.seedFileName).Warn("seed file is not a regular file - ignored")
		return false
	}
	if fi.Size() == 0 {
		p.log.WithField("seed_file", p.seedFileName).Info("note: seed file is empty")
		p.allowSeedWrite = true
		return false
	}
	if fi.Size() != poolSize {
		p.log.WithField("seed_file", p.seedFileName).Warn("invalid size of seed file - not used")
		return false
	}

	buf := make([]byte, poolSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		// A short read here means the seed file was truncated mid-write or
		// by another process; there is no safe partial-pool state to fall
		// back to, so this terminates rather than seeding from garbage.
		panic(fmt.Sprintf("csprng: can't read seed file %q: %v", p.seedFileName, err))
	}

	p.add(buf, OriginInit)

	pid := os.Getpid()
	p.add(int64Bytes(int64(pid)), OriginInit)
	p.add(int64Bytes(time.Now().Unix()), OriginInit)
	p.add(int64Bytes(gather.CPUTime()), OriginInit)

	// Draw additional fresh bytes. A jitter-RNG capability would justify
	// raising this from 256 to 1024 bits; this module has none (see
	// DESIGN.md), so it always takes the smaller amount.
	p.readRandomSource(OriginExtraPoll, 32, Strong)

	p.allowSeedWrite = true
	return true
}

// UpdateSeedFile writes the current pool state back to the seed file,
// called on process shutdown. It is a no-op unless a seed file is
// configured, the pool has been filled, and a previous read established
// that updating is allowed.
func (p *Pool) UpdateSeedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.basicInit()
	if !p.fullInitDone || p.seedFileName == "" || !p.poolFilled {
		return
	}
	if !p.allowSeedWrite {
		p.log.Info("note: seed file not updated")
		return
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

	f, err := os.OpenFile(p.seedFileName, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't create seed file")
		return
	}
	defer f.Close()

	if err := p.lockSeedFile(f, true); err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't lock seed file for writing")
		return
	}
	if err := f.Truncate(0); err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't truncate seed file")
		return
	}
	if _, err := f.WriteAt(p.keypool[:poolSize], 0); err != nil {
		p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName, "err": err}).Info("can't write seed file")
	}
}

func int64Bytes(v int64) []byte {
	b := make([]byte, 8)
	putBEUint64(b, uint64(v))
	return b
}

func beUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func putBEUint64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * (7 - i)))
	}
}
