// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build unix

package csprng

import (
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// lockSeedFile takes an advisory lock on the whole file with a bounded
// exponential backoff (cap 10s), logging once if waiting exceeds ~2s.
func (p *Pool) lockSeedFile(f *os.File, forWrite bool) error {
	how := unix.LOCK_SH
	if forWrite {
		how = unix.LOCK_EX
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second

	start := time.Now()
	warned := false
	notify := func(err error, wait time.Duration) {
		if !warned && time.Since(start) > 2*time.Second {
			p.log.WithFields(logrus.Fields{"seed_file": p.seedFileName}).Info("waiting for lock on seed file...")
			warned = true
		}
	}

	op := func() error {
		return unix.Flock(int(f.Fd()), how|unix.LOCK_NB)
	}
	return backoff.RetryNotify(op, b, notify)
}
