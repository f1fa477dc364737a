// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gather provides the default, platform-backed implementations of
// the slow and fast entropy sources the core CSPRNG pool consumes through
// narrow capability interfaces: the blocking kernel RNG, and the cheap
// local time/resource-usage samples a fast poll folds in, kept out of the
// core package so the core never has a platform build tag of its own.
package gather

import (
	"errors"
	"runtime"
	"time"
)

// Source reads len(buf) bytes of kernel-quality randomness into buf,
// possibly short; callers must loop until buf is exhausted.
type Source func(buf []byte) (int, error)

// KernelSource is the process-wide default Source: getrandom(2) on Linux
// (see getrandom_linux.go), crypto/rand.Read everywhere else (see
// getrandom_other.go).
var KernelSource Source = kernelRead

// ErrNoProgress is returned by SlowRead if KernelSource repeatedly returns
// zero bytes without an error.
var ErrNoProgress = errors.New("gather: kernel entropy source made no progress")

// CPUTime returns cumulative process CPU time in nanoseconds, the Go
// analogue of a clock() sample. Overridden on unix by cpu_unix.go;
// elsewhere it returns 0, meaning this particular sample contributes no
// entropy (the other INIT-origin samples still do).
var CPUTime func() int64 = func() int64 { return 0 }

// SlowRead fills buf completely from KernelSource, retrying short reads.
// This is the blocking behavior the slow-gather capability contract
// requires: it must deliver every requested byte before returning.
func SlowRead(buf []byte) error {
	for len(buf) > 0 {
		n, err := KernelSource(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoProgress
		}
		buf = buf[n:]
	}
	return nil
}

// FastSamples returns a handful of cheap, non-blocking byte slices to fold
// into the pool on every extraction: wall-clock time, a monotonic reading,
// and the runtime's memory-allocator counters as the Go analogue of
// getrusage(2). None of these are claimed to be unpredictable to an
// attacker on their own; they are combined with whatever the platform's
// hardware/kernel sources already contributed.
func FastSamples() [][]byte {
	now := time.Now()
	wall := make([]byte, 8)
	putInt64(wall, now.UnixNano())

	mono := make([]byte, 8)
	putInt64(mono, int64(monotonicNanos()))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	usage := make([]byte, 24)
	putUint64(usage[0:8], ms.Mallocs)
	putUint64(usage[8:16], ms.Frees)
	putUint64(usage[16:24], ms.NumGC)

	return [][]byte{wall, mono, usage}
}

// monoBase carries a monotonic clock reading, so time.Since(monoBase) is
// measured on the monotonic clock.
var monoBase = time.Now()

func monotonicNanos() int64 {
	return int64(time.Since(monoBase))
}

func putInt64(dst []byte, v int64) {
	putUint64(dst, uint64(v))
}

func putUint64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * (7 - i)))
	}
}
