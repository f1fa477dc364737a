// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import "github.com/sirupsen/logrus"

// secureAllocator hands out mlock'd buffers and zeroes them before
// releasing the lock, the same pattern TheEntropyCollective/noisefs uses
// around syscall.SYS_MLOCK when it needs to scrub decrypted pages from
// swap, here via the typed golang.org/x/sys/unix wrapper instead of a raw
// syscall.Syscall call.
type secureAllocator struct {
	log    logrus.FieldLogger
	locked map[*byte]int
}

func newSecureAllocator() *secureAllocator {
	return &secureAllocator{log: logrus.StandardLogger(), locked: map[*byte]int{}}
}

func (s *secureAllocator) alloc(n int) []byte {
	buf := make([]byte, n)
	if n == 0 {
		return buf
	}
	if err := mlock(buf); err != nil {
		s.log.WithError(err).Warn("csprng: mlock failed, pool buffer may be swappable")
		return buf
	}
	s.locked[&buf[0]] = n
	return buf
}

func (s *secureAllocator) free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	for i := range buf {
		buf[i] = 0
	}
	if _, ok := s.locked[&buf[0]]; ok {
		if err := munlock(buf); err != nil {
			s.log.WithError(err).Warn("csprng: munlock failed")
		}
		delete(s.locked, &buf[0])
	}
}
