// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !unix

package csprng

import "os"

// lockSeedFile is a no-op on platforms without an advisory-locking syscall
// wired in; the seed file is still read/written correctly, just without
// inter-process mutual exclusion.
func (p *Pool) lockSeedFile(f *os.File, forWrite bool) error {
	return nil
}
