// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build unix

package csprng

import "golang.org/x/sys/unix"

func mlock(buf []byte) error {
	return unix.Mlock(buf)
}

func munlock(buf []byte) error {
	return unix.Munlock(buf)
}
