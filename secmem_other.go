// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !unix

package csprng

import "errors"

func mlock(buf []byte) error {
	return errors.New("csprng: mlock is not supported on this platform")
}

func munlock(buf []byte) error {
	return errors.New("csprng: munlock is not supported on this platform")
}
