// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

// Read fills buffer with random bytes from the default process-wide pool at
// the given quality level. It is a thin convenience wrapper around
// Default().Randomize, for callers that don't need an independent Pool.
func Read(buffer []byte, level Level) {
	Default().Randomize(buffer, level)
}

// AddExternalEntropy folds buf into the default pool's entropy, see
// (*Pool).AddBytes.
func AddExternalEntropy(buf []byte, quality int) error {
	return Default().AddBytes(buf, quality)
}
