// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSeedMissingFileAllowsWrite(t *testing.T) {
	p := NewPool()
	p.fullInit()
	p.SetSeedFile(filepath.Join(t.TempDir(), "does-not-exist"))
	require.False(t, p.readSeed(), "readSeed on a missing file must return false")
	require.True(t, p.allowSeedWrite, "a missing seed file must still allow a later write")
}

func TestReadSeedWrongSizeIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0o600))

	p := NewPool()
	p.fullInit()
	p.SetSeedFile(path)
	require.False(t, p.readSeed(), "readSeed on a wrong-size file must return false")
	require.False(t, p.allowSeedWrite, "a wrong-size seed file must not set allowSeedWrite")
}

func TestReadSeedEmptyFileAllowsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewPool()
	p.fullInit()
	p.SetSeedFile(path)
	require.False(t, p.readSeed(), "readSeed on an empty file must return false")
	require.True(t, p.allowSeedWrite, "an empty seed file must allow a later write")
}

// TestSeedFileZeroFileProducesNonZeroOutput covers the all-zero seed file
// end-to-end scenario: loading an all-zero-byte seed file still folds in
// pid/clock/extra-poll bytes, so the pool is not left in a degenerate
// all-zero state.
func TestSeedFileZeroFileProducesNonZeroOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.WriteFile(path, make([]byte, poolSize), 0o600))

	p, _ := newFilledPool(0x00)
	p.fullInit()
	p.SetSeedFile(path)
	require.True(t, p.readSeed(), "readSeed on a correctly-sized file must return true")

	out := make([]byte, 32)
	p.read(out, Strong)
	require.NotEqual(t, make([]byte, 32), out, "extraction after loading an all-zero seed file returned all-zero bytes")
}

// TestSeedRoundTripChangesFileContent is the seed round-trip law: writing
// the seed file after use must not simply restore the bytes that were read
// from it.
func TestSeedRoundTripChangesFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	original := make([]byte, poolSize)
	for i := range original {
		original[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, original, 0o600))

	p, _ := newFilledPool(0x5a)
	p.fullInit()
	p.SetSeedFile(path)
	p.readSeed()
	p.poolFilled = true
	p.UpdateSeedFile()

	updated, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, updated, poolSize)
	require.NotEqual(t, original, updated, "UpdateSeedFile wrote back the exact bytes it read")
}

func TestUpdateSeedFileNoopWithoutSeedFile(t *testing.T) {
	p := NewPool()
	p.fullInit()
	p.poolFilled = true
	p.UpdateSeedFile() // must not panic or error with no seed file configured
}

func TestUpdateSeedFileNoopWhenWriteDisallowed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	p := NewPool()
	p.fullInit()
	p.SetSeedFile(path)
	p.poolFilled = true
	p.allowSeedWrite = false
	p.UpdateSeedFile()

	_, err := os.Stat(path)
	require.Error(t, err, "UpdateSeedFile must not create the file when allowSeedWrite is false")
}
