// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package csprng implements a continuously-seeded pseudo-random number
// generator modelled after Peter Gutmann's "Software Generation of
// Practically Strong Random Numbers" (1998 Usenix Security Symposium), the
// design also used as the classic random number generator in libgcrypt.
//
// Unlike a block-cipher based generator (e.g. Fortuna's AES-256-CTR stage),
// this design never runs a keyed cipher: entropy is folded into a 600-byte
// pool with a sliding-window SHA-1 mix, and output is derived by mixing a
// transient copy of the pool rather than by stretching a key. The pool is
// continuously topped up from platform entropy sources, so long-running
// processes get fresher randomness the longer they run.
//
// Csprng is best used as a single process-wide handle obtained from
// Default(); constructing additional *Pool values is only useful for tests
// or for processes that deliberately want independent pools.
package csprng

import "fmt"

// Level is the quality of randomness requested by a caller.
type Level int

const (
	// Weak is aliased to Strong in this implementation; no separate low
	// quality code path exists.
	Weak Level = iota
	// Strong is suitable for the overwhelming majority of uses: nonces,
	// session tokens, salts.
	Strong
	// VeryStrong is for long-term key material. It forces extra polls of
	// the slow entropy source before ever returning bytes.
	VeryStrong
)

func (l Level) String() string {
	switch l {
	case Weak:
		return "weak"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very-strong"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Origin classifies the trust level of a chunk of entropy offered to the
// pool. Only origins >= SlowPoll count toward the initial-fill threshold.
type Origin int

const (
	// OriginInit tags bytes folded in during seed-file loading and fork
	// recovery: pid, wall clock, CPU clock. Deliberately below SlowPoll so
	// seed-file bytes alone cannot satisfy the fill counter.
	OriginInit Origin = iota
	// OriginExternal tags caller-supplied entropy via AddBytes.
	OriginExternal
	// OriginFastPoll tags bytes gathered by the cheap, best-effort poll
	// that runs on every extraction.
	OriginFastPoll
	// OriginSlowPoll tags bytes gathered by the blocking platform entropy
	// source used to fill the pool from cold.
	OriginSlowPoll
	// OriginExtraPoll tags the forced top-up reads performed for
	// VeryStrong requests.
	OriginExtraPoll
)

func (o Origin) String() string {
	switch o {
	case OriginInit:
		return "init"
	case OriginExternal:
		return "external"
	case OriginFastPoll:
		return "fastpoll"
	case OriginSlowPoll:
		return "slowpoll"
	case OriginExtraPoll:
		return "extrapoll"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// reliable reports whether origin counts toward pool_filled_counter.
func (o Origin) reliable() bool {
	return o >= OriginSlowPoll
}
