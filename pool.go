// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

import (
	"sync"

	"github.com/entropic-labs/csprng/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Fixed pool geometry: not tunable, since they define the wire-compatible
// seed-file size and mixer window.
const (
	digestLen = 20       // D: SHA-1 chaining value width.
	blockLen  = 64       // B: hash compression block length.
	numBlocks = 30       // K: number of overlapping digests per pool.
	poolSize  = numBlocks * digestLen // S: 600.
	poolWords = poolSize / 8          // W: pool size in 64-bit words.
)

// addValue is ADD_VALUE: the word-sized constant 0xA5 repeated across the
// word, used by the word-wise addition that derives keypool from rndpool.
const addValue uint64 = 0xa5a5a5a5a5a5a5a5

// Pool is the process-wide entropy accumulator and pseudo-random byte
// source. The zero value is not ready to use; call NewPool or use Default().
//
// Every pool operation serializes on mu, a single pool-wide mutex, so the
// exported methods are safe for concurrent use, except DumpStats, which
// reads the counters without taking mu.
type Pool struct {
	mu sync.Mutex

	// basic/full init state.
	basicInitDone bool
	fullInitDone  bool

	// rndpool accumulates entropy; keypool is the transient derivation
	// buffer used only during extraction. Both are poolSize+blockLen bytes:
	// the trailing blockLen bytes are scratch space for mix, not pool
	// content.
	rndpool []byte
	keypool []byte

	writePos int // next index in rndpool for XOR-folding an incoming byte.
	readPos  int // next index in keypool to deliver from; never reset.

	poolFilled        bool
	poolFilledCounter int
	didExtraSeeding   bool
	poolBalance       int
	justMixed         bool

	failsafeDigest      [digestLen]byte
	failsafeDigestValid bool

	// fork detection.
	myPID int

	// configuration, set before first extraction.
	seedFileName   string
	seedFileIsSet  bool
	secureAlloc    bool
	quickTest      bool
	allowSeedWrite bool

	slowGather SlowGather
	fastGather FastGather
	secureMem  *secureAllocator

	log     logrus.FieldLogger
	stats   stats
	metrics *metrics.Collector
}

// stats mirrors libgcrypt's rndstats structure, the dump-stats counters.
type stats struct {
	mixrnd     uint64
	mixkey     uint64
	slowpolls  uint64
	fastpolls  uint64
	getbytes1  uint64
	ngetbytes1 uint64
	getbytes2  uint64
	ngetbytes2 uint64
	addbytes   uint64
	naddbytes  uint64
}

// NewPool returns a freshly allocated, basic-initialized Pool. Full
// initialization (buffer allocation, capability resolution) is deferred to
// the first operation that needs it: a lazy two-phase lifecycle.
func NewPool() *Pool {
	p := &Pool{log: logrus.StandardLogger(), metrics: metrics.NewCollector()}
	p.basicInit()
	return p
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// Default returns the process-wide singleton Pool, constructing it on first
// call. This is the Go-idiomatic analogue of libgcrypt's module-global
// state: an opaque handle created once and owned by the process.
func Default() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewPool()
	})
	return defaultPool
}

// SetLogger overrides the logger used for diagnostics. Call before any
// extraction for the override to apply to seed-file loading.
func (p *Pool) SetLogger(l logrus.FieldLogger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = l
}

// basicInit establishes invariants that must hold before any concurrent
// access is possible. It is idempotent and does not allocate the pool
// buffers.
func (p *Pool) basicInit() {
	if p.basicInitDone {
		return
	}
	// Verify level-constant ordering, matching the gcry_assert in
	// initialize_basics().
	if !(Weak == 0 && Strong == 1 && VeryStrong == 2) {
		panic("csprng: Level constants are no longer in the expected order")
	}
	p.myPID = -1
	p.basicInitDone = true
}

// fullInit allocates the pool buffers and resolves the entropy-gathering
// capabilities. Must be called with mu held. Idempotent.
func (p *Pool) fullInit() {
	p.basicInit()
	if p.fullInitDone {
		return
	}
	size := poolSize + blockLen
	if p.secureAlloc {
		p.secureMem = newSecureAllocator()
		p.rndpool = p.secureMem.alloc(size)
		p.keypool = p.secureMem.alloc(size)
	} else {
		p.rndpool = make([]byte, size)
		p.keypool = make([]byte, size)
	}
	if p.slowGather == nil {
		p.slowGather = defaultSlowGather()
	}
	if p.fastGather == nil {
		p.fastGather = defaultFastGather()
	}
	p.fullInitDone = true
}

// SetSlowGather overrides the slow entropy-gathering capability. Must be
// called before the pool is first used; intended for tests and for
// platforms wiring in a specialized gatherer (hardware RNG, EGD socket).
func (p *Pool) SetSlowGather(g SlowGather) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slowGather = g
}

// SetFastGather overrides the fast entropy-gathering capability. See
// SetSlowGather.
func (p *Pool) SetFastGather(g FastGather) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fastGather = g
}

// EnableSecureAlloc requests that pool buffers be placed in mlock'd,
// zeroised-on-free memory. Must be called before the first extraction;
// calling it afterwards has no effect on already-allocated buffers.
func (p *Pool) EnableSecureAlloc() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secureAlloc = true
}

// EnableQuickTest degrades VeryStrong requests to Strong, skipping the
// forced extra poll. Intended for test suites that can't afford to block on
// a real entropy source.
func (p *Pool) EnableQuickTest() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quickTest = true
}

// IsFaked reports whether quick-test mode is enabled, forcing full
// initialization so platform capability discovery runs first.
func (p *Pool) IsFaked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullInit()
	return p.quickTest
}

// Metrics returns the Pool's Prometheus collector, for wiring into an
// embedding application's /metrics endpoint.
func (p *Pool) Metrics() *metrics.Collector {
	return p.metrics
}

// Close releases the gatherer's file descriptors, zeroes all state, and
// frees the pool buffers. Safe to call before full-init.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.slowGather != nil {
		p.slowGather.Release()
	}
	p.writePos = 0
	p.readPos = 0
	p.poolFilled = false
	p.poolFilledCounter = 0
	p.didExtraSeeding = false
	p.poolBalance = 0
	p.justMixed = false
	p.failsafeDigestValid = false
	if p.secureMem != nil {
		p.secureMem.free(p.rndpool)
		p.secureMem.free(p.keypool)
		p.secureMem = nil
	}
	p.rndpool = nil
	p.keypool = nil
	p.fullInitDone = false
}
