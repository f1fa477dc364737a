// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package metrics exposes the pool's stats counters as Prometheus
// counters, alongside the logged diagnostic report. Each Collector is
// independent so tests and multiple Pool instances don't collide on the
// default registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds one counter per stats field in the pool's rndstats
// struct, except the per-call counts ngetbytes1/ngetbytes2, which have no
// counter here. It is registered into its own prometheus.Registry rather than the
// global default one, so constructing a Pool never has side effects on
// whatever registry an embedding application already runs.
type Collector struct {
	Registry *prometheus.Registry

	MixRND     prometheus.Counter
	MixKey     prometheus.Counter
	SlowPolls  prometheus.Counter
	FastPolls  prometheus.Counter
	GetBytes1  prometheus.Counter
	GetBytes2  prometheus.Counter
	AddBytes   prometheus.Counter
	NAddBytes  prometheus.Counter
}

// NewCollector builds and registers a fresh set of counters.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		Registry: reg,
		MixRND: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "mix_rndpool_total", Help: "Number of times rndpool has been mixed.",
		}),
		MixKey: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "mix_keypool_total", Help: "Number of times keypool has been mixed.",
		}),
		SlowPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "slow_polls_total", Help: "Number of slow-gather polls performed.",
		}),
		FastPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "fast_polls_total", Help: "Number of fast-gather polls performed.",
		}),
		GetBytes1: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "get_bytes_strong_total", Help: "Bytes delivered at Weak/Strong quality.",
		}),
		GetBytes2: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "get_bytes_very_strong_total", Help: "Bytes delivered at VeryStrong quality.",
		}),
		AddBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "add_bytes_total", Help: "Bytes folded into the pool.",
		}),
		NAddBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csprng", Name: "add_calls_total", Help: "Number of accumulation calls.",
		}),
	}
	reg.MustRegister(c.MixRND, c.MixKey, c.SlowPolls, c.FastPolls, c.GetBytes1, c.GetBytes2, c.AddBytes, c.NAddBytes)
	return c
}
