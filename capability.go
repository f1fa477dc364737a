// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package csprng

// AddFunc is the callback a gathering capability uses to deliver bytes back
// into the pool. It corresponds to add_randomness() passed as a function
// pointer in libgcrypt's classic random-csprng design.
type AddFunc func(buf []byte, origin Origin)

// SlowGather is the blocking, high-quality entropy source capability.
// It must deliver at least length bytes by invoking add one or more times,
// and return an error on hard failure. Full-init installs the kernel-backed
// default when none is set; a slow poll with no SlowGather configured
// panics, an unrecoverable resource failure.
type SlowGather interface {
	// Gather requests length bytes of the given level/origin, delivering
	// them via add. It may be invoked concurrently... in practice never is,
	// since every pool operation is already serialized by the pool mutex.
	Gather(add AddFunc, origin Origin, length int, level Level) error

	// Release asks the capability to give up any held resources (file
	// descriptors, sockets). Called from Pool.Close. Corresponds to the
	// gather function's (nil, 0, 0, 0) sentinel invocation.
	Release()
}

// FastGather is the best-effort, non-blocking entropy source capability. It
// has no length contract. When none is set before full-init, the default
// one, which folds in the generic time/clock samples, is used.
type FastGather interface {
	// Gather folds in whatever is cheaply available right now.
	Gather(add AddFunc, origin Origin)
}
