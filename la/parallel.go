// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "sync"

// numThreads is the process-wide parallelism setting for the linear-algebra
// backend (spec §5, §9 "Global parallelism state"). It is set at most
// once; later calls to SetNumThreads are ignored, mirroring the teacher's
// own one-time mpi.Start()-style initialization.
var (
	numThreadsOnce sync.Once
	numThreads     int
)

// SetNumThreads configures the effective parallelism for the linear-algebra
// backend. 0 means "use all available hardware parallelism". Only the
// first call takes effect; concurrent solves must agree on the value, so
// later calls are silently ignored rather than racing.
func SetNumThreads(n int) {
	numThreadsOnce.Do(func() {
		numThreads = n
	})
}

// NumThreads returns the effective parallelism after first initialization.
// If SetNumThreads was never called, it returns 0 ("use all available
// hardware parallelism").
func NumThreads() int {
	return numThreads
}
