//go:build unix

package gather

import "golang.org/x/sys/unix"

func init() {
	CPUTime = cpuTimeUnix
}

// cpuTimeUnix returns cumulative process user+system CPU time in
// nanoseconds via getrusage(2), the Go analogue of a clock() sample.
func cpuTimeUnix() int64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	user := int64(ru.Utime.Sec)*1e9 + int64(ru.Utime.Usec)*1e3
	sys := int64(ru.Stime.Sec)*1e9 + int64(ru.Stime.Usec)*1e3
	return user + sys
}
