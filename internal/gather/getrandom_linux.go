//go:build linux

package gather

import "golang.org/x/sys/unix"

// kernelRead wraps the getrandom(2) syscall directly rather than going
// through crypto/rand, since the blocking-until-seeded behavior the
// slow-gather capability wants is exactly what getrandom(2) without
// GRND_NONBLOCK gives for free.
func kernelRead(buf []byte) (int, error) {
	return unix.Getrandom(buf, 0)
}
