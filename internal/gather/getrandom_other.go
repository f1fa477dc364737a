//go:build !linux

package gather

import crand "crypto/rand"

// kernelRead falls back to crypto/rand, which itself wraps the platform's
// CSPRNG (getentropy/CryptGenRandom/ getrandom depending on OS) on
// platforms where this module does not call the syscall directly.
func kernelRead(buf []byte) (int, error) {
	return crand.Read(buf)
}
