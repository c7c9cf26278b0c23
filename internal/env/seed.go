package env

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws an episode seed from crypto/rand.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("env: read random seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}
