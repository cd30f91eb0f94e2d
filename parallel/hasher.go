package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Hasher computes a sha256 of n uint16 values which may be put in any order and
// from many goroutines. The digest only depends on the values and their positions.
type Hasher struct {
	mut    sync.Mutex
	values []uint16
	seen   []bool
}

// NewUint16Hasher makes a hasher of n uint16 values
func NewUint16Hasher(n int) *Hasher {
	return &Hasher{
		values: make([]uint16, n),
		seen:   make([]bool, n),
	}
}

// MustPutUint16 stores value at position n, each position can be written once
func (h *Hasher) MustPutUint16(n int, value uint16) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if n < 0 || n >= len(h.values) {
		panic("hasher position out of range")
	}
	if h.seen[n] {
		panic("duplicate write")
	}
	h.seen[n] = true
	h.values[n] = value
}

// Sum returns the digest of all values, positions never written count as zero
func (h *Hasher) Sum() (ret [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()
	sha := sha256.New()
	var buf [2]byte
	for _, v := range h.values {
		binary.LittleEndian.PutUint16(buf[:], v)
		sha.Write(buf[:])
	}
	copy(ret[:], sha.Sum(nil))
	return
}
