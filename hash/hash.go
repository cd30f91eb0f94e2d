// Package hash implements the modular hash every hashtron program is built from
package hash

// Hash mixes n with the salt s and reduces the result into the range 0 to max-1.
// A max of zero always yields zero.
func Hash(n uint32, s uint32, max uint32) uint32 {
	var m = n - s

	// xorshift with prime shifts
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += s

	// multiply-shift reduction instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// Premodulo folds a wide feature read at position pos into the range 0 to premodulo-1.
// A zero premodulo leaves the feature untouched.
func Premodulo(feature uint32, pos int, premodulo uint32) uint32 {
	if premodulo == 0 {
		return feature
	}
	return Hash(feature, uint32(pos), premodulo)
}
