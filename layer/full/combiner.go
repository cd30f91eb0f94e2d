package full

// Put inserts a boolean at position n.
func (f *Full) Put(n int, v bool) {
	f.vec[n] = v
}

// Feature returns all bits packed, first bit in the highest position.
// Every cell of the next layer sees the same feature.
func (f *Full) Feature(n int) (o uint32) {
	for _, v := range f.vec {
		o <<= 1
		if v {
			o |= 1
		}
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
func (f *Full) Disregard(n int) bool {
	return false
}
