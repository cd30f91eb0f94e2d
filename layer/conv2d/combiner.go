package conv2d

// Put inserts a boolean at position n.
func (f *Conv2D) Put(n int, v bool) {
	f.vec[n] = v
}

// Feature returns the n-th window packed row by row, first cell in the highest bit.
func (f *Conv2D) Feature(n int) (o uint32) {
	across := (f.width-f.subwidth)/f.stride + 1
	down := (f.height-f.subheight)/f.stride + 1
	n %= across * down
	x0 := (n % across) * f.stride
	y0 := (n / across) * f.stride

	for i := 0; i < f.subheight; i++ {
		for j := 0; j < f.subwidth; j++ {
			o <<= 1
			if f.vec[f.width*(y0+i)+(x0+j)] {
				o |= 1
			}
		}
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
func (f *Conv2D) Disregard(n int) bool {
	// cells skipped by the stride are read by no window
	x := n % f.width
	y := n / f.width
	inX := x <= ((f.width-f.subwidth)/f.stride)*f.stride+f.subwidth-1 && (f.subwidth >= f.stride || x%f.stride < f.subwidth)
	inY := y <= ((f.height-f.subheight)/f.stride)*f.stride+f.subheight-1 && (f.subheight >= f.stride || y%f.stride < f.subheight)
	return !(inX && inY)
}
