package majpool2d

// Put sets the n-th bool of the plane.
func (s *MajPool2D) Put(n int, v bool) {
	s.vec[n] = v
}

// vote sums the block (bx, by) as +1 for true and -1 for false, skipping position skip.
func (s *MajPool2D) vote(bx, by, skip int) (w int) {
	for i := 0; i < s.subheight; i++ {
		for j := 0; j < s.subwidth; j++ {
			pos := s.width*(by*s.subheight+i) + bx*s.subwidth + j
			if pos == skip {
				continue
			}
			if s.vec[pos] {
				w++
			} else {
				w--
			}
		}
	}
	return
}

// Disregard tells whether putting value false at position n would not affect
// any feature output (as opposed to putting value true at position n).
func (s *MajPool2D) Disregard(n int) bool {
	bx := (n % s.width) / s.subwidth
	by := (n / s.width) / s.subheight
	if bx >= s.width/s.subwidth || by >= s.height/s.subheight {
		return true
	}
	w := s.vote(bx, by, n)
	return !(w == 0 || w == 1)
}

// Feature returns the whole pooled plane, row by row, first block in the highest bit.
func (s *MajPool2D) Feature(m int) (o uint32) {
	for by := 0; by < s.height/s.subheight; by++ {
		for bx := 0; bx < s.width/s.subwidth; bx++ {
			o <<= 1
			if s.vote(bx, by, -1) > 0 {
				o |= 1
			}
		}
	}
	return
}
