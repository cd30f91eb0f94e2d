package hashtron

import "math/rand"

// New creates a hashtron from a program. A nil program gives a random single command
// hashtron, which is how untrained network cells start out.
func New(program [][2]uint32, bits byte) (h *Hashtron, err error) {
	h = new(Hashtron)
	if program == nil {
		h.program = [][2]uint32{{rand.Uint32() >> 1, 2}}
	} else {
		h.program = program
	}
	h.SetBits(bits)
	return
}
