package majpool2d

import "testing"

func TestFeatureMajority(t *testing.T) {
	c := MustNew(6, 3, 3, 3).Lay()
	// left block gets 5 of 9 cells, right block 4 of 9
	for _, pos := range []int{0, 1, 2, 6, 7} {
		c.Put(pos, true)
	}
	for _, pos := range []int{3, 4, 5, 9} {
		c.Put(pos, true)
	}
	if got := c.Feature(0); got != 0x2 {
		t.Errorf("Feature = %b, want 10", got)
	}
}

func TestDisregard(t *testing.T) {
	c := MustNew(3, 3, 3, 3).Lay()
	// 4 true and 4 false among the others: cell 8 decides
	for _, pos := range []int{0, 1, 2, 3} {
		c.Put(pos, true)
	}
	if c.Disregard(8) {
		t.Errorf("tied block must regard the deciding cell")
	}
	c.Put(4, true)
	if !c.Disregard(8) {
		t.Errorf("decided block must disregard the last cell")
	}
}

func TestNewTooLarge(t *testing.T) {
	if _, err := New(28, 28, 2, 2); err == nil {
		t.Errorf("196 pooled cells accepted")
	}
	l, err := New(27, 27, 9, 9)
	if err != nil || l == nil {
		t.Errorf("27x27 by 9x9 rejected: %v", err)
	}
}
