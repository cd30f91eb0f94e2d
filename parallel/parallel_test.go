package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForEach(t *testing.T) {
	var sum atomic.Int64
	ForEach(1000, 7, func(i int) {
		sum.Add(int64(i))
	})
	if sum.Load() != 999*1000/2 {
		t.Errorf("sum %d", sum.Load())
	}
	ForEach(0, 3, func(i int) {
		t.Errorf("called on empty range")
	})
}

func TestLoopUntil(t *testing.T) {
	var found atomic.Uint32
	Loop(4).LoopUntil(func(i uint32, ender LoopStopper) bool {
		if i == 500 {
			found.Store(i)
			return true
		}
		return ender.Load()
	})
	if found.Load() != 500 {
		t.Errorf("index 500 not reached")
	}
}

func TestMoveSet(t *testing.T) {
	m := NewMoveSet()
	var state [32]byte
	state[0] = 1
	m.Insert(state, 3, 0)
	if !m.Exists(state, 3, 0) {
		t.Errorf("move lost")
	}
	if m.Exists(state, 4, 0) || m.Exists(state, 3, 1) {
		t.Errorf("unexpected move")
	}
	m.Insert(state, 4, 1)
	if m.Exists(state, 3, 1) || !m.Exists(state, 4, 1) || m.Len() != 1 {
		t.Errorf("new level must forget old moves")
	}
}
