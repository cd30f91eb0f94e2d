package parallel

import (
	"encoding/binary"
	"sync"
)

// MoveSet remembers which hashtron was already retrained from which network state.
// Moves belong to a level, such as the accuracy reached. Changing the level forgets
// the moves recorded on the previous one.
type MoveSet struct {
	mu    sync.RWMutex
	set   map[[40]byte]struct{}
	level int
}

// NewMoveSet makes an empty set on level 0
func NewMoveSet() *MoveSet {
	return &MoveSet{
		set: make(map[[40]byte]struct{}),
	}
}

// Insert records that the hashtron at position was retrained from state on level
func (m *MoveSet) Insert(state [32]byte, position int, level int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.level != level {
		m.set = make(map[[40]byte]struct{})
		m.level = level
	}
	m.set[serialize(state, position)] = struct{}{}
}

// Exists reports whether the move was already recorded on level
func (m *MoveSet) Exists(state [32]byte, position int, level int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.level != level {
		return false
	}

	_, exists := m.set[serialize(state, position)]
	return exists
}

// Len is the number of moves recorded on the current level
func (m *MoveSet) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.set)
}

func serialize(state [32]byte, position int) [40]byte {
	var key [40]byte
	copy(key[:32], state[:])
	binary.LittleEndian.PutUint64(key[32:], uint64(position))
	return key
}
