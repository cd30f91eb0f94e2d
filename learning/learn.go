// Package learning implements the learning stage of a hashtron: it finds a program
// of (salt, modulo) commands which maps every input of a dataset to its output bit.
package learning

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/neurlang/handwriting/datasets"
	"github.com/neurlang/handwriting/hash"
	"github.com/neurlang/handwriting/hashtron"
	"github.com/neurlang/handwriting/parallel"
)

// ErrNoSolution is returned when no program was found within the retry budget
var ErrNoSolution = errors.New("no hashtron program found")

// maxSteps bounds the salt searches of a single retry
const maxSteps = 1 << 12

// Training solves the dataset and returns a hashtron with bits output bits.
// An empty dataset yields a random hashtron.
func (h *HyperParameters) Training(d datasets.Dataset, bits byte) (*hashtron.Hashtron, error) {
	if len(d) == 0 {
		return hashtron.New(nil, bits)
	}
	alphabet := d.Split().Alphabet()
	size := len(alphabet[0]) + len(alphabet[1])
	program := h.Reducing(alphabet)
	if program == nil {
		return nil, fmt.Errorf("dataset of %d inputs: %w", size, ErrNoSolution)
	}
	h.logger().Debug("solved hashtron",
		zap.Int("inputs", size),
		zap.Int("commands", len(program)),
	)
	return hashtron.New(program, bits)
}

func longest(alphabet [2][]uint32) uint32 {
	if len(alphabet[1]) > len(alphabet[0]) {
		return uint32(len(alphabet[1]))
	}
	return uint32(len(alphabet[0]))
}

func solved(alphabet [2][]uint32) bool {
	return len(alphabet[0]) == 1 && len(alphabet[1]) == 1 &&
		alphabet[0][0] == 0 && alphabet[1][0] == 1
}

// fill puts a value into an empty set, one which the other set does not contain
func fill(alphabet *[2][]uint32, rng *rand.Rand) {
	for i := 0; i < 2; i++ {
		if len(alphabet[i]) != 0 {
			continue
		}
		other := make(map[uint32]struct{}, len(alphabet[1-i]))
		for _, v := range alphabet[1-i] {
			other[v] = struct{}{}
		}
		v := rng.Uint32()
		for {
			if _, ok := other[v]; !ok {
				break
			}
			v++
		}
		alphabet[i] = append(alphabet[i], v)
	}
}

// reduce applies a command to both sets, merging the values which collide
func reduce(alphabet [2][]uint32, salt, max uint32) (out [2][]uint32) {
	for j := 0; j < 2; j++ {
		set := make(map[uint32]struct{}, len(alphabet[j]))
		for _, v := range alphabet[j] {
			set[hash.Hash(v, salt, max)] = struct{}{}
		}
		out[j] = make([]uint32, 0, len(set))
		for v := range set {
			out[j] = append(out[j], v)
		}
	}
	return
}

// search looks for a salt which maps no false value onto a true value modulo max.
// Unless only two values remain, the salt must also merge at least two values.
// With two values left, it must map the false value to 0 and the true value to 1.
func (h *HyperParameters) search(alphabet [2][]uint32, center, minadd, max uint32) (salt uint32, ok bool) {
	total := len(alphabet[0]) + len(alphabet[1])
	deadline := h.deadline()
	var mut sync.Mutex
	parallel.Loop(h.threads()).LoopUntil(func(nonce uint32, ender parallel.LoopStopper) bool {
		if int(nonce) >= deadline {
			return true
		}
		centers := center ^ (nonce + minadd)
		seen := make(map[uint32]uint8, total)
		for j := 0; j < 2; j++ {
			for i, v := range alphabet[j] {
				if i&255 == 255 && ender.Load() {
					return false
				}
				k := hash.Hash(v, centers, max)
				seen[k] |= 1 << j
				if seen[k] == 3 {
					return false
				}
			}
		}
		if len(seen) != 2 && len(seen) == total {
			return false
		}
		if total == 2 && (seen[0] != 1 || seen[1] != 2) {
			return false
		}
		mut.Lock()
		defer mut.Unlock()
		if !ok {
			salt, ok = centers, true
		}
		return true
	})
	return
}

// Reducing finds a program which maps every value of alphabet[0] to 0 and every value
// of alphabet[1] to 1. Each command hashes the sets into a smaller modulo while keeping
// them apart. It returns nil when every retry ran out of salts or commands.
func (h *HyperParameters) Reducing(alphabet [2][]uint32) [][2]uint32 {
	if len(alphabet[0])+len(alphabet[1]) == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(h.Seed))
	fill(&alphabet, rng)
	if h.Shuffle {
		for i := range alphabet {
			rng.Shuffle(len(alphabet[i]), func(a, b int) {
				alphabet[i][a], alphabet[i][b] = alphabet[i][b], alphabet[i][a]
			})
		}
	}
	var (
		orig     = alphabet
		center   uint32
		retries  = h.retries()
		factor   = h.factor()
		subtract = h.subtractor()
	)
	for u := retries; u > 0; u-- {
		alphabet = orig
		maxl := longest(alphabet)
		maxx := uint32((uint64(maxl) * uint64(maxl)) / uint64(factor))
		if maxx < 2 {
			maxx = 2
		}
		var program [][2]uint32
		var minadd uint32
		initial := true
		for maxmax, steps := maxx, 0; maxx <= maxmax && steps < maxSteps; steps++ {
			win, ok := h.search(alphabet, center, minadd, maxx)
			if !ok {
				if initial {
					// nothing collides at this modulo, start lower
					maxmax = maxx
					maxx = uint32(uint64(maxx) * uint64(u) / uint64(retries+1))
					if maxx < 2 {
						break
					}
					continue
				}
				maxx++
				continue
			}
			initial = false
			size := len(alphabet[0]) + len(alphabet[1])
			program = append(program, [2]uint32{win, maxx})
			alphabet = reduce(alphabet, win, maxx)
			if solved(alphabet) {
				return program
			}
			shrunk := len(alphabet[0])+len(alphabet[1]) < size
			maxl = longest(alphabet)
			sub := subtract
			if sub > maxl {
				sub = maxl
			}
			newmaxx := uint32(uint64(maxx) * (uint64(maxl-sub) * uint64(maxl-sub)) / (uint64(maxl) * uint64(maxl)))
			if newmaxx >= maxx || !shrunk {
				minadd++
			} else {
				maxmax = maxx
				maxx = newmaxx
				minadd = 0
			}
			center = win
			if maxx < maxl {
				maxx = maxl
			}
			if maxx < 2 {
				maxx = 2
			}
		}
		h.logger().Debug("salt search restarted", zap.Uint32("retries_left", u-1))
	}
	return nil
}
