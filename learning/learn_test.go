package learning

import (
	"fmt"
	"testing"
	"time"

	"github.com/neurlang/handwriting/datasets"
)

func TestTrainingReproducesDataset(t *testing.T) {
	h := HyperParameters{Threads: 4, DeadlineMs: 5000, DeadlineRetry: 5}
	d := make(datasets.Dataset)
	for i := uint32(0); i < 200; i++ {
		d[i*7919+13] = (i*i)%3 == 0
	}
	ht, err := h.Training(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range d {
		if (ht.Forward(k, false) == 1) != v {
			t.Errorf("input %d: want %v", k, v)
		}
	}
}

func TestTrainingMultiBit(t *testing.T) {
	h := HyperParameters{Threads: 2, DeadlineMs: 5000, DeadlineRetry: 5}
	var tally datasets.Tally
	tally.Init()
	outputs := map[uint16]uint16{1: 65, 2: 66, 300: 7, 511: 126}
	for f, o := range outputs {
		tally.AddToMapping(f, o)
	}
	ht, err := h.Training(tally.Dataset(7), 7)
	if err != nil {
		t.Fatal(err)
	}
	for f, o := range outputs {
		if got := ht.Forward(uint32(f), false); got != o {
			t.Errorf("feature %d: got %d want %d", f, got, o)
		}
	}
}

func TestTrainingSingleClass(t *testing.T) {
	h := HyperParameters{Threads: 1}
	d := datasets.Dataset{5: true, 6: true}
	ht, err := h.Training(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ht.Forward(5, false) != 1 || ht.Forward(6, false) != 1 {
		t.Errorf("single class set not reproduced")
	}
}

func TestTrainingSmallSetsTerminate(t *testing.T) {
	sets := []datasets.Dataset{
		{5: true, 6: true},
		{5: true, 6: false},
		{1: true, 2: false, 3: true},
	}
	for n, d := range sets {
		for _, threads := range []int{1, 4} {
			for seed := int64(0); seed < 10; seed++ {
				d := d
				h := HyperParameters{Threads: threads, Seed: seed}
				t.Run(fmt.Sprintf("set%d/threads%d/seed%d", n, threads, seed), func(t *testing.T) {
					type result struct {
						in  map[uint32]uint16
						err error
					}
					done := make(chan result, 1)
					go func() {
						ht, err := h.Training(d, 1)
						if err != nil {
							done <- result{err: err}
							return
						}
						in := make(map[uint32]uint16, len(d))
						for k := range d {
							in[k] = ht.Forward(k, false)
						}
						done <- result{in: in}
					}()
					select {
					case r := <-done:
						if r.err != nil {
							t.Fatal(r.err)
						}
						for k, v := range d {
							if (r.in[k] == 1) != v {
								t.Errorf("input %d: want %v", k, v)
							}
						}
					case <-time.After(5 * time.Second):
						t.Fatal("training did not return")
					}
				})
			}
		}
	}
}

func TestReducingEmpty(t *testing.T) {
	var h HyperParameters
	if h.Reducing([2][]uint32{}) != nil {
		t.Errorf("empty alphabet must give no program")
	}
}
