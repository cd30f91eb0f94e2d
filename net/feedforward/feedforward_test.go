package feedforward

import (
	"bytes"
	"compress/lzw"
	"math/rand"
	"testing"

	"github.com/neurlang/handwriting/datasets"
	"github.com/neurlang/handwriting/layer/full"
	"github.com/neurlang/handwriting/learning"
)

type sample struct {
	feat [4]uint32
	out  uint16
}

func (s sample) Feature(n int) uint32 { return s.feat[n] }
func (s sample) Output() uint16       { return s.out }

func small() (f FeedforwardNetwork) {
	f.NewLayer(4, 1)
	f.NewCombiner(full.MustNew(4))
	f.NewLayer(1, 2)
	return
}

func samples(n int) (o []sample) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		var s sample
		for j := range s.feat {
			s.feat[j] = rng.Uint32()
		}
		s.out = uint16(rng.Intn(4))
		o = append(o, s)
	}
	return
}

func TestPositions(t *testing.T) {
	f := small()
	if f.Len() != 5 || f.LenLayers() != 3 {
		t.Fatalf("len %d layers %d", f.Len(), f.LenLayers())
	}
	if f.GetLayer(3) != 0 || f.GetLayer(4) != 2 || f.GetLayer(5) != -1 {
		t.Errorf("bad layer lookup")
	}
	if f.GetPosition(4) != 0 || f.GetPosition(2) != 2 {
		t.Errorf("bad position lookup")
	}
	if !f.IsMapLayerOf(4) || f.IsMapLayerOf(0) {
		t.Errorf("bad map layer detection")
	}
	if f.GetBits() != 2 {
		t.Errorf("bits %d", f.GetBits())
	}
}

func TestTallyReadout(t *testing.T) {
	f := small()
	set := samples(20)
	var tally datasets.Tally
	tally.Init()
	for _, s := range set {
		f.Tally(s, 4, &tally)
	}
	h := learning.HyperParameters{Threads: 2, DeadlineMs: 5000, DeadlineRetry: 5}
	ht, err := h.Training(tally.Dataset(f.GetBits()), f.GetBits())
	if err != nil {
		t.Fatal(err)
	}
	*f.GetHashtron(4) = *ht

	// samples sharing a hidden feature with a different class cannot all be right
	outputs := make(map[uint32]map[uint16]struct{})
	for _, s := range set {
		inter, _ := f.Forward(s, 0, -1, 0)
		feat := inter.Feature(0)
		if outputs[feat] == nil {
			outputs[feat] = make(map[uint16]struct{})
		}
		outputs[feat][s.out] = struct{}{}
	}
	for _, s := range set {
		inter, _ := f.Forward(s, 0, -1, 0)
		if len(outputs[inter.Feature(0)]) != 1 {
			continue
		}
		if got := f.Infer(s); got != s.out {
			t.Errorf("infer %d, want %d", got, s.out)
		}
	}
}

func TestWeightsRoundTrip(t *testing.T) {
	f := small()
	var buf bytes.Buffer
	if err := f.WriteCompressedWeights(&buf); err != nil {
		t.Fatal(err)
	}
	g := small()
	if err := g.ReadCompressedWeights(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < f.Len(); i++ {
		a, _ := f.GetHashtron(i).MarshalJSON()
		b, _ := g.GetHashtron(i).MarshalJSON()
		if !bytes.Equal(a, b) {
			t.Errorf("hashtron %d differs: %s %s", i, a, b)
		}
	}
	for _, s := range samples(10) {
		if f.Infer(s) != g.Infer(s) {
			t.Errorf("loaded network infers differently")
		}
	}

	var other FeedforwardNetwork
	other.NewLayer(2, 1)
	if err := other.ReadCompressedWeights(bytes.NewReader(buf.Bytes())); err == nil {
		t.Errorf("shape mismatch not detected")
	}
}

func weightsJSON(f *FeedforwardNetwork) (o [][]byte) {
	for i := 0; i < f.Len(); i++ {
		b, _ := f.GetHashtron(i).MarshalJSON()
		o = append(o, b)
	}
	return
}

func TestWeightsReadoutMismatch(t *testing.T) {
	f := small()
	var buf bytes.Buffer
	if err := f.WriteCompressedWeights(&buf); err != nil {
		t.Fatal(err)
	}
	var wide FeedforwardNetwork
	wide.NewLayer(4, 1)
	wide.NewCombiner(full.MustNew(4))
	wide.NewLayer(1, 3)
	before := weightsJSON(&wide)
	if err := wide.ReadCompressedWeights(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatalf("readout width mismatch not detected")
	}
	after := weightsJSON(&wide)
	for i := range before {
		if !bytes.Equal(before[i], after[i]) {
			t.Errorf("hashtron %d changed by a failed load", i)
		}
	}
	if wide.GetBits() != 3 {
		t.Errorf("readout width changed to %d", wide.GetBits())
	}
}

func TestWeightsPartialLoad(t *testing.T) {
	f := small()
	before := weightsJSON(&f)
	// the last hashtron has an empty program
	var raw bytes.Buffer
	lw := lzw.NewWriter(&raw, lzw.LSB, 8)
	entries := append(before[:len(before)-1:len(before)-1], []byte(`{"bits":2,"program":[]}`))
	if _, err := lw.Write(append(append([]byte("["), bytes.Join(entries, []byte(","))...), ']')); err != nil {
		t.Fatal(err)
	}
	if err := lw.Close(); err != nil {
		t.Fatal(err)
	}
	g := small()
	old := weightsJSON(&g)
	if err := g.ReadCompressedWeights(&raw); err == nil {
		t.Fatalf("bad hashtron not detected")
	}
	for i, b := range weightsJSON(&g) {
		if !bytes.Equal(b, old[i]) {
			t.Errorf("hashtron %d changed by a failed load", i)
		}
	}
}

func TestShuffle(t *testing.T) {
	f := small()
	o := f.Shuffle(false, rand.New(rand.NewSource(3)))
	if len(o) != 5 || o[4] != 4 {
		t.Fatalf("bad order %v", o)
	}
	seen := make(map[int]bool)
	for _, v := range o[:4] {
		if v < 0 || v > 3 || seen[v] {
			t.Fatalf("bad first layer order %v", o)
		}
		seen[v] = true
	}
	r := f.Shuffle(true, rand.New(rand.NewSource(3)))
	if r[0] != 4 {
		t.Errorf("reverse must start with the readout: %v", r)
	}
}
