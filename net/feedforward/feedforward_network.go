// Package feedforward implements a feedforward network of hashtron layers and combiners
package feedforward

import (
	"github.com/neurlang/handwriting/datasets"
	"github.com/neurlang/handwriting/hash"
	"github.com/neurlang/handwriting/hashtron"
	"github.com/neurlang/handwriting/layer"
)

// Input is one individual input to the feedforward network
type Input interface {

	// Feature extracts the input of the n-th hashtron of the first layer
	Feature(n int) uint32
}

// Intermediate is a value used as both layer input and layer output
type Intermediate interface {
	Input

	// Disregard reports whether the n-th bit put into the value cannot affect the output
	Disregard(n int) bool
}

// Sample is a training input together with the expected network output
type Sample interface {
	Input

	// Output is the class the network should infer
	Output() uint16
}

// SingleValue is a single value returned by the final layer
type SingleValue uint32

// Feature returns the value itself regardless of n
func (v SingleValue) Feature(n int) uint32 {
	return uint32(v)
}

// Disregard is always false for a single value
func (v SingleValue) Disregard(n int) bool {
	return false
}

// FeedforwardNetwork is a stack of hashtron layers, each followed by a combiner which
// packs the hashtron bits into the features of the next layer. The final layer holds
// one multi bit hashtron which maps its feature to the output class.
type FeedforwardNetwork struct {
	layers    [][]hashtron.Hashtron
	mapping   []byte
	combiners []layer.Layer
	premodulo []uint32
}

// Len returns the number of hashtrons which need to be trained inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, v := range f.layers {
		o += len(v)
	}
	return
}

// LenLayers returns the number of layers. Each hashtron layer and combiner counts as a layer.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer gets the layer number of hashtron based on hashtron number. Returns -1 on failure.
func (f FeedforwardNetwork) GetLayer(n int) int {
	for i, v := range f.layers {
		if n < len(v) {
			return i
		}
		n -= len(v)
	}
	return -1
}

// GetPosition gets the position of hashtron within layer based on the overall
// hashtron number. Returns -1 on failure.
func (f FeedforwardNetwork) GetPosition(n int) int {
	for _, v := range f.layers {
		if n < len(v) {
			return n
		}
		n -= len(v)
	}
	return -1
}

// GetHashtron gets n-th hashtron pointer in the network. Writing a new hashtron
// into the pointer replaces it in the network.
func (f FeedforwardNetwork) GetHashtron(n int) *hashtron.Hashtron {
	for _, v := range f.layers {
		if n < len(v) {
			return &v[n]
		}
		n -= len(v)
	}
	return nil
}

// NewLayer adds a hashtron layer to the end of network with n hashtrons, each recognizing bits bits.
func (f *FeedforwardNetwork) NewLayer(n int, bits byte) {
	f.NewLayerP(n, bits, 0)
}

// NewLayerP adds a hashtron layer with an input feature pre-modulo.
func (f *FeedforwardNetwork) NewLayerP(n int, bits byte, premodulo uint32) {
	var cells = make([]hashtron.Hashtron, n)
	for i := range cells {
		h, _ := hashtron.New(nil, bits)
		cells[i] = *h
	}
	if bits == 0 {
		bits = 1
	}
	f.layers = append(f.layers, cells)
	f.mapping = append(f.mapping, bits)
	f.combiners = append(f.combiners, nil)
	f.premodulo = append(f.premodulo, premodulo)
}

// NewCombiner adds a combiner layer to the end of network
func (f *FeedforwardNetwork) NewCombiner(l layer.Layer) {
	f.layers = append(f.layers, nil)
	f.mapping = append(f.mapping, 0)
	f.combiners = append(f.combiners, l)
	f.premodulo = append(f.premodulo, 0)
}

// GetBits reports the number of bits predicted by this network
func (f FeedforwardNetwork) GetBits() (ret byte) {
	if len(f.mapping) == 0 {
		return 1
	}
	ret = f.mapping[len(f.mapping)-1]
	if ret == 0 {
		ret = 1
	}
	return
}

// IsMapLayerOf checks if hashtron n lies in the final layer of the network.
func (f FeedforwardNetwork) IsMapLayerOf(n int) bool {
	l := f.GetLayer(n)
	return l != -1 && !f.hasCombiner(l)
}

func (f FeedforwardNetwork) hasCombiner(l int) bool {
	return len(f.combiners) > l+1 && f.combiners[l+1] != nil
}

// Forward computes the output of hashtron layer l on input in. The bit of the worst
// hashtron is negated when neg == 1 and reported as computed. When the layer is
// followed by a combiner the combiner is returned, otherwise the final value.
func (f FeedforwardNetwork) Forward(in Input, l, worst, neg int) (inter Intermediate, computed bool) {
	if f.hasCombiner(l) {
		var combiner = f.combiners[l+1].Lay()
		for i := range f.layers[l] {
			var feat = hash.Premodulo(in.Feature(i), i, f.premodulo[l])
			var bit = f.layers[l][i].Forward(feat, i == worst && neg == 1)
			combiner.Put(i, bit&1 != 0)
			if i == worst {
				computed = bit&1 != 0
			}
		}
		return combiner, computed
	}
	var feat = hash.Premodulo(in.Feature(0), 0, f.premodulo[l])
	var val = f.layers[l][0].Forward(feat, worst == 0 && neg == 1)
	return SingleValue(val), val&1 != 0
}

// Infer infers the network output based on input
func (f FeedforwardNetwork) Infer(in Input) uint16 {
	for l := 0; l < f.LenLayers(); l += 2 {
		in, _ = f.Forward(in, l, -1, 0)
	}
	return uint16(in.Feature(0))
}

func (f FeedforwardNetwork) loss(actual, expected uint16) (o int) {
	diff := (actual ^ expected) & (uint16(1)<<f.GetBits() - 1)
	for ; diff != 0; diff &= diff - 1 {
		o++
	}
	return
}

// Tally tallies the network on sample with respect to the to-be-trained worst hashtron,
// storing votes into the thread safe tally. The readout hashtron gets mapping votes.
// A hidden hashtron gets a vote for the output bit which brings the network output
// closer to the expected class, measured as the number of differing class bits.
func (f FeedforwardNetwork) Tally(sample Sample, worst int, tally *datasets.Tally) {
	l := f.GetLayer(worst)
	if l == -1 {
		return
	}
	var in Input = sample
	for prev := 0; prev < l; prev += 2 {
		in, _ = f.Forward(in, prev, -1, 0)
	}
	if !f.hasCombiner(l) {
		feat := hash.Premodulo(in.Feature(0), 0, f.premodulo[l])
		tally.AddToMapping(uint16(feat), sample.Output())
		return
	}
	pos := f.GetPosition(worst)
	ifw := hash.Premodulo(in.Feature(pos), pos, f.premodulo[l])

	var losses [2]int
	var compute [2]int8
	for neg := 0; neg < 2; neg++ {
		inter, computed := f.Forward(in, l, pos, neg)
		if neg == 0 && inter.Disregard(pos) {
			return
		}
		compute[neg] = -1
		if computed {
			compute[neg] = 1
		}
		var out Input = inter
		for post := l + 2; post < f.LenLayers(); post += 2 {
			out, _ = f.Forward(out, post, -1, 0)
		}
		losses[neg] = f.loss(uint16(out.Feature(0)), sample.Output())
	}
	if losses[0] == losses[1] {
		return
	}
	better := 0
	if losses[1] < losses[0] {
		better = 1
	}
	if losses[better] == 0 {
		tally.AddToCorrect(ifw, compute[better], better == 1)
	} else {
		tally.AddToImprove(ifw, compute[better], better == 1)
	}
}
