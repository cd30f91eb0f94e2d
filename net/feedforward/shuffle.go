package feedforward

import "math/rand"

// Shuffle returns every hashtron number once, shuffled within each layer and
// ordered from the first layer to the last, or the other way round when reverse.
func (f FeedforwardNetwork) Shuffle(reverse bool, rng *rand.Rand) (o []int) {
	o = make([]int, f.Len())
	for i := range o {
		o[i] = i
	}
	var base = 0
	for l := range f.layers {
		n := len(f.layers[l])
		rng.Shuffle(n, func(i, j int) { o[base+i], o[base+j] = o[base+j], o[base+i] })
		base += n
	}
	if reverse {
		for i := 0; 2*i < len(o); i++ {
			o[i], o[len(o)-i-1] = o[len(o)-i-1], o[i]
		}
	}
	return o
}
