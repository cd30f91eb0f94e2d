// Package datasets implements the training sets a single hashtron is solved on
package datasets

// Dataset maps an input feature of a hashtron to its desired output bit
type Dataset map[uint32]bool

// Init makes the dataset empty
func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// SplittedDataset holds the false set at index 0 and the true set at index 1
type SplittedDataset [2]map[uint32]struct{}

// Splitter is anything that can be split into a SplittedDataset
type Splitter interface {
	Split() SplittedDataset
}

// Split splits dataset into a false set and a true set
func (d Dataset) Split() (o SplittedDataset) {
	o[0] = make(map[uint32]struct{})
	o[1] = make(map[uint32]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// Alphabet lists the false set and the true set as slices
func (s SplittedDataset) Alphabet() (o [2][]uint32) {
	for i := range s {
		o[i] = make([]uint32, 0, len(s[i]))
		for v := range s[i] {
			o[i] = append(o[i], v)
		}
	}
	return
}
