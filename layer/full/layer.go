// Package full implements a fully connected layer and combiner
package full

import "fmt"
import "github.com/neurlang/handwriting/layer"

// FullLayer connects every bit of the previous layer to every cell of the next one.
type FullLayer struct {
	size int
}

// Full is the combiner instantiated by FullLayer
type Full struct {
	vec []bool
}

// MustNew creates a new full layer with size
func MustNew(size int) *FullLayer {
	o, err := New(size)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with size. All bits are packed into one feature.
func New(size int) (o *FullLayer, err error) {
	if size <= 0 || size > 32 {
		return nil, fmt.Errorf("New Full: Size %d does not fit a feature", size)
	}
	o = new(FullLayer)
	o.size = size
	return
}

// Lay turns full layer into a combiner
func (i *FullLayer) Lay() layer.Combiner {
	o := new(Full)
	o.vec = make([]bool, i.size)
	return o
}
