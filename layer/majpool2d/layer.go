// Package majpool2d implements a 2D majority pooling layer and combiner
package majpool2d

import "fmt"
import "github.com/neurlang/handwriting/layer"

// MajPool2DLayer pools a width x height bit plane by majority vote over
// subwidth x subheight blocks. Cells that do not fill a whole block are ignored.
type MajPool2DLayer struct {
	width, height, subwidth, subheight int
}

// MajPool2D is the combiner instantiated by MajPool2DLayer
type MajPool2D struct {
	vec                                []bool
	width, height, subwidth, subheight int
}

// New creates a new MajPool2D layer with size and subsize. The pooled plane is packed
// into a single feature, so it must not exceed 32 cells.
func New(width, height, subwidth, subheight int) (o *MajPool2DLayer, err error) {
	if subwidth <= 0 || subheight <= 0 || width < subwidth || height < subheight {
		return nil, fmt.Errorf("New MajPool2D: Block %dx%d does not fit plane %dx%d", subwidth, subheight, width, height)
	}
	if (width/subwidth)*(height/subheight) > 32 {
		return nil, fmt.Errorf("New MajPool2D: Pooled plane %dx%d does not fit a feature", width/subwidth, height/subheight)
	}
	o = new(MajPool2DLayer)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	return
}

// MustNew creates a new MajPool2D layer with size and subsize
func MustNew(width, height, subwidth, subheight int) (o *MajPool2DLayer) {
	o, err := New(width, height, subwidth, subheight)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Lay turns MajPool2D layer into a combiner
func (i *MajPool2DLayer) Lay() layer.Combiner {
	var o MajPool2D
	o.vec = make([]bool, i.width*i.height)
	o.width = i.width
	o.height = i.height
	o.subwidth = i.subwidth
	o.subheight = i.subheight
	return &o
}
