// Package conv2d implements a 2D bit-convolution layer and combiner
package conv2d

import "fmt"
import "github.com/neurlang/handwriting/layer"

// Conv2DLayer slides a subwidth x subheight window with a stride over a width x height bit plane.
type Conv2DLayer struct {
	width, height, subwidth, subheight, stride int
}

// Conv2D is the combiner instantiated by Conv2DLayer
type Conv2D struct {
	vec                                        []bool
	width, height, subwidth, subheight, stride int
}

// MustNew creates a new Conv2D layer with size, subsize and stride
func MustNew(width, height, subwidth, subheight, stride int) *Conv2DLayer {
	o, err := New(width, height, subwidth, subheight, stride)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with size, subsize and stride. The window must fit into
// 32 bits, as each window is packed into one feature.
func New(width, height, subwidth, subheight, stride int) (o *Conv2DLayer, err error) {
	if width < subwidth {
		return nil, fmt.Errorf("New Conv2D: Width %d is lower than Subwidth %d", width, subwidth)
	}
	if height < subheight {
		return nil, fmt.Errorf("New Conv2D: Height %d is lower than Subheight %d", height, subheight)
	}
	if subwidth*subheight > 32 || subwidth*subheight == 0 {
		return nil, fmt.Errorf("New Conv2D: Window %dx%d does not fit a feature", subwidth, subheight)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("New Conv2D: Stride %d is not positive", stride)
	}
	o = new(Conv2DLayer)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	o.stride = stride
	return
}

// Windows reports how many features (window positions) the layer produces
func (i *Conv2DLayer) Windows() int {
	return ((i.width-i.subwidth)/i.stride + 1) * ((i.height-i.subheight)/i.stride + 1)
}

// Lay turns Conv2D layer into a combiner
func (i *Conv2DLayer) Lay() layer.Combiner {
	var o Conv2D
	o.vec = make([]bool, i.width*i.height)
	o.width = i.width
	o.height = i.height
	o.subwidth = i.subwidth
	o.subheight = i.subheight
	o.stride = i.stride
	return &o
}
