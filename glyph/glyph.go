// Package glyph holds the normalized 28x28 single channel character image shared by
// the dataset loader, the segmenter and the classifier.
package glyph

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	// Size is the width and height of a glyph
	Size = 28

	// NumClasses is the width of a one-hot label and of the classifier output
	NumClasses = 127

	// Levels is the number of gray levels a pixel is quantized to in a feature
	Levels = 16

	// Windows is the number of 2x2 windows, one per first layer hashtron
	Windows = (Size - 1) * (Size - 1)
)

// ErrEmptyMat is returned when a glyph is made from an empty matrix
var ErrEmptyMat = errors.New("empty image")

// Image is a row major 28x28 image with values from 0 to 1
type Image [Size * Size]float32

// OneHot is a categorical label
type OneHot [NumClasses]float32

// Shape is the shape of an Image including the trailing channel dimension
func Shape() [3]int {
	return [3]int{Size, Size, 1}
}

// At returns the pixel in column x and row y
func (g *Image) At(x, y int) float32 {
	return g[y*Size+x]
}

// Batch returns the image as a batch of one, shaped 1x28x28x1
func (g *Image) Batch() (o [1][Size][Size][1]float32) {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			o[0][y][x][0] = g.At(x, y)
		}
	}
	return
}

func quantize(v float32) uint32 {
	q := int(v*(Levels-1) + 0.5)
	if q < 0 {
		q = 0
	}
	if q > Levels-1 {
		q = Levels - 1
	}
	return uint32(q)
}

// Feature packs the 2x2 window at position n as four quantized bytes,
// the top left pixel in the lowest byte. Positions wrap around Windows.
func (g *Image) Feature(n int) uint32 {
	n %= Windows
	x, y := n%(Size-1), n/(Size-1)
	return quantize(g.At(x, y)) |
		quantize(g.At(x+1, y))<<8 |
		quantize(g.At(x, y+1))<<16 |
		quantize(g.At(x+1, y+1))<<24
}

// FromMat resizes a single channel 8 bit matrix to 28x28 with interp and scales it to [0,1]
func FromMat(m gocv.Mat, interp gocv.InterpolationFlags) (g Image, err error) {
	if m.Empty() {
		return g, ErrEmptyMat
	}
	if m.Channels() != 1 || m.Type() != gocv.MatTypeCV8U {
		return g, fmt.Errorf("expected a single channel 8 bit image, got %d channels of type %v", m.Channels(), m.Type())
	}
	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(m, &small, image.Pt(Size, Size), 0, 0, interp)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			g[y*Size+x] = float32(small.GetUCharAt(y, x)) / 255
		}
	}
	return g, nil
}

// Categorical one-hot encodes index
func Categorical(index int) (o OneHot, err error) {
	if index < 0 || index >= NumClasses {
		return o, fmt.Errorf("class index %d outside 0..%d", index, NumClasses-1)
	}
	o[index] = 1
	return o, nil
}

// ArgMax returns the index of the largest value, the first one on ties.
// It returns -1 for an empty vector.
func ArgMax(v []float32) int {
	best := -1
	for i, x := range v {
		if best == -1 || x > v[best] {
			best = i
		}
	}
	return best
}
