// Package segment locates characters in a larger image. Edges are found with Canny,
// every external contour becomes a bounding box and the grayscale content of the box
// is resized to a glyph.
package segment

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"

	"github.com/neurlang/handwriting/glyph"
)

const (
	cannyLow  = 30
	cannyHigh = 150
	thickness = 2
)

var green = color.RGBA{0, 255, 0, 0}

// ErrUnreadable is returned when the input image cannot be decoded
var ErrUnreadable = errors.New("unreadable image")

// Region is one located character
type Region struct {
	Box  image.Rectangle
	Crop glyph.Image
}

// Batch returns the crop shaped 1x28x28x1
func (r Region) Batch() [1][glyph.Size][glyph.Size][1]float32 {
	return r.Crop.Batch()
}

// Result holds the input annotated with a green box per region, and the regions
// in the order the contours were found.
type Result struct {
	Annotated gocv.Mat
	Regions   []Region
}

// Close releases the annotated image
func (r *Result) Close() error {
	return r.Annotated.Close()
}

type options struct {
	logger *zap.Logger
}

// Option configures the segmenter
type Option func(*options)

// WithLogger logs every region found at debug level
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func gray(img gocv.Mat) (gocv.Mat, error) {
	out := gocv.NewMat()
	switch img.Channels() {
	case 1:
		img.CopyTo(&out)
	case 3:
		gocv.CvtColor(img, &out, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(img, &out, gocv.ColorBGRAToGray)
	default:
		out.Close()
		return gocv.Mat{}, fmt.Errorf("%d channels: %w", img.Channels(), ErrUnreadable)
	}
	return out, nil
}

// Segment finds the characters of a BGR image. The caller closes the result.
func Segment(img gocv.Mat, opts ...Option) (*Result, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if img.Empty() {
		return nil, ErrUnreadable
	}
	g, err := gray(img)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	edged := gocv.NewMat()
	defer edged.Close()
	gocv.Canny(g, &edged, cannyLow, cannyHigh)

	contours := gocv.FindContours(edged, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	annotated := gocv.NewMat()
	if img.Channels() == 1 {
		gocv.CvtColor(img, &annotated, gocv.ColorGrayToBGR)
	} else {
		img.CopyTo(&annotated)
	}

	res := &Result{Annotated: annotated}
	for i := 0; i < contours.Size(); i++ {
		box := gocv.BoundingRect(contours.At(i))
		gocv.Rectangle(&res.Annotated, box, green, thickness)

		roi := g.Region(box)
		crop, err := glyph.FromMat(roi, gocv.InterpolationArea)
		roi.Close()
		if err != nil {
			res.Close()
			return nil, fmt.Errorf("crop %v: %w", box, err)
		}
		o.logger.Debug("region", zap.Int("index", i), zap.Stringer("box", box))
		res.Regions = append(res.Regions, Region{Box: box, Crop: crop})
	}
	return res, nil
}

// SegmentFile reads a color image from path and segments it
func SegmentFile(path string, opts ...Option) (*Result, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return nil, fmt.Errorf("%s: %w", path, ErrUnreadable)
	}
	return Segment(img, opts...)
}

// SegmentImage segments a decoded image
func SegmentImage(img image.Image, opts ...Option) (*Result, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrUnreadable
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	m, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(m, &bgr, gocv.ColorRGBAToBGR)
	return Segment(bgr, opts...)
}
