// Package nested loads a labeled glyph dataset from a directory tree with one
// sub-directory per class: root/<class>/<image>.
package nested

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/neurlang/handwriting/glyph"
)

// ErrTooManyClasses is returned when an image belongs to a class whose rank does
// not fit the one-hot label
var ErrTooManyClasses = errors.New("class rank does not fit the one-hot label")

// ClassDir is one class directory. Its name has two readings: Rank is the position
// of the directory in sorted order and is the label index, CodePoint parses the name
// as the character code.
type ClassDir struct {
	Name string
	Rank int
}

// CodePoint parses the directory name as a decimal character code
func (c ClassDir) CodePoint() (int, error) {
	return strconv.Atoi(c.Name)
}

// Classes lists the sub-directories of root sorted by name. Regular files at
// the root level are ignored.
func Classes(root string) ([]ClassDir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []ClassDir
	for _, e := range entries {
		dir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			// dangling links are skipped
			if fi, err := os.Stat(filepath.Join(root, e.Name())); err == nil {
				dir = fi.IsDir()
			}
		}
		if !dir {
			continue
		}
		out = append(out, ClassDir{Name: e.Name(), Rank: len(out)})
	}
	return out, nil
}

// LabeledImageSet holds co-indexed images and one-hot labels. Index holds the
// label rank of each row.
type LabeledImageSet struct {
	Images  []glyph.Image
	Labels  []glyph.OneHot
	Index   []int
	Classes []ClassDir
}

// Len is the number of rows
func (s *LabeledImageSet) Len() int {
	return len(s.Images)
}

// Shuffle shuffles the rows keeping images and labels together
func (s *LabeledImageSet) Shuffle(seed int64) {
	rand.New(rand.NewSource(seed)).Shuffle(s.Len(), func(i, j int) {
		s.Images[i], s.Images[j] = s.Images[j], s.Images[i]
		s.Labels[i], s.Labels[j] = s.Labels[j], s.Labels[i]
		s.Index[i], s.Index[j] = s.Index[j], s.Index[i]
	})
}

// Split moves the trailing fraction of rows into a validation set. Both sets
// share the class list.
func (s *LabeledImageSet) Split(fraction float64) (train, validation *LabeledImageSet) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	cut := s.Len() - int(float64(s.Len())*fraction)
	train = &LabeledImageSet{
		Images:  s.Images[:cut:cut],
		Labels:  s.Labels[:cut:cut],
		Index:   s.Index[:cut:cut],
		Classes: s.Classes,
	}
	validation = &LabeledImageSet{
		Images:  s.Images[cut:],
		Labels:  s.Labels[cut:],
		Index:   s.Index[cut:],
		Classes: s.Classes,
	}
	return
}

type options struct {
	logger *zap.Logger
}

// Option configures Load
type Option func(*options)

// WithLogger logs the skipped files at debug level
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Load reads every image under root. Images are decoded as 8 bit grayscale,
// resized to 28x28 and scaled to [0,1]. Files which do not decode are skipped.
// Rows come in class directory order, then file name order.
func Load(root string, opts ...Option) (*LabeledImageSet, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	classes, err := Classes(root)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	set := &LabeledImageSet{Classes: classes}
	for _, class := range classes {
		dir := filepath.Join(root, class.Name)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("list class %s: %w", class.Name, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, e.Name())
			img, ok := decode(path)
			if !ok {
				o.logger.Debug("skipping unreadable file", zap.String("path", path))
				continue
			}
			label, err := glyph.Categorical(class.Rank)
			if err != nil {
				return nil, fmt.Errorf("class %s with rank %d: %w", class.Name, class.Rank, ErrTooManyClasses)
			}
			set.Images = append(set.Images, img)
			set.Labels = append(set.Labels, label)
			set.Index = append(set.Index, class.Rank)
		}
	}
	o.logger.Info("dataset loaded",
		zap.String("root", root),
		zap.Int("classes", len(classes)),
		zap.Int("images", set.Len()),
	)
	return set, nil
}

func decode(path string) (glyph.Image, bool) {
	m := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer m.Close()
	img, err := glyph.FromMat(m, gocv.InterpolationLinear)
	return img, err == nil
}
