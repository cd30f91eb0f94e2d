// Package model builds, trains and evaluates the glyph classifier.
package model

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neurlang/handwriting/datasets"
	"github.com/neurlang/handwriting/datasets/nested"
	"github.com/neurlang/handwriting/glyph"
	"github.com/neurlang/handwriting/learning"
	"github.com/neurlang/handwriting/net/feedforward"
	"github.com/neurlang/handwriting/parallel"
	"github.com/neurlang/handwriting/trainer"
)

var (
	// ErrUnknownTopology is returned for a topology other than Deep and Shallow
	ErrUnknownTopology = errors.New("unknown topology")

	// ErrInputShape is returned when the input shape is not the glyph shape
	ErrInputShape = errors.New("unsupported input shape")
)

// Hyperparameters of the classifier and of the hashtron solver
type Hyperparameters struct {
	Epochs       int
	Threads      int
	Seed         int64
	Significance byte // evaluate training progress on a sufficient sample, 0 uses the whole set

	Factor        uint32
	Subtractor    uint32
	DeadlineMs    int
	DeadlineRetry int

	Logger *zap.Logger
}

// Evaluator reports loss and accuracy of a model on a labeled set
type Evaluator interface {
	Evaluate(set *nested.LabeledImageSet) (loss, accuracy float64)
}

// Classifier is a hashtron network classifying glyphs into numClasses classes
type Classifier struct {
	net        feedforward.FeedforwardNetwork
	numClasses int
	topology   Topology
	hp         Hyperparameters
	logger     *zap.Logger
}

type sample struct {
	img   *glyph.Image
	class uint16
}

func (s sample) Feature(n int) uint32 {
	return s.img.Feature(n)
}

func (s sample) Output() uint16 {
	return s.class
}

// Build makes an untrained classifier
func Build(inputShape [3]int, numClasses int, topology Topology, hp Hyperparameters) (*Classifier, error) {
	if inputShape != glyph.Shape() {
		return nil, fmt.Errorf("%v, want %v: %w", inputShape, glyph.Shape(), ErrInputShape)
	}
	if numClasses < 1 || numClasses > 1<<16 {
		return nil, fmt.Errorf("cannot classify into %d classes", numClasses)
	}
	width := byte(bits.Len(uint(numClasses - 1)))
	if width == 0 {
		width = 1
	}
	net, err := topology.network(width)
	if err != nil {
		return nil, err
	}
	logger := hp.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if hp.Threads <= 0 {
		hp.Threads = 1
	}
	return &Classifier{
		net:        net,
		numClasses: numClasses,
		topology:   topology,
		hp:         hp,
		logger:     logger,
	}, nil
}

// Topology reports the architecture of c
func (c *Classifier) Topology() Topology {
	return c.topology
}

// NumClasses reports the length of the predicted vector
func (c *Classifier) NumClasses() int {
	return c.numClasses
}

func (c *Classifier) samples(set *nested.LabeledImageSet) ([]sample, error) {
	out := make([]sample, set.Len())
	for i := range out {
		if set.Index[i] < 0 || set.Index[i] >= c.numClasses {
			return nil, fmt.Errorf("row %d: class %d outside %d classes", i, set.Index[i], c.numClasses)
		}
		out[i] = sample{img: &set.Images[i], class: uint16(set.Index[i])}
	}
	return out, nil
}

// Fit trains the classifier on set for the configured number of epochs
func (c *Classifier) Fit(set *nested.LabeledImageSet) error {
	samples, err := c.samples(set)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return errors.New("fit on an empty set")
	}
	logger := c.logger.Named("trainer").With(zap.String("run", uuid.New().String()))
	logger.Info("fit",
		zap.Stringer("topology", c.topology),
		zap.Int("samples", len(samples)),
		zap.Int("hashtrons", c.net.Len()),
		zap.Int("epochs", c.hp.Epochs),
	)
	h := &learning.HyperParameters{
		Threads:       c.hp.Threads,
		Shuffle:       true,
		Seed:          c.hp.Seed,
		DeadlineMs:    c.hp.DeadlineMs,
		DeadlineRetry: c.hp.DeadlineRetry,
		Factor:        c.hp.Factor,
		Subtractor:    c.hp.Subtractor,
		Logger:        logger.Named("learning"),
	}
	trainWorst := trainer.NewTrainWorstFunc(c.net, h, logger, func(worst int, tally *datasets.Tally) {
		parallel.ForEach(len(samples), c.hp.Threads, func(i int) {
			c.net.Tally(samples[i], worst, tally)
		})
	})
	evaluate := trainer.NewEvaluateFunc(c.net, len(samples), c.hp.Significance, c.hp.Threads, func(i int) feedforward.Sample {
		return samples[i]
	})
	loop := trainer.NewLoopFunc(c.net, c.hp.Epochs, len(samples), rand.New(rand.NewSource(c.hp.Seed)), logger, evaluate, trainWorst)
	correct := loop()
	logger.Info("fit done", zap.Int("correct", correct), zap.Int("samples", len(samples)))
	return nil
}

// PredictClass returns the class index of img
func (c *Classifier) PredictClass(img *glyph.Image) int {
	return int(c.net.Infer(sample{img: img})) % c.numClasses
}

// Predict returns a probability vector of length NumClasses. The network makes a
// discrete decision, so the vector is one-hot.
func (c *Classifier) Predict(img *glyph.Image) []float32 {
	out := make([]float32, c.numClasses)
	out[c.PredictClass(img)] = 1
	return out
}

// Evaluate reports the accuracy on set and the loss, which is the mean fraction of
// class bits the network got wrong. An empty set scores zero.
func (c *Classifier) Evaluate(set *nested.LabeledImageSet) (loss, accuracy float64) {
	n := set.Len()
	if n == 0 {
		return 0, 0
	}
	width := int(c.net.GetBits())
	var correct, wrongBits atomic.Int64
	parallel.ForEach(n, c.hp.Threads, func(i int) {
		predicted := c.PredictClass(&set.Images[i])
		if predicted == set.Index[i] {
			correct.Add(1)
			return
		}
		wrongBits.Add(int64(bits.OnesCount(uint(predicted ^ set.Index[i]))))
	})
	loss = float64(wrongBits.Load()) / float64(n*width)
	accuracy = float64(correct.Load()) / float64(n)
	return
}

// ValidateModel returns the accuracy of m on set as a percentage
func ValidateModel(m Evaluator, set *nested.LabeledImageSet) float64 {
	_, accuracy := m.Evaluate(set)
	return accuracy * 100
}

// Save writes the weights to path
func (c *Classifier) Save(path string) error {
	return c.net.WriteCompressedWeightsToFile(path)
}

// Load reads weights written by a classifier built with the same topology and classes
func (c *Classifier) Load(path string) error {
	if err := c.net.ReadCompressedWeightsFromFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Resume loads weights from path when the file exists, so that training continues
// from them. It reports whether weights were loaded.
func (c *Classifier) Resume(path string) (bool, error) {
	return trainer.Resume(&c.net, path)
}
