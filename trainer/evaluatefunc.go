package trainer

import (
	"math"
	"sync/atomic"

	"github.com/neurlang/handwriting/net/feedforward"
	"github.com/neurlang/handwriting/parallel"
)

// sampleSize calculates the statistically sufficient sample size
// for a given dataset size N and significance level (0-100).
func sampleSize(N int, significance byte) int {
	if significance == 0 || significance >= 100 {
		return N
	}
	z := zScoreFromAlpha(100 - significance)

	// worst case proportion for max variability
	p := 0.5
	e := float64(100-significance) * 0.01

	ss := math.Pow(z, 2) * p * (1 - p) / math.Pow(e, 2)

	// finite population correction
	corrected := ss * float64(N) / (float64(N) - 1 + ss)

	if int(corrected) > N {
		return N
	}
	if corrected < 1 {
		return 1
	}
	return int(corrected)
}

// zScoreFromAlpha returns the Z-score for a given alpha level
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576
	case alpha <= 5:
		return 1.96
	case alpha <= 10:
		return 1.645
	default:
		return 1.96
	}
}

// NewEvaluateFunc returns a function which infers the first samples of a set of length
// samples and reports how many were classified correctly, together with a digest of all
// the predictions. A nonzero significance evaluates only a statistically sufficient
// portion of the set.
func NewEvaluateFunc(net feedforward.FeedforwardNetwork, length int, significance byte, threads int,
	sample func(i int) feedforward.Sample) func() (int, [32]byte) {

	portion := sampleSize(length, significance)

	return func() (int, [32]byte) {
		var success atomic.Int64
		h := parallel.NewUint16Hasher(portion)
		parallel.ForEach(portion, threads, func(i int) {
			s := sample(i)
			predicted := net.Infer(s)
			h.MustPutUint16(i, predicted)
			if predicted == s.Output() {
				success.Add(1)
			}
		})
		return int(success.Load()), h.Sum()
	}
}
