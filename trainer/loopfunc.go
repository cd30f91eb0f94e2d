package trainer

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/neurlang/handwriting/net/feedforward"
	"github.com/neurlang/handwriting/parallel"
)

// NewLoopFunc returns the training loop. Each epoch visits every hashtron once, from the
// readout layer down to the first layer, retraining it with trainWorst and keeping the
// change when evaluate reports no fewer correct samples. The loop ends after epochs,
// once target samples are correct, or when an epoch leaves the network unchanged.
// It returns the final number of correct samples.
func NewLoopFunc(net feedforward.FeedforwardNetwork, epochs, target int, rng *rand.Rand, logger *zap.Logger,
	evaluate func() (int, [32]byte), trainWorst func(worst int) (undo func())) func() int {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func() int {
		var m = parallel.NewMoveSet()
		var success, state = evaluate()
		logger.Info("initial evaluation", zap.Int("correct", success), zap.Int("target", target))

		for epoch := 0; epoch < epochs; epoch++ {
			if success >= target {
				break
			}
			var start = state
			var kept, reverted int
			for _, worst := range net.Shuffle(true, rng) {
				if m.Exists(state, worst, success) {
					continue
				}
				m.Insert(state, worst, success)

				undo := trainWorst(worst)
				if undo == nil {
					continue
				}
				thisSuccess, thisState := evaluate()
				if thisSuccess < success {
					undo()
					reverted++
					continue
				}
				kept++
				success, state = thisSuccess, thisState
				if success >= target {
					break
				}
			}
			logger.Info("epoch done",
				zap.Int("epoch", epoch),
				zap.Int("correct", success),
				zap.Int("kept", kept),
				zap.Int("reverted", reverted),
			)
			if state == start {
				logger.Info("network unchanged, stopping", zap.Int("epoch", epoch))
				break
			}
		}
		return success
	}
}
