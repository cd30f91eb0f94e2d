package trainer

import (
	"go.uber.org/zap"

	"github.com/neurlang/handwriting/datasets"
	"github.com/neurlang/handwriting/learning"
	"github.com/neurlang/handwriting/net/feedforward"
)

// NewTrainWorstFunc returns a function which retrains hashtron number worst of net.
// The tallyFunc fills the tally with votes, typically by calling net.Tally on each
// sample. The returned undo restores the previous hashtron, it is nil when the
// hashtron was left as it was.
func NewTrainWorstFunc(net feedforward.FeedforwardNetwork, h *learning.HyperParameters, logger *zap.Logger,
	tallyFunc func(worst int, tally *datasets.Tally)) func(worst int) (undo func()) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(worst int) (undo func()) {
		ptr := net.GetHashtron(worst)
		if ptr == nil {
			return nil
		}

		var tally datasets.Tally
		tally.Init()
		defer tally.Free()

		tallyFunc(worst, &tally)

		if !tally.GetImprovementPossible() {
			return nil
		}

		logger.Debug("training hashtron",
			zap.Int("position", worst),
			zap.Int("layer", net.GetLayer(worst)),
			zap.Int("job_size", tally.Len()),
		)

		htron, err := h.Training(tally.Dataset(ptr.Bits()), ptr.Bits())
		if err != nil {
			logger.Warn("hashtron not trained", zap.Int("position", worst), zap.Error(err))
			return nil
		}

		backup := *ptr
		*ptr = *htron
		return func() {
			*ptr = backup
		}
	}
}
