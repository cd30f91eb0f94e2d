package trainer

import (
	"errors"
	"io/fs"

	"github.com/neurlang/handwriting/net/feedforward"
)

// Resume loads the weights of net from dstmodel if the file exists. It reports
// whether weights were loaded.
func Resume(net *feedforward.FeedforwardNetwork, dstmodel string) (bool, error) {
	if dstmodel == "" {
		return false, nil
	}
	err := net.ReadCompressedWeightsFromFile(dstmodel)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
