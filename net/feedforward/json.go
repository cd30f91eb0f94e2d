package feedforward

import (
	"compress/lzw"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/neurlang/handwriting/hashtron"
)

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes model weights to a writer as a lzw compressed json array
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	weights := make([]*hashtron.Hashtron, f.Len())
	for i := range weights {
		weights[i] = f.GetHashtron(i)
	}
	if err := json.NewEncoder(lw).Encode(weights); err != nil {
		lw.Close()
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f *FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return f.ReadCompressedWeights(file)
}

// ReadCompressedWeights reads model weights from a reader. The weights must have
// been written by a network of the same shape and readout width. On error the
// network is left unchanged.
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	var weights []json.RawMessage
	if err := json.NewDecoder(lr).Decode(&weights); err != nil {
		return err
	}
	if len(weights) != f.Len() {
		return fmt.Errorf("weights hold %d hashtrons, network has %d", len(weights), f.Len())
	}
	decoded := make([]hashtron.Hashtron, len(weights))
	for i, raw := range weights {
		if err := json.Unmarshal(raw, &decoded[i]); err != nil {
			return fmt.Errorf("hashtron %d: %w", i, err)
		}
	}
	if n := len(decoded); n > 0 && decoded[n-1].Bits() != f.GetBits() {
		return fmt.Errorf("weights have %d readout bits, network has %d", decoded[n-1].Bits(), f.GetBits())
	}
	for i := range decoded {
		*f.GetHashtron(i) = decoded[i]
	}
	return nil
}
