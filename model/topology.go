package model

import (
	"fmt"
	"strings"

	"github.com/neurlang/handwriting/glyph"
	"github.com/neurlang/handwriting/layer/conv2d"
	"github.com/neurlang/handwriting/layer/full"
	"github.com/neurlang/handwriting/layer/majpool2d"
	"github.com/neurlang/handwriting/net/feedforward"
)

// Topology selects the network architecture
type Topology int

const (
	// Deep stacks two convolution stages before the readout
	Deep Topology = iota

	// Shallow pools the first layer once before the readout
	Shallow
)

func (t Topology) String() string {
	switch t {
	case Deep:
		return "deep"
	case Shallow:
		return "shallow"
	}
	return fmt.Sprintf("Topology(%d)", int(t))
}

// ParseTopology parses the name of a topology
func ParseTopology(name string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "deep":
		return Deep, nil
	case "shallow", "simple":
		return Shallow, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownTopology)
}

const side = glyph.Size - 1

// network lays out the hashtron layers. Every first layer hashtron reads one 2x2 window
// of the glyph, the readout hashtron maps the last feature to bits class bits.
func (t Topology) network(bits byte) (net feedforward.FeedforwardNetwork, err error) {
	switch t {
	case Deep:
		net.NewLayer(side*side, 0)
		net.NewCombiner(conv2d.MustNew(side, side, 3, 3, 3))
		net.NewLayer((side/3)*(side/3), 0)
		net.NewCombiner(conv2d.MustNew(side/3, side/3, 3, 3, 3))
		net.NewLayer((side/9)*(side/9), 0)
		net.NewCombiner(full.MustNew((side / 9) * (side / 9)))
		net.NewLayer(1, bits)
	case Shallow:
		net.NewLayer(side*side, 0)
		net.NewCombiner(majpool2d.MustNew(side, side, side/3, side/3))
		net.NewLayer(1, bits)
	default:
		return net, fmt.Errorf("%v: %w", t, ErrUnknownTopology)
	}
	return net, nil
}
