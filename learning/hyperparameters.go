package learning

import (
	"runtime"

	"go.uber.org/zap"
)

// HyperParameters tune the salt search which solves a single hashtron.
type HyperParameters struct {
	Threads int // number of goroutines searching for salts

	Shuffle bool  // shuffle the sets before each solve
	Seed    int64 // seed of the shuffle

	DeadlineMs    int // number of salts tried for one modulo before the modulo is changed
	DeadlineRetry int // retry from scratch after this many failed attempts

	Factor     uint32 // initial modulo is the square of the larger set divided by Factor
	Subtractor uint32 // how fast the modulo shrinks after each solved command

	Logger *zap.Logger
}

func (h *HyperParameters) threads() int {
	if h.Threads <= 0 {
		return runtime.NumCPU()
	}
	return h.Threads
}

func (h *HyperParameters) deadline() int {
	if h.DeadlineMs <= 0 {
		return 1000
	}
	return h.DeadlineMs
}

func (h *HyperParameters) retries() uint32 {
	if h.DeadlineRetry <= 0 {
		return 3
	}
	return uint32(h.DeadlineRetry)
}

func (h *HyperParameters) factor() uint32 {
	if h.Factor == 0 {
		return 1
	}
	return h.Factor
}

func (h *HyperParameters) subtractor() uint32 {
	if h.Subtractor == 0 {
		return 1
	}
	return h.Subtractor
}

func (h *HyperParameters) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
