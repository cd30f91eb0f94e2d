// Package trainer orchestrates training of a feedforward hashtron network. Hashtrons are
// retrained one at a time on votes tallied over the samples, and a change is kept only
// when it does not lower the number of correctly classified samples.
package trainer
