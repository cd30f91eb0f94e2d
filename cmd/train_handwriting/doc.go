// Command train_handwriting trains a handwritten character classifier on a directory
// with one sub-directory per class, named by the decimal code point of the character.
// It reports the validation accuracy and writes the weights to the model path.
//
//	train_handwriting -config hwr.yaml -data data/train -validation data/test
package main
