// Command infer_handwriting locates the characters of an image and classifies each one
// with a model trained by train_handwriting. Every character is printed on its own line
// as x, y, width, height and the character.
package main
