// Package charcode maps class directory names and classifier outputs to characters.
package charcode

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/neurlang/handwriting/datasets/nested"
	"github.com/neurlang/handwriting/glyph"
)

var (
	// ErrNonNumericClassName is returned for a class directory whose name is not a decimal code point
	ErrNonNumericClassName = errors.New("class directory name is not numeric")

	// ErrInvalidCodePoint is returned for a code point which is not a character
	ErrInvalidCodePoint = errors.New("invalid code point")
)

// Character returns the character with the given code point
func Character(code int) (string, error) {
	if code < 0 || code > utf8.MaxRune || !utf8.ValidRune(rune(code)) {
		return "", fmt.Errorf("%d: %w", code, ErrInvalidCodePoint)
	}
	return string(rune(code)), nil
}

// CodePoint returns the code point of a single character
func CodePoint(character string) (int, error) {
	r, size := utf8.DecodeRuneInString(character)
	if size == 0 || size != len(character) || r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("%q: %w", character, ErrInvalidCodePoint)
	}
	return int(r), nil
}

// DirectoryNamesToCharacters reads the class directories of root, in the order the
// dataset loader ranks them, and returns the character each name encodes.
func DirectoryNamesToCharacters(root string) ([]string, error) {
	classes, err := nested.Classes(root)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		code, err := c.CodePoint()
		if err != nil {
			return nil, fmt.Errorf("directory %q: %w", c.Name, ErrNonNumericClassName)
		}
		ch, err := Character(code)
		if err != nil {
			return nil, fmt.Errorf("directory %q: %w", c.Name, err)
		}
		out = append(out, ch)
	}
	return out, nil
}

// DecodeOneHot returns the character at code point argmax(vector) + offset.
// The first maximum wins on ties.
func DecodeOneHot(vector []float32, offset int) (string, error) {
	i := glyph.ArgMax(vector)
	if i < 0 {
		return "", fmt.Errorf("empty vector: %w", ErrInvalidCodePoint)
	}
	return Character(i + offset)
}
