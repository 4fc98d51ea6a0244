package shortener

import (
	"fmt"
	"unicode/utf8"
)

// DefaultAlphabet is the 62 character alphanumeric set, lowercase first.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Alphabet is an ordered set of unique characters. The index of a character
// is its digit value and the length is the radix.
type Alphabet struct {
	chars []rune
	index map[rune]int
}

// NewAlphabet validates chars and builds the reverse lookup table.
func NewAlphabet(chars string) (*Alphabet, error) {
	if !utf8.ValidString(chars) {
		return nil, fmt.Errorf("%w: alphabet is not valid UTF-8", ErrInvalidArgument)
	}

	runes := []rune(chars)
	if len(runes) < 2 {
		return nil, fmt.Errorf("%w: alphabet needs at least 2 characters, got %d", ErrInvalidArgument, len(runes))
	}

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if prev, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: character '%c' repeated at positions %d and %d", ErrInvalidArgument, r, prev, i)
		}
		index[r] = i
	}

	return &Alphabet{chars: runes, index: index}, nil
}

// Radix returns the numeric base, which is the alphabet length.
func (a *Alphabet) Radix() int {
	return len(a.chars)
}

func (a *Alphabet) String() string {
	return string(a.chars)
}
