package shortener

import (
	"fmt"
	"math"
	"strings"
)

// ToDigits converts id to its digit sequence in the alphabet's radix,
// most significant digit first. Zero yields a single zero digit.
func (a *Alphabet) ToDigits(id int64) ([]int, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: negative identifier %d", ErrInvalidArgument, id)
	}

	radix := int64(len(a.chars))
	var digits []int
	for {
		digits = append(digits, int(id%radix))
		id /= radix
		if id == 0 {
			break
		}
	}

	// Reverse because digits were collected least significant first
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return digits, nil
}

// FromDigits reverses ToDigits by positional notation.
func (a *Alphabet) FromDigits(digits []int) (int64, error) {
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: empty digit sequence", ErrInvalidArgument)
	}

	radix := int64(len(a.chars))
	var id int64
	for i, d := range digits {
		if err := a.checkDigit(d, i); err != nil {
			return 0, err
		}
		if id > (math.MaxInt64-int64(d))/radix {
			return 0, fmt.Errorf("%w: digit sequence of length %d overflows int64", ErrInvalidArgument, len(digits))
		}
		id = id*radix + int64(d)
	}

	return id, nil
}

// EncodeDigits maps each digit value to its alphabet character.
func (a *Alphabet) EncodeDigits(digits []int) (string, error) {
	var sb strings.Builder
	for i, d := range digits {
		if err := a.checkDigit(d, i); err != nil {
			return "", err
		}
		sb.WriteRune(a.chars[d])
	}
	return sb.String(), nil
}

// DecodeCode maps each character of code back to its digit value.
// A character outside the alphabet is an error rather than a -1 digit.
func (a *Alphabet) DecodeCode(code string) ([]int, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty short code", ErrInvalidArgument)
	}

	digits := make([]int, 0, len(code))
	pos := 0
	for _, char := range code {
		d, ok := a.index[char]
		if !ok {
			return nil, fmt.Errorf("%w: invalid character '%c' at position %d in short code", ErrInvalidArgument, char, pos)
		}
		digits = append(digits, d)
		pos++
	}

	return digits, nil
}

// Encode converts id straight to its short code.
func (a *Alphabet) Encode(id int64) (string, error) {
	digits, err := a.ToDigits(id)
	if err != nil {
		return "", err
	}
	return a.EncodeDigits(digits)
}

// Decode converts a short code back to the identifier it encodes.
func (a *Alphabet) Decode(code string) (int64, error) {
	digits, err := a.DecodeCode(code)
	if err != nil {
		return 0, err
	}
	return a.FromDigits(digits)
}

func (a *Alphabet) checkDigit(d, pos int) error {
	if d < 0 || d >= len(a.chars) {
		return fmt.Errorf("%w: digit %d at position %d outside [0, %d)", ErrInvalidArgument, d, pos, len(a.chars))
	}
	return nil
}
