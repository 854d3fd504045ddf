package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength indicates empty input or a length that is not a multiple of 4.
	ErrInvalidLength = errors.New("codec: invalid base64 length")

	// ErrInvalidCharacter indicates a character outside the alphabet or misplaced padding.
	ErrInvalidCharacter = errors.New("codec: invalid base64 character")
)

// LengthError reports the rejected input length.
type LengthError struct {
	Len int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%v: %d", ErrInvalidLength, e.Len)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }

// CorruptInputError reports the offset and value of the offending character.
type CorruptInputError struct {
	Offset int
	Char   byte
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", ErrInvalidCharacter, e.Char, e.Offset)
}

func (e *CorruptInputError) Unwrap() error { return ErrInvalidCharacter }
