// Package codec turns arbitrary byte sequences into printable text and back.
//
// The encoding is standard base64 with the alphabet A-Z a-z 0-9 + / and '='
// padding. Input is consumed in 3-byte groups and each group becomes four
// characters, so encoded output length is always a multiple of 4:
//
//	token := codec.Encode(pngBytes)
//	raw, err := codec.Decode(token)
//
// Decode is strict: empty input, input whose length is not a multiple of 4,
// characters outside the alphabet and misplaced padding are all rejected and
// no partial output is returned.
package codec

import "strings"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const padChar = '='

// invalid marks bytes that are not part of the alphabet.
const invalid = 0xFF

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedLen returns the length of the encoding of n source bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// Encode returns the base64 text for data. Empty input yields "".
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(EncodedLen(len(data)))

	i := 0
	for ; i+2 < len(data); i += 3 {
		v := uint32(data[i])<<16 | uint32(data[i+1])<<8 | uint32(data[i+2])
		sb.WriteByte(alphabet[v>>18&0x3F])
		sb.WriteByte(alphabet[v>>12&0x3F])
		sb.WriteByte(alphabet[v>>6&0x3F])
		sb.WriteByte(alphabet[v&0x3F])
	}

	switch len(data) - i {
	case 1:
		v := uint32(data[i]) << 16
		sb.WriteByte(alphabet[v>>18&0x3F])
		sb.WriteByte(alphabet[v>>12&0x3F])
		sb.WriteByte(padChar)
		sb.WriteByte(padChar)
	case 2:
		v := uint32(data[i])<<16 | uint32(data[i+1])<<8
		sb.WriteByte(alphabet[v>>18&0x3F])
		sb.WriteByte(alphabet[v>>12&0x3F])
		sb.WriteByte(alphabet[v>>6&0x3F])
		sb.WriteByte(padChar)
	}

	return sb.String()
}

// Decode reverses Encode. On failure it returns a nil slice and an error
// that matches ErrInvalidLength or ErrInvalidCharacter under errors.Is.
func Decode(text string) ([]byte, error) {
	if len(text) == 0 || len(text)%4 != 0 {
		return nil, &LengthError{Len: len(text)}
	}

	out := make([]byte, 0, len(text)/4*3)

	for i := 0; i < len(text); i += 4 {
		var buf uint32
		pad := 0

		for j := 0; j < 4; j++ {
			c := text[i+j]
			if c == padChar {
				// padding only in the final one or two slots of the last group
				if i+4 != len(text) || j < 2 {
					return nil, &CorruptInputError{Offset: i + j, Char: c}
				}
				buf <<= 6
				pad++
				continue
			}
			if pad > 0 {
				return nil, &CorruptInputError{Offset: i + j, Char: c}
			}
			v := decodeMap[c]
			if v == invalid {
				return nil, &CorruptInputError{Offset: i + j, Char: c}
			}
			buf = buf<<6 | uint32(v)
		}

		out = append(out, byte(buf>>16))
		if pad < 2 {
			out = append(out, byte(buf>>8))
		}
		if pad < 1 {
			out = append(out, byte(buf))
		}
	}

	return out, nil
}

// DecodeString is Decode with surrounding whitespace trimmed, for tokens read
// from files or pipes.
func DecodeString(s string) ([]byte, error) {
	return Decode(strings.TrimSpace(s))
}
