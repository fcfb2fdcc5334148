package classfile

import (
	"strings"
	"unicode/utf8"
)

// DecodeModifiedUTF8 decodes the modified UTF-8 used by CONSTANT_Utf8
// entries. NUL is only accepted in its two-byte form (0xC0 0x80) and
// supplementary characters only as a six-byte surrogate pair led by 0xED.
// Any malformed sequence fails the whole string.
func DecodeModifiedUTF8(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))

	i := 0
	for i < len(b) {
		r, n, err := decodeModifiedRune(b[i:])
		if err != nil {
			err.Offset = i
			return "", err
		}
		sb.WriteRune(r)
		i += n
	}
	return sb.String(), nil
}

func decodeModifiedRune(b []byte) (rune, int, *Error) {
	b0 := b[0]
	switch {
	case b0 == 0xED:
		if len(b) < 6 {
			return 0, 0, malformed("surrogate pair needs 6 bytes, %d remain", len(b))
		}
		if b[1]&0xA0 != 0xA0 || !isContinuation(b[2]) || b[3] != 0xED || b[4]&0xB0 != 0xB0 || !isContinuation(b[5]) {
			return 0, 0, malformed("invalid surrogate pair % X", b[:6])
		}
		r := 0x10000 + rune(b[1]&0x0F)<<16 + rune(b[2]&0x3F)<<10 + rune(b[4]&0x0F)<<6 + rune(b[5]&0x3F)
		if !utf8.ValidRune(r) {
			return 0, 0, malformed("surrogate pair decodes to U+%X", r)
		}
		return r, 6, nil

	case b0&0xE0 == 0xE0:
		if len(b) < 3 {
			return 0, 0, malformed("three-byte sequence needs 3 bytes, %d remain", len(b))
		}
		if !isContinuation(b[1]) || !isContinuation(b[2]) {
			return 0, 0, malformed("invalid continuation in % X", b[:3])
		}
		r := rune(b0&0x0F)<<12 + rune(b[1]&0x3F)<<6 + rune(b[2]&0x3F)
		if !utf8.ValidRune(r) {
			return 0, 0, malformed("three-byte sequence decodes to U+%X", r)
		}
		return r, 3, nil

	case b0&0xC0 == 0xC0:
		if len(b) < 2 {
			return 0, 0, malformed("two-byte sequence truncated")
		}
		if !isContinuation(b[1]) {
			return 0, 0, malformed("invalid continuation in % X", b[:2])
		}
		return rune(b0&0x1F)<<6 + rune(b[1]&0x3F), 2, nil

	default:
		// Raw NUL and stray continuation bytes never start a character.
		if b0 == 0 || b0&0x80 != 0 {
			return 0, 0, malformed("invalid lead byte 0x%02X", b0)
		}
		return rune(b0), 1, nil
	}
}

func isContinuation(b byte) bool {
	return b&0x80 == 0x80
}

func malformed(format string, args ...any) *Error {
	return newError(MalformedEncoding, 0, format, args...)
}
