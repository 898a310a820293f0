// Package unicodetext decodes UTF-16 text marked with a byte order mark.
package unicodetext

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrMissingByteOrderMark indicates input that does not begin with a
	// UTF-16 byte order mark.
	ErrMissingByteOrderMark = errors.New("no UTF-16 byte order mark")

	// ErrOddByteCount indicates input whose length is not a whole number
	// of 16-bit code units.
	ErrOddByteCount = errors.New("byte count is not a multiple of two")
)

// IsUnicode reports whether data begins with a UTF-16 byte order mark of
// either endianness.
func IsUnicode(data []byte) bool {
	return IsLittleEndian(data) || IsBigEndian(data)
}

// IsLittleEndian reports whether data begins with the little-endian byte
// order mark FF FE.
func IsLittleEndian(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE
}

// IsBigEndian reports whether data begins with the big-endian byte order
// mark FE FF.
func IsBigEndian(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF
}

// Decode converts a BOM-marked UTF-16 byte stream to a string. The byte
// order mark fixes the code unit order; bytes are swapped as needed
// regardless of host endianness. Text ends at the first NUL code unit
// even when more bytes follow. Empty input decodes to an empty string.
// Input with an odd byte count or without a recognized byte order mark
// does not decode: ErrOddByteCount or ErrMissingByteOrderMark is
// returned.
func Decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if len(data)%2 != 0 {
		return "", ErrOddByteCount
	}

	var endianness unicode.Endianness
	switch {
	case IsLittleEndian(data):
		endianness = unicode.LittleEndian
	case IsBigEndian(data):
		endianness = unicode.BigEndian
	default:
		return "", ErrMissingByteOrderMark
	}

	decoder := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder()
	decoded, _, err := transform.String(decoder, string(data[2:]))
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 payload: %w", err)
	}

	// A NUL acts as a terminator. U+0000 survives UTF-16 decoding as a
	// single zero byte, so a byte scan finds it exactly.
	if i := strings.IndexByte(decoded, 0); i >= 0 {
		decoded = decoded[:i]
	}
	return decoded, nil
}
