package color

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by ParseHex.
var (
	ErrInvalidLength  = stderrors.New("color: invalid hexadecimal color string length")
	ErrInvalidHexChar = stderrors.New("color: invalid hexadecimal character")
)

// A HexCharError reports the first byte of a hex color string that is not a
// hexadecimal digit.
type HexCharError struct {
	Char byte
	Pos  int // 0-based index of Char in the input
}

func (e *HexCharError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrInvalidHexChar, e.Char, e.Pos)
}

func (e *HexCharError) Is(target error) bool { return target == ErrInvalidHexChar }

const hexDigits = "0123456789ABCDEF"

// ParseHex returns the color described by the 6-digit hex string in b.
// Digits may be in either case.
//
// The length is checked before any digit; if several bytes are invalid, only the
// leftmost one is reported, as a *HexCharError.
func ParseHex(b []byte) (RGB, error) {
	if len(b) != HexLen {
		return 0, ErrInvalidLength
	}
	var c RGB
	for i, ch := range b {
		n, ok := nibble(ch)
		if !ok {
			return 0, &HexCharError{Char: ch, Pos: i}
		}
		c = c<<4 | RGB(n)
	}
	return c, nil
}

func nibble(ch byte) (byte, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// FormatHex returns c as 6 uppercase, zero-padded hex digits.
// Bits above the 24th are ignored.
func FormatHex(c RGB) string {
	var buf [HexLen]byte
	appendHex(buf[:0], c)
	return string(buf[:])
}

func appendHex(b []byte, c RGB) []byte {
	for shift := uint(20); ; shift -= 4 {
		b = append(b, hexDigits[(c>>shift)&0xF])
		if shift == 0 {
			return b
		}
	}
}

// String returns the CSS hex code for c (#RRGGBB).
func (c RGB) String() string { return "#" + FormatHex(c) }

// Parse returns the color described by s, which may be a CSS-style hex code
// (#ABCDEF) or the same six digits without the '#'.
func Parse(s string) (RGB, error) {
	c, err := ParseHex([]byte(strings.TrimPrefix(s, "#")))
	if err != nil {
		return 0, errors.WithMessage(err, fmt.Sprintf("color: parse %q", s))
	}
	return c, nil
}

func (c RGB) MarshalText() ([]byte, error) {
	return appendHex([]byte{'#'}, c), nil
}

func (c *RGB) UnmarshalText(b []byte) (err error) {
	in, err := Parse(string(b))
	if err == nil {
		*c = in
	}
	return
}
