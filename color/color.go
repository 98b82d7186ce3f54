// Package color converts 24-bit RGB colors between their packed integer form,
// individual 8-bit channels and 6-digit hexadecimal strings.
//
// All functions are pure and may be called concurrently.
package color

const (
	MaxRGB = 0xFFFFFF // Largest valid packed color
	HexLen = 6        // Length of a hex color string, without any '#' prefix
)

// An RGB is a packed 24-bit color: red in bits 16-23, green in bits 8-15
// and blue in bits 0-7.
type RGB uint32

// Pack combines three channels into a packed color.
func Pack(r, g, b uint8) RGB { return RGB(r)<<16 | RGB(g)<<8 | RGB(b) }

// Red returns the red channel of c.
func Red(c RGB) uint8 { return uint8((c >> 16) & 0xFF) }

// Green returns the green channel of c.
func Green(c RGB) uint8 { return uint8((c >> 8) & 0xFF) }

// Blue returns the blue channel of c.
func Blue(c RGB) uint8 { return uint8(c & 0xFF) }

// Unpack splits c into its red, green and blue channels.
func Unpack(c RGB) (r, g, b uint8) { return Red(c), Green(c), Blue(c) }

// Red, Green and Blue are method forms of the functions of the same name.
func (c RGB) Red() uint8   { return Red(c) }
func (c RGB) Green() uint8 { return Green(c) }
func (c RGB) Blue() uint8  { return Blue(c) }

// Valid reports whether c fits in 24 bits.
func (c RGB) Valid() bool { return c <= MaxRGB }
