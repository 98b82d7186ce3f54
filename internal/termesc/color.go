package termesc

import (
	"strconv"

	"github.com/dpinela/rgbhex/color"
)

type GraphicFlag int

// Constants for non-color graphic attributes.
const (
	StyleNone GraphicFlag = 0
	StyleBold GraphicFlag = 1
)

func (c GraphicFlag) forEachSGRCode(f func(int)) { f(int(c)) }

// A TrueColor sets the foreground or background to a 24-bit color.
type TrueColor struct {
	Color      color.RGB
	Background bool
}

// Foreground returns an attribute that sets the text color to c.
func Foreground(c color.RGB) TrueColor { return TrueColor{Color: c} }

// Background returns an attribute that sets the background color to c.
func Background(c color.RGB) TrueColor { return TrueColor{Color: c, Background: true} }

func (c TrueColor) forEachSGRCode(f func(int)) {
	if c.Background {
		f(48)
	} else {
		f(38)
	}
	f(2)
	r, g, b := color.Unpack(c.Color)
	f(int(r))
	f(int(g))
	f(int(b))
}

type GraphicAttribute interface {
	forEachSGRCode(func(int))
}

func SetGraphicAttributes(attrs ...GraphicAttribute) string {
	b := make([]byte, len(csi), 64)
	copy(b, csi)
	for _, attr := range attrs {
		attr.forEachSGRCode(func(x int) {
			if len(b) > len(csi) {
				b = append(b, ';')
			}
			b = strconv.AppendInt(b, int64(x), 10)
		})
	}
	return string(append(b, 'm'))
}
