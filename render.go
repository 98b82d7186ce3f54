package main

import (
	"io"
	"strconv"

	"github.com/dpinela/rgbhex/color"
	"github.com/dpinela/rgbhex/internal/palette"
	"github.com/dpinela/rgbhex/internal/termesc"

	"github.com/mattn/go-runewidth"
)

const swatchWidth = 4

// Pre-computed SGR escape sequences for swatch mode.
var (
	styleBold  = termesc.SetGraphicAttributes(termesc.StyleBold)
	styleReset = termesc.SetGraphicAttributes(termesc.StyleNone)
)

// colorFormatter renders colors the way the user configured.
type colorFormatter struct {
	prefix   string
	swatches bool
}

// appendColor appends the hex code for c and, if enabled, a swatch.
func (f colorFormatter) appendColor(buf []byte, c color.RGB) []byte {
	if !f.swatches {
		buf = append(buf, f.prefix...)
		return append(buf, color.FormatHex(c)...)
	}
	buf = append(buf, termesc.SetGraphicAttributes(termesc.Foreground(c))...)
	buf = append(buf, f.prefix...)
	buf = append(buf, color.FormatHex(c)...)
	buf = append(buf, styleReset...)
	buf = append(buf, ' ')
	buf = append(buf, termesc.SetGraphicAttributes(termesc.Background(c))...)
	for i := 0; i < swatchWidth; i++ {
		buf = append(buf, ' ')
	}
	return append(buf, styleReset...)
}

// appendColorLine appends the hex code and channels of c and a newline.
func (f colorFormatter) appendColorLine(buf []byte, c color.RGB) []byte {
	buf = f.appendColor(buf, c)
	buf = append(buf, "  "...)
	buf = appendChannels(buf, c)
	return append(buf, '\n')
}

func (f colorFormatter) writeColor(w io.Writer, c color.RGB) error {
	_, err := w.Write(append(f.appendColor(nil, c), '\n'))
	return err
}

func appendChannels(buf []byte, c color.RGB) []byte {
	r, g, b := color.Unpack(c)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	return buf
}

// writePalette lists every color in p, one per line, with names aligned
// by their display width.
func (f colorFormatter) writePalette(w io.Writer, p *palette.Palette) error {
	names := p.Names()
	nameWidth := 0
	for _, name := range names {
		if n := runewidth.StringWidth(name); n > nameWidth {
			nameWidth = n
		}
	}
	var buf []byte
	for _, name := range names {
		c, ok := p.Lookup(name)
		if !ok {
			// Removed by a concurrent reload.
			continue
		}
		if f.swatches {
			buf = append(buf, styleBold...)
			buf = append(buf, name...)
			buf = append(buf, styleReset...)
		} else {
			buf = append(buf, name...)
		}
		for n := runewidth.StringWidth(name); n < nameWidth+2; n++ {
			buf = append(buf, ' ')
		}
		buf = f.appendColorLine(buf, c)
	}
	_, err := w.Write(buf)
	return err
}
