// Package palette stores named colors in a TOML file.
//
// A palette file looks like this:
//
//	[colors]
//	sky = "#87CEEB"
//	rust = "#B7410E"
package palette

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/dpinela/rgbhex/color"
	"github.com/dpinela/rgbhex/internal/atomicwrite"
	"github.com/pkg/errors"
)

// Errors returned by Set.
var (
	ErrEmptyName     = errors.New("palette: empty color name")
	ErrColorOverflow = errors.New("palette: color doesn't fit in 24 bits")
)

// A Palette is a set of named colors. It is safe for concurrent use.
type Palette struct {
	mu     sync.RWMutex
	colors map[string]color.RGB
}

type file struct {
	Colors map[string]color.RGB `toml:"colors"`
}

// New returns an empty palette.
func New() *Palette { return &Palette{colors: make(map[string]color.RGB)} }

// Read decodes a palette from r.
func Read(r io.Reader) (*Palette, error) {
	var f file
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "palette: decode")
	}
	p := New()
	for name, c := range f.Colors {
		if name == "" {
			return nil, ErrEmptyName
		}
		p.colors[name] = c
	}
	return p, nil
}

// Load reads the palette file at path. A missing file yields an empty palette.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "palette: load")
	}
	defer f.Close()
	p, err := Read(f)
	return p, errors.WithMessage(err, path)
}

// Save atomically writes the palette to path.
func (p *Palette) Save(path string) error {
	return atomicwrite.Write(path, p.Encode)
}

// Encode writes the palette as TOML into w.
func (p *Palette) Encode(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return toml.NewEncoder(w).Encode(file{Colors: p.colors})
}

// Set adds or replaces the color called name.
func (p *Palette) Set(name string, c color.RGB) error {
	if name == "" {
		return ErrEmptyName
	}
	if !c.Valid() {
		return ErrColorOverflow
	}
	p.mu.Lock()
	p.colors[name] = c
	p.mu.Unlock()
	return nil
}

// Delete removes the color called name and reports whether it was present.
func (p *Palette) Delete(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.colors[name]
	delete(p.colors, name)
	return ok
}

// Lookup returns the color called name, if any.
func (p *Palette) Lookup(name string) (color.RGB, bool) {
	p.mu.RLock()
	c, ok := p.colors[name]
	p.mu.RUnlock()
	return c, ok
}

// Names returns the names of all colors in the palette, sorted.
func (p *Palette) Names() []string {
	p.mu.RLock()
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	p.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.colors)
}

// Resolve returns the color called s if the palette has one; otherwise
// it parses s as a hex color code.
func (p *Palette) Resolve(s string) (color.RGB, error) {
	if c, ok := p.Lookup(s); ok {
		return c, nil
	}
	return color.Parse(s)
}
