// Package config defines configuration settings for rgbhex and functions for loading them from a file.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/tajtiattila/basedir"
)

// Values for Config.Swatch.
const (
	SwatchAuto   = "auto"   // Show swatches only when writing to a terminal
	SwatchAlways = "always" // Always show swatches
	SwatchNever  = "never"  // Never show swatches
)

type Config struct {
	Prefix  string // Printed before every hex color code
	Swatch  string
	Palette string // Path of the palette file
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{Prefix: "#", Swatch: SwatchAuto}
}

// Load finds and reads the primary configuration file for the current user.
// It always returns a usable *Config, even if it also returns a non-nil error.
// The file is expected to be at rgbhex/config.toml in the user's configuration directory.
// A missing file is not an error.
func Load() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		c := Default()
		return c, c.fill(errors.Wrap(err, "error loading config file"))
	}
	return LoadFile(filepath.Join(dir, "rgbhex", "config.toml"))
}

// LoadFile reads the configuration file at path.
// Like Load, it always returns a usable *Config.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		c := Default()
		return c, c.fill(nil)
	}
	if err != nil {
		c := Default()
		return c, c.fill(errors.Wrap(err, "error loading config file"))
	}
	defer f.Close()
	c, err := Read(f)
	return c, errors.WithMessage(err, "error loading config file "+path)
}

// Read decodes a configuration from r. It always returns a usable *Config.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	_, err := toml.NewDecoder(r).Decode(c)
	if err == nil {
		err = c.validate()
	}
	if err != nil {
		*c = *Default()
	}
	return c, c.fill(err)
}

func (c *Config) validate() error {
	switch c.Swatch {
	case "":
		c.Swatch = SwatchAuto
	case SwatchAuto, SwatchAlways, SwatchNever:
	default:
		return errors.Errorf("invalid swatch mode %q", c.Swatch)
	}
	return nil
}

// fill sets defaults that need the file system and returns the first error.
func (c *Config) fill(err error) error {
	if c.Palette != "" {
		return err
	}
	dir, dirErr := basedir.Data.EnsureDir("rgbhex", 0700)
	if dirErr != nil {
		if err == nil {
			err = errors.Wrap(dirErr, "error finding data directory")
		}
		return err
	}
	c.Palette = filepath.Join(dir, "palette.toml")
	return err
}
