package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dpinela/rgbhex/color"
	"github.com/dpinela/rgbhex/internal/clipboard"
	"github.com/dpinela/rgbhex/internal/config"
	"github.com/dpinela/rgbhex/internal/palette"
	"github.com/dpinela/rgbhex/internal/pathwatch"
	"github.com/dpinela/rgbhex/internal/termesc"

	"github.com/pkg/errors"
)

type application struct {
	config      *config.Config
	palette     *palette.Palette
	out         io.Writer
	format      colorFormatter
	interactive bool // Whether out is a terminal

	copy  func(string) error // Where the copy command sends its output
	paste func() (string, error)
}

func newApplication(cfg *config.Config, p *palette.Palette, out io.Writer, interactive bool) *application {
	swatches := cfg.Swatch == config.SwatchAlways || cfg.Swatch == config.SwatchAuto && interactive
	return &application{
		config:      cfg,
		palette:     p,
		out:         out,
		format:      colorFormatter{prefix: cfg.Prefix, swatches: swatches},
		interactive: interactive,
		copy:        clipboard.Copy,
		paste:       clipboard.Paste,
	}
}

// A usageError is returned for command lines that don't make sense.
type usageError string

func (e usageError) Error() string { return string(e) }

func usagef(format string, args ...interface{}) error {
	return usageError(fmt.Sprintf(format, args...))
}

type command struct {
	args    string
	minArgs int
	maxArgs int // -1 for no limit
	run     func(app *application, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"pack":    {"R G B", 3, 3, (*application).pack},
		"unpack":  {"COLOR", 1, 1, (*application).unpack},
		"channel": {"red|green|blue COLOR", 2, 2, (*application).channel},
		"format":  {"N", 1, 1, (*application).formatNumber},
		"parse":   {"COLOR...", 1, -1, (*application).parse},
		"palette": {"[list | set NAME COLOR | rm NAME]", 0, 3, (*application).paletteCommand},
		"copy":    {"COLOR", 1, 1, (*application).copyColor},
		"paste":   {"", 0, 0, (*application).pasteColor},
		"watch":   {"", 0, 0, (*application).watch},
	}
}

// run executes the command line in args, not including the program name.
func (app *application) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("no command given")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return usagef("unknown command %q", args[0])
	}
	rest := args[1:]
	if len(rest) < cmd.minArgs || cmd.maxArgs >= 0 && len(rest) > cmd.maxArgs {
		return usagef("usage: %s %s", args[0], cmd.args)
	}
	return cmd.run(app, ctx, rest)
}

func parseChannel(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, usagef("invalid channel value %q: must be an integer from 0 to 255", s)
	}
	return uint8(n), nil
}

func (app *application) pack(_ context.Context, args []string) error {
	var ch [3]uint8
	for i, s := range args {
		n, err := parseChannel(s)
		if err != nil {
			return err
		}
		ch[i] = n
	}
	return app.format.writeColor(app.out, color.Pack(ch[0], ch[1], ch[2]))
}

func (app *application) unpack(_ context.Context, args []string) error {
	c, err := app.palette.Resolve(args[0])
	if err != nil {
		return err
	}
	_, err = app.out.Write(append(appendChannels(nil, c), '\n'))
	return err
}

func (app *application) channel(_ context.Context, args []string) error {
	var extract func(color.RGB) uint8
	switch args[0] {
	case "red", "r":
		extract = color.Red
	case "green", "g":
		extract = color.Green
	case "blue", "b":
		extract = color.Blue
	default:
		return usagef("unknown channel %q", args[0])
	}
	c, err := app.palette.Resolve(args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.out, extract(c))
	return err
}

func (app *application) formatNumber(_ context.Context, args []string) error {
	n, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil || n > color.MaxRGB {
		return usagef("invalid color value %q: must be an integer from 0 to %#x", args[0], color.MaxRGB)
	}
	return app.format.writeColor(app.out, color.RGB(n))
}

func (app *application) parse(_ context.Context, args []string) error {
	var buf []byte
	for _, s := range args {
		c, err := app.palette.Resolve(s)
		if err != nil {
			return err
		}
		buf = strconv.AppendUint(buf, uint64(c), 10)
		buf = append(buf, '\n')
	}
	_, err := app.out.Write(buf)
	return err
}

func (app *application) paletteCommand(_ context.Context, args []string) error {
	if len(args) == 0 {
		return app.format.writePalette(app.out, app.palette)
	}
	switch {
	case args[0] == "list" && len(args) == 1:
		return app.format.writePalette(app.out, app.palette)
	case args[0] == "set" && len(args) == 3:
		c, err := color.Parse(args[2])
		if err != nil {
			return err
		}
		if err := app.palette.Set(args[1], c); err != nil {
			return err
		}
	case args[0] == "rm" && len(args) == 2:
		if !app.palette.Delete(args[1]) {
			return errors.Errorf("no color named %q", args[1])
		}
	default:
		return usagef("usage: palette %s", commands["palette"].args)
	}
	return app.palette.Save(app.config.Palette)
}

func (app *application) copyColor(_ context.Context, args []string) error {
	c, err := app.palette.Resolve(args[0])
	if err != nil {
		return err
	}
	return app.copy(app.config.Prefix + color.FormatHex(c))
}

// pasteColor prints the color on the clipboard, which may be a palette name or a hex code.
func (app *application) pasteColor(_ context.Context, _ []string) error {
	text, err := app.paste()
	if err != nil {
		return err
	}
	c, err := app.palette.Resolve(strings.TrimSpace(text))
	if err != nil {
		return err
	}
	_, err = app.out.Write(app.format.appendColorLine(nil, c))
	return err
}

// watch lists the palette, then lists it again every time the palette file
// changes, until ctx is done.
func (app *application) watch(ctx context.Context, _ []string) error {
	w, err := pathwatch.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	changes := make(chan struct{}, 1)
	w.Add(app.config.Palette, changes)
	for {
		if app.interactive {
			if _, err := io.WriteString(app.out, termesc.CursorHome+termesc.ClearScreen); err != nil {
				return err
			}
		}
		if err := app.format.writePalette(app.out, app.palette); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			return err
		case <-changes:
			p, err := palette.Load(app.config.Palette)
			if err != nil {
				// Probably caught in the middle of a non-atomic write; the next change will fix it.
				fmt.Fprintln(app.out, err)
				continue
			}
			app.palette = p
		}
	}
}
