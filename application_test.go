package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dpinela/rgbhex/color"
	"github.com/dpinela/rgbhex/internal/atomicwrite"
	"github.com/dpinela/rgbhex/internal/config"
	"github.com/dpinela/rgbhex/internal/palette"
)

func newTestApp(t *testing.T, swatch string) (*application, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{Prefix: "#", Swatch: swatch, Palette: filepath.Join(t.TempDir(), "palette.toml")}
	p := palette.New()
	p.Set("sky", 0x87CEEB)
	p.Set("rust", 0xB7410E)
	var out bytes.Buffer
	return newApplication(cfg, p, &out, false), &out
}

func TestCommands(t *testing.T) {
	for _, tt := range []struct {
		args []string
		want string
	}{
		{[]string{"pack", "255", "255", "0"}, "#FFFF00\n"},
		{[]string{"pack", "0x0a", "0", "15"}, "#0A000F\n"},
		{[]string{"unpack", "ffff00"}, "255 255 0\n"},
		{[]string{"unpack", "#FFFF00"}, "255 255 0\n"},
		{[]string{"unpack", "sky"}, "135 206 235\n"},
		{[]string{"channel", "red", "ffff00"}, "255\n"},
		{[]string{"channel", "green", "ffff00"}, "255\n"},
		{[]string{"channel", "blue", "ffffff"}, "255\n"},
		{[]string{"channel", "b", "rust"}, "14\n"},
		{[]string{"format", "15"}, "#00000F\n"},
		{[]string{"format", "0xffff00"}, "#FFFF00\n"},
		{[]string{"parse", "ffffff", "FFFF00", "sky"}, "16777215\n16776960\n8900331\n"},
		{[]string{"palette"}, "rust  #B7410E  183 65 14\nsky   #87CEEB  135 206 235\n"},
		{[]string{"palette", "list"}, "rust  #B7410E  183 65 14\nsky   #87CEEB  135 206 235\n"},
	} {
		app, out := newTestApp(t, config.SwatchNever)
		if err := app.run(context.Background(), tt.args); err != nil {
			t.Errorf("%q: unexpected error: %v", tt.args, err)
			continue
		}
		if got := out.String(); got != tt.want {
			t.Errorf("%q: got output %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"blend", "ffffff", "000000"},
		{"pack", "255", "255"},
		{"pack", "256", "0", "0"},
		{"pack", "-1", "0", "0"},
		{"channel", "alpha", "ffffff"},
		{"format", "0x1000000"},
		{"format", "yellow"},
		{"palette", "set", "sky"},
		{"watch", "now"},
	} {
		app, _ := newTestApp(t, config.SwatchNever)
		err := app.run(context.Background(), args)
		var usageErr usageError
		if !errors.As(err, &usageErr) {
			t.Errorf("%q: got error %v, want usage error", args, err)
		}
		if code := exitCode(err); code != 2 {
			t.Errorf("%q: exit code %d, want 2", args, code)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		args []string
		want error
	}{
		{[]string{"parse", "fffff"}, color.ErrInvalidLength},
		{[]string{"parse", "fffffff"}, color.ErrInvalidLength},
		{[]string{"parse", "fffffg"}, color.ErrInvalidHexChar},
		{[]string{"unpack", "ocean"}, color.ErrInvalidLength},
		{[]string{"palette", "set", "sea", "#00FFGG"}, color.ErrInvalidHexChar},
	} {
		app, out := newTestApp(t, config.SwatchNever)
		err := app.run(context.Background(), tt.args)
		if !errors.Is(err, tt.want) {
			t.Errorf("%q: got error %v, want %v", tt.args, err, tt.want)
		}
		if code := exitCode(err); code != 1 {
			t.Errorf("%q: exit code %d, want 1", tt.args, code)
		}
		if out.Len() != 0 {
			t.Errorf("%q: wrote %q despite failing", tt.args, out.String())
		}
	}
}

func TestSwatches(t *testing.T) {
	app, out := newTestApp(t, config.SwatchAlways)
	if err := app.run(context.Background(), []string{"pack", "255", "255", "0"}); err != nil {
		t.Fatal(err)
	}
	if want := "\x1B[38;2;255;255;0m#FFFF00\x1B[0m \x1B[48;2;255;255;0m    \x1B[0m\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
	cfg := &config.Config{Prefix: "", Swatch: config.SwatchAuto}
	if app := newApplication(cfg, palette.New(), io.Discard, false); app.format.swatches {
		t.Error("auto swatches enabled when not writing to a terminal")
	}
	if app := newApplication(cfg, palette.New(), io.Discard, true); !app.format.swatches {
		t.Error("auto swatches disabled when writing to a terminal")
	}
}

func TestPaletteSwatches(t *testing.T) {
	app, out := newTestApp(t, config.SwatchAlways)
	app.palette.Delete("rust")
	if err := app.run(context.Background(), []string{"palette"}); err != nil {
		t.Fatal(err)
	}
	want := "\x1B[1msky\x1B[0m  \x1B[38;2;135;206;235m#87CEEB\x1B[0m \x1B[48;2;135;206;235m    \x1B[0m  135 206 235\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestPaletteAlignment(t *testing.T) {
	app, out := newTestApp(t, config.SwatchNever)
	app.palette.Set("青", 0x0000FF)
	if err := app.run(context.Background(), []string{"palette"}); err != nil {
		t.Fatal(err)
	}
	want := "rust  #B7410E  183 65 14\nsky   #87CEEB  135 206 235\n青    #0000FF  0 0 255\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestPaletteEdit(t *testing.T) {
	app, _ := newTestApp(t, config.SwatchNever)
	run := func(args ...string) {
		t.Helper()
		if err := app.run(context.Background(), args); err != nil {
			t.Fatalf("%q: %v", args, err)
		}
	}
	run("palette", "set", "lemon", "fff700")
	run("palette", "rm", "rust")
	p, err := palette.Load(app.config.Palette)
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := p.Lookup("lemon"); !ok || c != 0xFFF700 {
		t.Errorf("saved palette has lemon = %v, %v; want #FFF700", c, ok)
	}
	if _, ok := p.Lookup("rust"); ok {
		t.Error("saved palette still has rust")
	}
	if err := app.run(context.Background(), []string{"palette", "rm", "rust"}); err == nil {
		t.Error("removing a missing color succeeded")
	}
}

func TestCopy(t *testing.T) {
	app, _ := newTestApp(t, config.SwatchAlways)
	var copied string
	app.copy = func(s string) error { copied = s; return nil }
	if err := app.run(context.Background(), []string{"copy", "rust"}); err != nil {
		t.Fatal(err)
	}
	if copied != "#B7410E" {
		t.Errorf("copied %q, want \"#B7410E\"", copied)
	}
}

func TestPaste(t *testing.T) {
	for _, tt := range []struct {
		clipboard, want string
	}{
		{"#FFFF00\n", "#FFFF00  255 255 0\n"},
		{"  rust ", "#B7410E  183 65 14\n"},
	} {
		app, out := newTestApp(t, config.SwatchNever)
		app.paste = func() (string, error) { return tt.clipboard, nil }
		if err := app.run(context.Background(), []string{"paste"}); err != nil {
			t.Errorf("paste of %q: %v", tt.clipboard, err)
			continue
		}
		if out.String() != tt.want {
			t.Errorf("paste of %q: got %q, want %q", tt.clipboard, out.String(), tt.want)
		}
	}
	app, out := newTestApp(t, config.SwatchNever)
	app.paste = func() (string, error) { return "fffffg", nil }
	if err := app.run(context.Background(), []string{"paste"}); !errors.Is(err, color.ErrInvalidHexChar) {
		t.Errorf("paste of invalid color returned %v, want ErrInvalidHexChar", err)
	}
	if out.Len() != 0 {
		t.Errorf("paste of invalid color wrote %q", out.String())
	}
}

// A chanWriter sends everything written to it on a channel.
type chanWriter struct {
	writes chan string
}

func (b chanWriter) Write(p []byte) (int, error) {
	b.writes <- string(p)
	return len(p), nil
}

func TestWatch(t *testing.T) {
	app, _ := newTestApp(t, config.SwatchNever)
	out := chanWriter{writes: make(chan string, 100)}
	app.out = out
	if err := app.palette.Save(app.config.Palette); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- app.run(ctx, []string{"watch"}) }()
	expectListing(t, out.writes, "sky")
	err := atomicwrite.Write(app.config.Palette, func(w io.Writer) error {
		_, err := io.WriteString(w, "[colors]\nocean = \"#006994\"\n")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	expectListing(t, out.writes, "ocean")
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Error(err)
		}
	case <-time.After(time.Second):
		t.Error("watch didn't stop after cancellation")
	}
	os.Remove(app.config.Palette)
}

func expectListing(t *testing.T, writes <-chan string, name string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-writes:
			if strings.Contains(s, name) {
				return
			}
		case <-timeout:
			t.Fatalf("no palette listing containing %q", name)
		}
	}
}
