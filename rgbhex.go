package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/dpinela/rgbhex/color"
	"github.com/dpinela/rgbhex/internal/config"
	"github.com/dpinela/rgbhex/internal/palette"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:", os.Args[0], "<command> [arguments]")
	fmt.Fprintln(os.Stderr, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(os.Stderr, "  ", name, commands[name].args)
	}
	fmt.Fprintln(os.Stderr, "COLOR is a palette name, #RRGGBB or RRGGBB.")
}

// exitCode returns the status rgbhex exits with after err.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, color.ErrInvalidLength), errors.Is(err, color.ErrInvalidHexChar):
		return 1
	default:
		return 2
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	p, err := palette.Load(cfg.Palette)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	app := newApplication(cfg, p, os.Stdout, terminal.IsTerminal(int(os.Stdout.Fd())))
	err = app.run(ctx, os.Args[1:])
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(exitCode(err))
}
