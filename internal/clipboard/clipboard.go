// Package clipboard copies color codes so they can be pasted elsewhere.
//
// On macOS, this uses the system clipboard and thus works across all applications.
// Elsewhere it falls back to a file shared by all rgbhex instances of the same user.
package clipboard

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/dpinela/rgbhex/internal/atomicwrite"
	"github.com/pkg/errors"

	"github.com/tajtiattila/basedir"
)

// Copy overwrites the clipboard's contents with the given text.
func Copy(text string) error {
	return errors.WithMessage(copyGeneric([]byte(text)), "copy failed")
}

// Paste returns the last text stored with Copy by any instance of rgbhex of the same user,
// or the last text copied into the system clipboard if that is supported.
func Paste() (string, error) {
	data, err := pasteGeneric()
	return string(data), errors.WithMessage(err, "paste failed")
}

func copyGeneric(data []byte) error {
	if runtime.GOOS == "darwin" {
		if err := copyToPasteboard(data); err == nil {
			return nil
		}
	}
	return copyBuiltin(data)
}

func pasteGeneric() ([]byte, error) {
	if runtime.GOOS == "darwin" {
		if data, err := pastePasteboard(); err == nil {
			return data, nil
		}
	}
	return pasteBuiltin()
}

var clipboardFilename = func() (string, error) {
	dir, err := basedir.Data.EnsureDir("rgbhex", 0700)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clipboard"), nil
}

func copyBuiltin(data []byte) error {
	p, err := clipboardFilename()
	if err != nil {
		return err
	}
	return atomicwrite.Write(p, func(w io.Writer) error { _, err := w.Write(data); return err })
}

func pasteBuiltin() ([]byte, error) {
	p, err := clipboardFilename()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func copyToPasteboard(b []byte) error {
	copyCmd := exec.Command("pbcopy")
	copyCmd.Stdin = bytes.NewReader(b)
	return copyCmd.Run()
}

func pastePasteboard() ([]byte, error) {
	return exec.Command("pbpaste").Output()
}
