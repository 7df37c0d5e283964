//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio libraries don't produce the same stderr noise as ALSA.
package stderr

import (
	"io"
	"os"
)

var messages = make(chan string)

// Messages returns a channel that never receives anything on Windows.
func Messages() <-chan string { return messages }

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Original returns os.Stderr.
func Original() io.Writer { return os.Stderr }

// Stop is a no-op on Windows.
func Stop() {}
