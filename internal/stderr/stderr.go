//go:build !windows

// Package stderr captures output that C audio backends (ALSA) write
// directly to file descriptor 2, so it can be routed through the logger
// instead of interleaving with status lines.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
)

const bufferedLines = 100

var (
	// mu guards every variable below. Writes to the original stderr hold it
	// too, so Stop cannot close the duplicated fd under a writer.
	mu         sync.Mutex
	messages   = make(chan string, bufferedLines)
	origStderr = -1
	pipeWrite  *os.File
	readerDone chan struct{}
	started    bool
)

// Messages returns the channel receiving captured stderr lines. The channel
// of a capture is closed by Stop once its pending lines are drained.
func Messages() <-chan string {
	mu.Lock()
	defer mu.Unlock()
	return messages
}

// Start begins capturing stderr output.
// Must be called before the speaker is initialized. On error the program
// can continue without capture.
func Start() error {
	mu.Lock()
	defer mu.Unlock()

	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect fd 2 to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeWrite = w
	started = true

	out := messages
	done := make(chan struct{})
	readerDone = done

	go func() {
		defer close(done)
		defer close(out)
		defer r.Close()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				select {
				case out <- line:
				default:
					// Channel full, drop message to avoid blocking
				}
			}
		}
	}()

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
func WriteOriginal(msg string) {
	_, _ = Original().Write([]byte(msg))
}

type originalWriter struct{}

func (originalWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if origStderr >= 0 {
		return syscall.Write(origStderr, p)
	}
	return os.Stderr.Write(p)
}

// Original returns a writer to the real stderr, whether or not capture is
// running. The logger writes here.
func Original() io.Writer { return originalWriter{} }

// Stop restores the original stderr and waits until the captured lines are
// drained and the capture's Messages channel is closed. A later Start
// captures into a fresh channel. Should be called on program exit.
func Stop() {
	mu.Lock()
	if !started {
		mu.Unlock()
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))

	// Closing the last write end ends the reader goroutine
	pipeWrite.Close()
	pipeWrite = nil
	done := readerDone
	mu.Unlock()

	<-done

	mu.Lock()
	defer mu.Unlock()
	_ = syscall.Close(origStderr)
	origStderr = -1
	messages = make(chan string, bufferedLines)
	readerDone = nil
	started = false
}
