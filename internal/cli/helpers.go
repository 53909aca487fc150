package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var errInterrupted = errors.New("interrupted")

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) so that a blocked
// Read returns errInterrupted as soon as cancel is closed. The underlying
// Read runs on its own goroutine; its result is kept for the next call if
// the caller was interrupted first. A base reader that never returns keeps
// that goroutine parked until the process exits.
type InterruptibleReader struct {
	base    io.Reader
	cancel  <-chan struct{}
	results chan readResult
	pending bool
	rest    []byte
	err     error
}

type readResult struct {
	data []byte
	err  error
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:    base,
		cancel:  cancel,
		results: make(chan readResult, 1),
	}
}

func (r *InterruptibleReader) Read(p []byte) (int, error) {
	select {
	case <-r.cancel:
		return 0, errInterrupted
	default:
	}

	if len(r.rest) > 0 {
		n := copy(p, r.rest)
		r.rest = r.rest[n:]
		return n, nil
	}
	if r.err != nil {
		return 0, r.err
	}

	if !r.pending {
		r.pending = true
		buf := make([]byte, len(p))
		go func() {
			n, err := r.base.Read(buf)
			r.results <- readResult{data: buf[:n], err: err}
		}()
	}

	select {
	case res := <-r.results:
		r.pending = false
		n := copy(p, res.data)
		r.rest = res.data[n:]
		if len(r.rest) > 0 {
			r.err = res.err
			return n, nil
		}
		return n, res.err
	case <-r.cancel:
		return 0, errInterrupted
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, errInterrupted) ||
		errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
