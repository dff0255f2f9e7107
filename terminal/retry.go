package terminal

import (
	"errors"
	"io"
	"syscall"
)

// maxWriteStalls bounds consecutive zero-progress retries before giving up on a write
const maxWriteStalls = 64

// isTransient reports whether an I/O error should be retried inside the same call
func isTransient(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}

// writeAll drives write until p is fully written
// Interrupted and would-block writes are retried after wait; partial writes resume where they stopped
func writeAll(write func([]byte) (int, error), wait func(), p []byte) (int, error) {
	written := 0
	stalls := 0
	for written < len(p) {
		n, err := write(p[written:])
		if n > 0 {
			written += n
			stalls = 0
		}
		if err != nil {
			if !isTransient(err) {
				return written, err
			}
			stalls++
			if stalls > maxWriteStalls {
				return written, err
			}
			if wait != nil {
				wait()
			}
			continue
		}
		if n <= 0 {
			stalls++
			if stalls > maxWriteStalls {
				return written, io.ErrShortWrite
			}
		}
	}
	return written, nil
}
