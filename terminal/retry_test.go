package terminal

import (
	"errors"
	"io"
	"syscall"
	"testing"
)

func TestWriteAllResumesPartialWrites(t *testing.T) {
	var got []byte
	calls := 0
	write := func(p []byte) (int, error) {
		calls++
		n := 3
		if n > len(p) {
			n = len(p)
		}
		got = append(got, p[:n]...)
		return n, nil
	}

	payload := []byte("0123456789abcdef")
	n, err := writeAll(write, nil, payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != len(payload) {
		t.Errorf("Expected %d bytes written, got %d", len(payload), n)
	}
	if string(got) != string(payload) {
		t.Errorf("Expected %q, got %q", payload, got)
	}
	if calls != 6 {
		t.Errorf("Expected 6 write calls for 3-byte chunks, got %d", calls)
	}
}

func TestWriteAllRetriesInterrupted(t *testing.T) {
	attempts := 0
	waits := 0
	write := func(p []byte) (int, error) {
		attempts++
		switch attempts {
		case 1:
			return 0, syscall.EINTR
		case 2:
			return 2, syscall.EAGAIN
		}
		return len(p), nil
	}

	n, err := writeAll(write, func() { waits++ }, []byte("hello"))
	if err != nil {
		t.Fatalf("Expected transient errors to be retried, got %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 bytes, got %d", n)
	}
	if waits != 2 {
		t.Errorf("Expected 2 waits, got %d", waits)
	}
}

func TestWriteAllSurfacesHardErrors(t *testing.T) {
	write := func(p []byte) (int, error) {
		return 1, syscall.EBADF
	}

	n, err := writeAll(write, nil, []byte("abc"))
	if !errors.Is(err, syscall.EBADF) {
		t.Errorf("Expected EBADF, got %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 byte before failure, got %d", n)
	}
}

func TestWriteAllGivesUpOnStall(t *testing.T) {
	write := func(p []byte) (int, error) {
		return 0, nil
	}

	_, err := writeAll(write, nil, []byte("abc"))
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Expected io.ErrShortWrite after repeated zero writes, got %v", err)
	}
}
