package terminal

import (
	"bufio"
	"io"
)

// outputBufferSize holds several full frames so a frame reaches the tty in one write
const outputBufferSize = 131072 // 128KB buffer

// outputBuffer assembles control sequences and frame bytes into a single flush
type outputBuffer struct {
	writer *bufio.Writer
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer) *outputBuffer {
	return &outputBuffer{
		writer: bufio.NewWriterSize(w, outputBufferSize),
	}
}

// present homes the cursor and writes the frame, optionally clearing first
// The frame overwrites the previous one in place; clear is only needed after a resize
func (o *outputBuffer) present(frame []byte, clear bool) error {
	w := o.writer
	if clear {
		w.Write(csiClear)
	} else {
		w.Write(csiHome)
	}
	w.Write(frame)
	return w.Flush()
}

// control writes a standalone control sequence immediately
func (o *outputBuffer) control(seqs ...[]byte) error {
	for _, s := range seqs {
		o.writer.Write(s)
	}
	return o.writer.Flush()
}
