package terminal

// Backend abstracts the platform tty used by the ANSI terminal.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Capabilities
	Size() (width, height int)

	// Write writes all of p, resuming after partial writes and retrying interrupted ones
	Write(p []byte) (int, error)

	// Read returns whatever input is buffered right now without waiting.
	// Zero bytes with a nil error means nothing is pending.
	Read(p []byte) (int, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
