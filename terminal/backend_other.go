//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

// otherBackend is a placeholder where no raw ANSI tty path exists; Init always fails
// so callers fall back to the tcell platform
type otherBackend struct{}

func newBackend() Backend {
	return otherBackend{}
}

func (otherBackend) Init() error                     { return ErrUnsupported }
func (otherBackend) Fini()                           {}
func (otherBackend) Size() (int, int)                { return 80, 24 }
func (otherBackend) Write(p []byte) (int, error)     { return 0, ErrUnsupported }
func (otherBackend) Read(p []byte) (int, error)      { return 0, nil }
func (otherBackend) SetResizeHandler(func(int, int)) {}

func resetTerminalMode() {}
