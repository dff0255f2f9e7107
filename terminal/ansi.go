package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csiHome  = []byte("\x1b[H")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiSGR0  = []byte("\x1b[0m")
	crlf     = []byte("\r\n")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
)
