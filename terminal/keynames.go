package terminal

// keyToName maps Key constants to canonical names used in logs
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",

	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",

	KeyCtrlC: "ctrl_c",
	KeyCtrlD: "ctrl_d",
	KeyCtrlQ: "ctrl_q",
	KeyCtrlZ: "ctrl_z",
}

// KeyName returns the canonical string name for a Key constant
// Returns empty string for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// String describes the event for debug logs
func (ev Event) String() string {
	switch ev.Type {
	case EventResize:
		return "resize"
	case EventKey:
		if ev.Key == KeyRune {
			return "rune " + string(ev.Rune)
		}
		if name := KeyName(ev.Key); name != "" {
			return name
		}
		return "unknown"
	}
	return "none"
}
