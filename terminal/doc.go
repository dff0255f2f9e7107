// Package terminal provides the platform layer for the snake game: raw keyboard input,
// bulk frame presentation and terminal restoration.
//
// Two implementations satisfy the Terminal capability interface:
//   - ANSI: raw tty via x/term, poll(2) with zero timeout for input, cursor-home + one
//     buffered write per frame. Linux, macOS and the BSDs.
//   - tcell: portable screen abstraction for everything else (including Windows consoles).
//
// Neither implementation ever blocks the caller on input.
package terminal
