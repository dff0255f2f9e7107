package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// crashReset restores the terminal before the crash report is printed
// Registered by main once a platform is chosen; nil means nothing to restore
var crashReset func()

// SetCrashReset registers the terminal restore hook used by HandleCrash
func SetCrashReset(fn func()) {
	crashReset = fn
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if crashReset != nil {
		crashReset()
	}

	os.Stdout.Sync()

	// \r\n keeps the trace readable if the tty is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSNAKE CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
