// Command snake-keys shows how key presses decode and which game action they map to.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/terminal"
)

const (
	maxLog   = 10
	pollRate = 10 * time.Millisecond
)

var platformFlag = flag.String("platform", "ansi", "Terminal platform: ansi, tcell")

func main() {
	flag.Parse()

	var term terminal.Terminal
	if *platformFlag == "tcell" {
		term = terminal.NewTcell()
	} else {
		term = terminal.New(terminal.Options{})
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	keys := input.DefaultKeyTable()
	eventLog := make([]string, 0, maxLog)
	addLog := func(s string) {
		if len(eventLog) >= maxLog {
			copy(eventLog, eventLog[1:])
			eventLog = eventLog[:maxLog-1]
		}
		eventLog = append(eventLog, s)
	}

	var frame []byte
	render := func() {
		w, _ := term.Size()
		width := min(w, 78)
		frame = frame[:0]
		frame = appendLine(frame, "Key Test - press keys, Ctrl+C to quit", width)
		frame = appendLine(frame, strings.Repeat("-", width), width)
		for i := 0; i < maxLog; i++ {
			entry := ""
			if i < len(eventLog) {
				entry = eventLog[i]
			}
			frame = appendLine(frame, entry, width)
		}
		term.Present(frame)
	}

	render()
	var events []terminal.Event
	for {
		events = term.PollEvents(events[:0])
		for _, ev := range events {
			if ev.Type == terminal.EventKey && ev.Key == terminal.KeyCtrlC {
				return
			}
			intent := keys.Translate(ev)
			entry := fmt.Sprintf("%-16s mod=%d  -> %s", ev, ev.Modifiers, intent.Type)
			if intent.Type == input.IntentMove {
				entry += " " + intent.Dir.String()
			}
			addLog(entry)
		}
		if len(events) > 0 {
			render()
		}
		time.Sleep(pollRate)
	}
}

// appendLine writes s padded or truncated to width display columns
func appendLine(b []byte, s string, width int) []byte {
	s = runewidth.Truncate(s, width, "")
	b = append(b, s...)
	for n := runewidth.StringWidth(s); n < width; n++ {
		b = append(b, ' ')
	}
	return append(b, '\n')
}
