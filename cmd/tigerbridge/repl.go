// =============================================================================
// repl.go - Read-Eval-Print Loop
// =============================================================================
//
// Reads commands, sends the matching requests and leaves answers to the
// event printers in events.go. The loop ends on "exit", on end of input, or
// as soon as the controller connection goes away, even while it is waiting
// for the user to type.
//
// =============================================================================

package main

import (
	"strings"

	"github.com/TigerStop/TigerBridge/tspro"
)

// commandPrompt is shown before each command.
const commandPrompt = "Enter a command: "

// lineResult is one GetLine call's outcome.
type lineResult struct {
	line string
	err  error
}

// GO CONCEPT: Selecting Between Input and Disconnection
// -----------------------------------------------------
// GetLine blocks, so it runs on its own goroutine and hands each line back
// over a channel. The loop then selects between that channel and the
// client's Done channel, which lets a disconnection end the REPL without
// waiting for the user to press Enter. The reader only starts a new read
// when asked through next, so prompts never run ahead of command output.
//
//   select {
//   case r = <-lines:      // a line, or io.EOF
//   case <-client.Done():  // connection gone
//   }
//
// Closing next on the way out ends the goroutine's range loop if it is
// waiting to be asked for another line. lines has room for one result so
// a read that finishes after the loop has gone never blocks.

// runREPL runs the command loop until exit, end of input or disconnection.
func runREPL(client *tspro.Client, editor *LineEditor, out *console) {
	next := make(chan struct{})
	lines := make(chan lineResult, 1)
	defer close(next)

	go func() {
		for range next {
			line, err := editor.GetLine(commandPrompt)
			lines <- lineResult{line, err}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case next <- struct{}{}:
		case <-client.Done():
			return
		}

		var r lineResult
		select {
		case r = <-lines:
		case <-client.Done():
			out.Printf("\nconnection closed\n")
			return
		}
		if r.err != nil {
			out.Printf("\n")
			return
		}

		if !evalLine(client, out, r.line) {
			return
		}
	}
}

// evalLine handles one line and reports whether the REPL should continue.
func evalLine(client *tspro.Client, out *console, line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}

	cmd, err := parseCommand(line)
	if err != nil {
		printHelp(out)
		return true
	}

	// GO CONCEPT: switch Without fallthrough
	// --------------------------------------
	// A Go case ends at the next case; there is no implicit fall-through
	// and no break is needed. return inside a case leaves the function.
	switch cmd.kind {
	case commandHelp:
		printHelp(out)
	case commandExit:
		return false
	case commandRequest:
		if err := client.Send(cmd.request); err != nil {
			printError(out, err.Error())
		}
	}
	return true
}
