// =============================================================================
// lineeditor.go - Line Editor with Dual-Mode Operation
// =============================================================================
//
// The REPL reads from one of two sources:
//
//   - Interactive mode: ergochat/readline, with Emacs keybindings,
//     persistent history and Ctrl-R history search.
//   - Non-interactive mode: bufio.Scanner over stdin, printing the prompt
//     itself. Used for piped input and under Emacs comint.
//
// History lives in ~/.tigerbridge_history unless the config file says
// otherwise.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is the default history file in the home directory.
	historyFileName = ".tigerbridge_history"

	// historySize is the default number of history entries to retain.
	historySize = 500
)

// GO CONCEPT: One Type, Two Back Ends
// ------------------------------------
// readline.Instance and bufio.Scanner read input through different APIs.
// LineEditor holds whichever one is active and exposes a single
// GetLine/Close pair, so the REPL never checks which mode it is in. The
// unused back end stays nil.
//
// All fields are lowercase and therefore unexported: only this package can
// touch them. The exported methods are the whole API.

// LineEditor wraps line editing with dual-mode operation.
type LineEditor struct {
	// interactive is true when stdin is a terminal.
	interactive bool

	// rl is set in interactive mode only.
	rl *readline.Instance

	// scanner and out are set in non-interactive mode only.
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineEditor creates a LineEditor for os.Stdin, choosing the mode from
// whether stdin is a terminal.
//
// Under Emacs (INSIDE_EMACS set) the non-interactive mode is always used
// because Emacs does its own line editing.
func NewLineEditor(historyPath string, historyLimit int) *LineEditor {
	// GO CONCEPT: TTY Detection
	// -------------------------
	// term.IsTerminal reports whether a file descriptor is a terminal.
	// os.Stdin.Fd() returns a uintptr, and IsTerminal takes an int, hence
	// the conversion. Input from a pipe or a file is not a terminal.
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("INSIDE_EMACS") == ""

	if !isInteractive {
		return newPipedLineEditor(os.Stdin, os.Stdout)
	}

	// GO CONCEPT: Struct Literals with Named Fields
	// ---------------------------------------------
	// Fields left out of the literal get their zero value. The & takes the
	// address of the literal because NewFromConfig wants a *readline.Config.
	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:  historyPath,
		HistoryLimit: historyLimit,

		// Only non-empty lines go into history; see getInteractiveLine.
		DisableAutoSaveHistory: true,

		// Set before every read.
		Prompt: "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return newPipedLineEditor(os.Stdin, os.Stdout)
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

// GO CONCEPT: Accepting io.Reader and io.Writer
// ----------------------------------------------
// The piped editor takes any io.Reader and io.Writer rather than using
// os.Stdin and os.Stdout directly. Production passes the real streams;
// tests pass a strings.Reader and a bytes.Buffer:
//
//   editor := newPipedLineEditor(strings.NewReader("stop\n"), &out)
//
// Any type with the right Read or Write method satisfies the interface.
// No declaration is needed.

// newPipedLineEditor creates a non-interactive LineEditor reading lines from
// in and printing prompts to out.
func newPipedLineEditor(in io.Reader, out io.Writer) *LineEditor {
	return &LineEditor{
		interactive: false,
		scanner:     bufio.NewScanner(in),
		out:         out,
	}
}

// GO CONCEPT: Sentinel Errors
// ---------------------------
// io.EOF is a package-level error value that signals "no more input"
// rather than a failure. Callers compare against it:
//
//   line, err := editor.GetLine(prompt)
//   if err == io.EOF { /* user is done */ }
//
// Mapping Ctrl-C (readline.ErrInterrupt) onto io.EOF means the REPL has
// one way to spot the end of a session.

// GetLine reads a line of input after showing prompt.
//
// It returns the line without its trailing newline. It returns ("", io.EOF)
// when the user presses Ctrl-D or Ctrl-C, or when piped input runs out.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}

	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Fprint(le.out, prompt)

	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return le.scanner.Text(), nil
}

// GO CONCEPT: Idempotent Cleanup
// ------------------------------
// Go has no destructors, so resources are released by an explicit Close,
// usually deferred right after creation:
//
//   editor := NewLineEditor(path, size)
//   defer editor.Close()
//
// Setting rl to nil after closing it makes a second Close a no-op.

// Close saves history and releases the terminal. It is safe to call more
// than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether full line editing is active.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}
