// =============================================================================
// events.go - Printing Controller Events
// =============================================================================
//
// The controller talks back asynchronously: move completions, positions,
// errors and sensor changes arrive on the client's reader goroutine while
// the REPL is waiting for the next command. Each event kind gets a hook
// that prints one line to the console.
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/TigerStop/TigerBridge/tspro"
)

// GO CONCEPT: A Mutex-Guarded Writer
// -----------------------------------
// Two goroutines print to the terminal: the REPL and the client's reader.
// console implements io.Writer by taking a sync.Mutex around each Write,
// so a whole line from one side lands before the other side starts.
// defer c.mu.Unlock() releases the lock on every return path.
//
// The zero value of sync.Mutex is an unlocked mutex; no constructor call
// is needed for it.

// console serializes writes from the REPL and the reader goroutine so that
// event lines and prompts never interleave mid-line.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

// Printf formats and writes one message.
func (c *console) Printf(format string, args ...any) {
	fmt.Fprintf(c, format, args...)
}

// GO CONCEPT: Value Receivers
// ----------------------------
// palette is small and never changes after newPalette, so its methods take
// a copy (p palette) instead of a pointer. console uses a pointer receiver
// because a sync.Mutex must not be copied.

// palette styles event output. The zero value prints plain text.
type palette struct {
	color  bool
	notice lipgloss.Style
	alert  lipgloss.Style
	dim    lipgloss.Style
}

// newPalette returns a palette that colors output when color is set.
func newPalette(color bool) palette {
	return palette{
		color:  color,
		notice: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p palette) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

// GO CONCEPT: Type Assertions on an Interface
// -------------------------------------------
// Every hook receives a tspro.Event interface. Because a hook is
// registered for one code, the concrete type is known, and a type
// assertion pulls it out:
//
//   pos := e.(tspro.PositionReceived).Position
//
// The single-result form panics on a mismatch; the client recovers
// handler panics. The two-result form, v, ok := e.(T), never panics.
//
// GO CONCEPT: Closures as Callbacks
// ---------------------------------
// Each hook is a function literal that captures out and p from the
// enclosing call. The sensor closure is stored in a variable and
// registered for three codes, since all of them print the same way.

// registerEventPrinters hooks every controller event the CLI reports.
func registerEventPrinters(client *tspro.Client, out *console, p palette) {
	client.SetEventHook(tspro.EventMoveFinished, func(tspro.Event) {
		out.Printf("\n%s\n", p.render(p.notice, "move finished!"))
	})

	client.SetEventHook(tspro.EventReceivedPosition, func(e tspro.Event) {
		pos := e.(tspro.PositionReceived).Position
		out.Printf("\nreceived a position: %s\n", p.render(p.notice, formatPosition(pos)))
	})

	client.SetEventHook(tspro.EventError, func(e tspro.Event) {
		code := e.(tspro.ControllerError).ErrorCode
		out.Printf("\n%s\n", p.render(p.alert, fmt.Sprintf("received an error %d (%s)", int(code), code)))
	})

	client.SetEventHook(tspro.EventToolEngaged, func(tspro.Event) {
		out.Printf("\ntool down\n")
	})

	client.SetEventHook(tspro.EventToolDisengaged, func(tspro.Event) {
		out.Printf("\ntool UP\n")
	})

	client.SetEventHook(tspro.EventReceivedSetting, func(e tspro.Event) {
		s := e.(tspro.SettingReceived)
		if s.Name == "" {
			out.Printf("\nreceived setting: %s\n", s.Value)
			return
		}
		out.Printf("\nreceived setting: %s = %s\n", s.Name, s.Value)
	})

	sensor := func(e tspro.Event) {
		s := e.(tspro.SensorChanged)
		state := "deactivated"
		if s.Active {
			state = "activated"
		}
		out.Printf("\n%s\n", p.render(p.dim, fmt.Sprintf("%s sensor %s", s.Sensor, state)))
	}
	client.SetEventHook(tspro.EventEdgeDetectSensorActivated, sensor)
	client.SetEventHook(tspro.EventEdgeDetectSensorDeactivated, sensor)
	client.SetEventHook(tspro.EventDefectSensorActivated, sensor)

	client.SetEventHook(tspro.EventDisconnected, func(e tspro.Event) {
		if err := e.(tspro.Disconnected).Err; err != nil {
			out.Printf("\n%s\n", p.render(p.alert, "disconnected from controller: "+err.Error()))
		}
	})
}

// formatPosition prints a position in its shortest exact form.
func formatPosition(pos float64) string {
	return strconv.FormatFloat(pos, 'f', -1, 64)
}
