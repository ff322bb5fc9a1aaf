// =============================================================================
// translate.go - Command Translation (User Input → Controller Requests)
// =============================================================================
//
// Turns a line typed at the REPL into either a local action (help, exit) or
// a tspro.Request ready to send. The user vocabulary mirrors the wire verbs:
//
//   "move_to 12.5"      → move_to|12.5
//   "calibrate 48"      → calibrate|48.0
//   "get_setting maxlim" → get_setting|maxlim
//   "stop"              → stop
//
// Words are separated by any run of whitespace. A line with the wrong
// number of arguments, a position that is not a finite number, or an
// unknown verb is rejected with a *tspro.ParseError.
//
// =============================================================================

package main

import (
	"strings"

	"github.com/TigerStop/TigerBridge/tspro"
)

// GO CONCEPT: Enumerations with iota
// ----------------------------------
// Go has no enum keyword. A named integer type plus a const block with
// iota gives the same effect: iota is 0 on the first line of the block and
// goes up by one per line, and later lines repeat the first line's type
// and expression.
//
//   commandRequest // 0
//   commandHelp    // 1
//   commandExit    // 2

// commandKind says what the REPL should do with a parsed line.
type commandKind int

const (
	// commandRequest sends command.request to the controller.
	commandRequest commandKind = iota

	// commandHelp prints the command listing.
	commandHelp

	// commandExit leaves the REPL.
	commandExit
)

// command is one parsed REPL line.
type command struct {
	kind    commandKind
	request tspro.Request
}

// GO CONCEPT: Tables of Functions
// -------------------------------
// Instead of a long switch, each verb maps to the number of arguments it
// takes and a function that builds the request. Adding a verb is one entry
// in the map, and the argument-count check lives in one place.

// requestSpec describes a verb that produces a controller request.
type requestSpec struct {
	args  int
	build func(args []string) (tspro.Request, error)
}

var requestCommands = map[string]requestSpec{
	string(tspro.VerbMoveTo): {1, func(args []string) (tspro.Request, error) {
		pos, err := tspro.ParsePosition(args[0])
		if err != nil {
			return tspro.Request{}, err
		}
		return tspro.NewMoveToRequest(pos), nil
	}},
	string(tspro.VerbCalibrate): {1, func(args []string) (tspro.Request, error) {
		pos, err := tspro.ParsePosition(args[0])
		if err != nil {
			return tspro.Request{}, err
		}
		return tspro.NewCalibrateRequest(pos), nil
	}},
	string(tspro.VerbGetSetting): {1, func(args []string) (tspro.Request, error) {
		if strings.ContainsAny(args[0], tspro.Delimiter) {
			return tspro.Request{}, tspro.NewInvalidArgumentError(args[0], "setting name contains the field delimiter")
		}
		return tspro.NewGetSettingRequest(tspro.SettingName(args[0])), nil
	}},
	string(tspro.VerbStop):        {0, constant(tspro.NewStopRequest)},
	string(tspro.VerbGetPosition): {0, constant(tspro.NewGetPositionRequest)},
	string(tspro.VerbHome):        {0, constant(tspro.NewHomeRequest)},
	string(tspro.VerbCycleTool):   {0, constant(tspro.NewCycleToolRequest)},
}

// GO CONCEPT: Functions Returning Functions
// -----------------------------------------
// constant takes a request constructor with no arguments and returns a
// closure with the builder signature the table expects. The closure keeps
// newRequest alive after constant returns. The ignored parameter has no
// name, which is how Go marks an argument as unused.

func constant(newRequest func() tspro.Request) func([]string) (tspro.Request, error) {
	return func([]string) (tspro.Request, error) {
		return newRequest(), nil
	}
}

// parseCommand parses one non-empty REPL line.
func parseCommand(line string) (command, error) {
	// GO CONCEPT: strings.Fields
	// --------------------------
	// Fields splits around any run of Unicode whitespace and drops leading
	// and trailing space, so "  move_to    7  " gives ["move_to" "7"].
	// strings.Split(line, " ") would leave empty strings between the runs.
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, tspro.NewMissingArgumentError("empty command")
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "help", "?":
		return command{kind: commandHelp}, nil
	case "exit", "quit":
		return command{kind: commandExit}, nil
	}

	// GO CONCEPT: The Comma-Ok Idiom
	// -------------------------------
	// Indexing a map with a missing key yields the zero value. The second
	// result, ok, tells a missing key apart from a stored zero value.
	spec, ok := requestCommands[verb]
	if !ok {
		return command{}, tspro.NewInvalidCommandError(fields[0])
	}
	if len(args) < spec.args {
		return command{}, tspro.NewMissingArgumentError(verb + " requires an argument")
	}
	if len(args) > spec.args {
		return command{}, tspro.NewInvalidArgumentError(strings.Join(args[spec.args:], " "), "unexpected argument")
	}

	req, err := spec.build(args)
	if err != nil {
		return command{}, err
	}
	return command{kind: commandRequest, request: req}, nil
}
