// =============================================================================
// help.go - REPL Help Listing
// =============================================================================
//
// The listing is printed for "help" and whenever a line cannot be parsed,
// so a mistyped command always shows the user what is accepted.
//
// =============================================================================

package main

import (
	"fmt"
	"io"
)

// GO CONCEPT: Raw String Literals
// -------------------------------
// A string in backquotes is taken literally: newlines and indentation are
// kept and backslashes are not escapes. It suits fixed blocks of text like
// this listing. A raw string cannot contain a backquote.

// helpText is the fixed command listing.
const helpText = `
Here's a list of valid commands:
    - move_to {position}
    - stop
    - get_position
    - get_setting {name}      (minlim, maxlim)
    - home
    - calibrate {position}
    - cycle_tool
    - help
    - exit
`

// printHelp writes the command listing to w.
func printHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}
