// =============================================================================
// connect.go - Connecting to the Controller
// =============================================================================
//
// With an address from the flags or config file the CLI makes one attempt
// and gives up on failure. Without one it asks for an address and keeps
// asking until a connection succeeds or input runs out.
//
// =============================================================================

package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/TigerStop/TigerBridge/tspro"
)

// addressPrompt is shown when no address was configured.
const addressPrompt = "Enter a TigerStop Pro's IP address: "

// connectController connects client to address, or to addresses read from
// editor when address is empty. It returns io.EOF if input ends before a
// connection is made.
func connectController(ctx context.Context, client *tspro.Client, editor *LineEditor, out *console, address string) error {
	if address != "" {
		out.Printf("Connecting to %s...\n", address)
		if err := client.ConnectWithContext(ctx, address); err != nil {
			return errors.Wrapf(err, "connect to %s", address)
		}
		return nil
	}

	// GO CONCEPT: for Without a Condition
	// ------------------------------------
	// A bare for loops forever. The body leaves through return, and
	// continue skips to the next prompt. This is Go's only loop keyword;
	// "while" is written as for with just a condition.
	for {
		line, err := editor.GetLine(addressPrompt)
		if err != nil {
			return err
		}

		address := strings.TrimSpace(line)
		if address == "" {
			continue
		}

		err = client.ConnectWithContext(ctx, address)
		if err == nil {
			return nil
		}
		// GO CONCEPT: errors.Is
		// ----------------------
		// errors.Is walks the chain of wrapped errors looking for a match,
		// so it finds tspro.ErrClosed even inside a *tspro.ConnectionError.
		// A plain == would only match the outermost error.
		if errors.Is(err, tspro.ErrClosed) || ctx.Err() != nil {
			return errors.Wrap(err, "connect")
		}
		out.Printf("failed to connect\n")
	}
}
