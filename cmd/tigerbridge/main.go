// =============================================================================
// main.go - TigerBridge CLI Entry Point
// =============================================================================
//
// tigerbridge is an interactive console for a TigerStop Pro controller. It
// connects over TCP (port 7071), reads commands from the terminal, sends
// them as protocol requests and prints every event the controller sends
// back.
//
// Usage:
//
//	tigerbridge                        Ask for the controller address
//	tigerbridge -a 192.168.1.50        Connect to a known address
//	tigerbridge --config ./tb.yaml     Use a specific config file
//	tigerbridge -v                     Log protocol traffic to stderr
//
// =============================================================================

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TigerStop/TigerBridge/tspro"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	// version is the current version of the CLI.
	version = "0.1.0"

	// appName is the application name.
	appName = "TigerBridge"
)

// fullTitle returns the application name with version.
func fullTitle() string {
	return fmt.Sprintf("%s v%s", appName, version)
}

// welcomeBanner returns the banner displayed when the CLI starts.
func welcomeBanner() string {
	return fmt.Sprintf(`Welcome to the %s command-line interface.
Type 'help' for available commands. Press Ctrl+C at any point to exit.
`, fullTitle())
}

// =============================================================================
// Command-Line Arguments
// =============================================================================

// cliOptions holds the values of the command-line flags.
type cliOptions struct {
	configPath  string
	address     string
	port        int
	dialTimeout time.Duration
	verbose     bool
}

// GO CONCEPT: Cobra Commands Without Globals
// ------------------------------------------
// Flags are bound to fields of a struct owned by the command instead of
// package-level variables. Every command built by newRootCommand starts
// from fresh flag values.

// newRootCommand builds the tigerbridge command.
func newRootCommand() *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "tigerbridge",
		Short: "Interactive console for a TigerStop Pro controller",
		Long: `TigerBridge connects to a TigerStop Pro controller over TCP and lets you
drive it from the terminal: move to a position, stop, home, calibrate,
query settings and cycle the tool. Events from the controller are printed
as they arrive.

Settings are read from ~/.tigerbridge.yaml when it exists; flags override
the file.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, newLogger(opts.verbose), cmd.OutOrStdout())
		},
	}

	addFlags(cmd, &opts)
	return cmd
}

// addFlags binds the command-line flags to opts.
func addFlags(cmd *cobra.Command, opts *cliOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default ~/"+configFileName+")")
	cmd.Flags().StringVarP(&opts.address, "address", "a", "", "Controller IP address or host, optionally with :port")
	cmd.Flags().IntVar(&opts.port, "port", tspro.Port, "Controller port used when the address has none")
	cmd.Flags().DurationVar(&opts.dialTimeout, "dial-timeout", defaultDialTimeout, "Connection attempt timeout (0 waits for the OS)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log protocol traffic to stderr")
}

// resolveConfig loads the config file and applies the flags the user set.
func resolveConfig(cmd *cobra.Command, opts cliOptions) (Config, error) {
	path := opts.configPath
	required := cmd.Flags().Changed("config")
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := LoadConfig(path, required)
	if err != nil {
		return cfg, err
	}

	// GO CONCEPT: Telling Defaults from User Input
	// ---------------------------------------------
	// A flag's variable always holds a value, the default if nothing was
	// given. Flags().Changed reports whether the user actually passed the
	// flag, so only explicit flags override the config file.
	if cmd.Flags().Changed("address") {
		cfg.Address = opts.address
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = opts.port
	}
	if cmd.Flags().Changed("dial-timeout") {
		cfg.DialTimeout = opts.dialTimeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

// GO CONCEPT: Structured Logging with log/slog
// --------------------------------------------
// slog writes key/value pairs instead of formatted strings:
//
//   logger.Debug("sent line", "line", "move_to|12.5")
//   // level=DEBUG msg="sent line" line=move_to|12.5
//
// The handler's Level drops records below it, so -v turns protocol
// tracing on without any change at the call sites.

// newLogger creates a structured logger. Only warnings are shown unless
// verbose is set.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printError writes an error line.
func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}

// =============================================================================
// Signal Handling
// =============================================================================

// GO CONCEPT: Signals over a Channel
// ----------------------------------
// signal.Notify delivers SIGINT and SIGTERM as values on sigCh instead of
// killing the process. A goroutine blocks on <-sigCh and runs cleanup when
// one arrives. The channel is buffered with room for one signal because
// Notify never blocks when sending.

// setupSignalHandler runs cleanup and exits when SIGINT or SIGTERM arrives.
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		cleanup()
		os.Exit(0)
	}()
}

// =============================================================================
// Main Entry Point
// =============================================================================

// run connects to the controller and runs the REPL until the user leaves or
// the connection ends.
func run(ctx context.Context, cfg Config, logger *slog.Logger, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	out := newConsole(stdout)
	client := tspro.NewClient(cfg.clientOptions(logger)...)

	editor := NewLineEditor(cfg.HistoryFile, cfg.HistorySize)
	defer editor.Close()

	registerEventPrinters(client, out, newPalette(editor.IsInteractive()))
	setupSignalHandler(func() {
		client.Close()
		editor.Close()
	})

	out.Printf("%s", welcomeBanner())

	// GO CONCEPT: defer
	// -----------------
	// defer editor.Close() above runs when run returns, on every path. The
	// client is closed explicitly instead, because its Close returns an
	// error that run passes back to cobra.
	err := connectController(ctx, client, editor, out, cfg.Address)
	if errors.Is(err, io.EOF) {
		client.Close()
		return nil
	}
	if err != nil {
		client.Close()
		return err
	}
	out.Printf("Connected to %s\n", client.RemoteAddr())

	runREPL(client, editor, out)
	return client.Close()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		printError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
