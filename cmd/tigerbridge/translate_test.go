// =============================================================================
// translate_test.go - Tests for Command Translation (translate.go)
// =============================================================================

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TigerStop/TigerBridge/tspro"
)

// TestParseCommandRequests verifies each verb produces the right wire line.
func TestParseCommandRequests(t *testing.T) {
	tests := []struct {
		input string
		wire  string
	}{
		{"move_to 12.5", "move_to|12.5"},
		{"move_to 100", "move_to|100.0"},
		{"move_to -0.5", "move_to|-0.5"},
		{"  move_to    7  ", "move_to|7.0"},
		{"MOVE_TO 3", "move_to|3.0"},
		{"calibrate 48.125", "calibrate|48.125"},
		{"get_setting minlim", "get_setting|minlim"},
		{"get_setting maxlim", "get_setting|maxlim"},
		{"get_setting speed", "get_setting|speed"},
		{"stop", "stop"},
		{"get_position", "get_position"},
		{"home", "home"},
		{"cycle_tool", "cycle_tool"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, commandRequest, cmd.kind)
			assert.Equal(t, tt.wire, cmd.request.Format())
		})
	}
}

func TestParseCommandLocalActions(t *testing.T) {
	tests := []struct {
		input string
		kind  commandKind
	}{
		{"help", commandHelp},
		{"?", commandHelp},
		{"help move_to", commandHelp},
		{"exit", commandExit},
		{"quit", commandExit},
		{"Exit", commandExit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, cmd.kind)
		})
	}
}

// TestParseCommandErrors verifies rejected lines and the kind of error.
func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  tspro.ParseErrorKind
	}{
		{"", tspro.ErrKindMissingArgument},
		{"fly", tspro.ErrKindInvalidCommand},
		{"move_to", tspro.ErrKindMissingArgument},
		{"move_to far", tspro.ErrKindInvalidArgument},
		{"move_to NaN", tspro.ErrKindInvalidArgument},
		{"move_to Inf", tspro.ErrKindInvalidArgument},
		{"move_to 1 2", tspro.ErrKindInvalidArgument},
		{"calibrate", tspro.ErrKindMissingArgument},
		{"calibrate x", tspro.ErrKindInvalidArgument},
		{"get_setting", tspro.ErrKindMissingArgument},
		{"get_setting a|b", tspro.ErrKindInvalidArgument},
		{"stop now", tspro.ErrKindInvalidArgument},
		{"home 1", tspro.ErrKindInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseCommand(tt.input)
			require.Error(t, err)

			var perr *tspro.ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

// TestRequestCommandsCoverVerbs guards against a verb missing from the table.
func TestRequestCommandsCoverVerbs(t *testing.T) {
	verbs := []tspro.Verb{
		tspro.VerbMoveTo,
		tspro.VerbGetSetting,
		tspro.VerbGetPosition,
		tspro.VerbStop,
		tspro.VerbCalibrate,
		tspro.VerbHome,
		tspro.VerbCycleTool,
	}
	for _, v := range verbs {
		_, ok := requestCommands[string(v)]
		assert.True(t, ok, "verb %s", v)
	}
	assert.Len(t, requestCommands, len(verbs))
}
