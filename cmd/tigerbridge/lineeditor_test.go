// =============================================================================
// lineeditor_test.go - Tests for the Line Editor (lineeditor.go)
// =============================================================================
//
// Only the non-interactive mode can be exercised here: tests run with
// stdin attached to a pipe, never a terminal.
//
// =============================================================================

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GO CONCEPT: Swapping os.Stdin in Tests
// --------------------------------------
// os.Stdin is a package variable, so a test can point it at the read end
// of an os.Pipe and restore it in t.Cleanup. A pipe is never a terminal,
// which forces NewLineEditor into non-interactive mode.

// newStdinEditor swaps os.Stdin for a pipe and builds a LineEditor on it.
// It returns the write end of the pipe.
func newStdinEditor(t *testing.T) (*LineEditor, *os.File) {
	t.Helper()

	oldStdin := os.Stdin
	reader, writer, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = oldStdin
		reader.Close()
		writer.Close()
	})

	editor := NewLineEditor("", historySize)
	t.Cleanup(editor.Close)

	return editor, writer
}

func TestNewLineEditorNonInteractiveOnPipe(t *testing.T) {
	editor, _ := newStdinEditor(t)

	assert.False(t, editor.IsInteractive())
	assert.Nil(t, editor.rl)
	assert.NotNil(t, editor.scanner)
}

func TestNewLineEditorReadsStdin(t *testing.T) {
	editor, writer := newStdinEditor(t)

	fmt.Fprint(writer, "stop\n")
	writer.Close()

	line, err := editor.GetLine("")
	require.NoError(t, err)
	assert.Equal(t, "stop", line)

	_, err = editor.GetLine("")
	assert.Equal(t, io.EOF, err)
}

func TestNewLineEditorInsideEmacs(t *testing.T) {
	t.Setenv("INSIDE_EMACS", "29.1,comint")
	editor, _ := newStdinEditor(t)
	assert.False(t, editor.IsInteractive())
}

func TestGetLineSequence(t *testing.T) {
	var out bytes.Buffer
	editor := newPipedLineEditor(strings.NewReader("move_to 1\n\n  \nhome"), &out)

	expected := []string{"move_to 1", "", "  ", "home"}
	for _, want := range expected {
		line, err := editor.GetLine("> ")
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := editor.GetLine("> ")
	assert.Equal(t, io.EOF, err)
}

// TestGetLinePrintsPrompt verifies the prompt is written before each read,
// including the read that hits end of input.
func TestGetLinePrintsPrompt(t *testing.T) {
	var out bytes.Buffer
	editor := newPipedLineEditor(strings.NewReader("a\nb\n"), &out)

	for {
		if _, err := editor.GetLine(commandPrompt); err != nil {
			break
		}
	}
	assert.Equal(t, strings.Repeat(commandPrompt, 3), out.String())
}

func TestGetLinePreservesSpecialCharacters(t *testing.T) {
	var out bytes.Buffer
	input := "get_setting a|b\ttab \"quoted\"\n"
	editor := newPipedLineEditor(strings.NewReader(input), &out)

	line, err := editor.GetLine("")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(input, "\n"), line)
}

func TestLineEditorCloseIsIdempotent(t *testing.T) {
	editor := newPipedLineEditor(strings.NewReader(""), io.Discard)
	assert.NotPanics(t, func() {
		editor.Close()
		editor.Close()
	})
}

func TestHistoryDefaults(t *testing.T) {
	assert.Equal(t, ".tigerbridge_history", historyFileName)
	assert.Positive(t, historySize)
}
