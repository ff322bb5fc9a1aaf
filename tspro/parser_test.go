package tspro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name string
		line string
		code EventCode
		args []string
	}{
		{"code only", "0\n", EventMoveFinished, []string{}},
		{"no terminator", "0", EventMoveFinished, []string{}},
		{"one arg", "2|12.5\n", EventReceivedPosition, []string{"12.5"}},
		{"crlf", "2|12.5\r\n", EventReceivedPosition, []string{"12.5"}},
		{"many args in order", "42|a|b|c\n", EventCode(42), []string{"a", "b", "c"}},
		{"empty args kept", "42||x|\n", EventCode(42), []string{"", "x", ""}},
		{"spaces in args kept", "1|minlim| 0.5 \n", EventReceivedSetting, []string{"minlim", " 0.5 "}},
		{"padded code", " 3 |103\n", EventError, []string{"103"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFrame(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.args, f.Args)
		})
	}
}

func TestParseFrameMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind ParseErrorKind
	}{
		{"empty line", "\n", ErrKindEmptyLine},
		{"nothing", "", ErrKindEmptyLine},
		{"garbage", "abc|x\n", ErrKindInvalidEventCode},
		{"empty code", "|1|2\n", ErrKindInvalidEventCode},
		{"float code", "2.5|1\n", ErrKindInvalidEventCode},
		{"reserved code", "-1|boom\n", ErrKindReservedEventCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrame(tt.line)
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Kind)
			assert.NotEmpty(t, perr.Error())
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, e Event)
	}{
		{"move finished", "0", func(t *testing.T, e Event) {
			assert.IsType(t, MoveFinished{}, e)
		}},
		{"setting with name", "1|minlim|0.25", func(t *testing.T, e Event) {
			s := e.(SettingReceived)
			assert.Equal(t, SettingMinimumLimit, s.Name)
			assert.Equal(t, "0.25", s.Value)
			v, err := s.Float()
			require.NoError(t, err)
			assert.Equal(t, 0.25, v)
		}},
		{"setting value only", "1|96", func(t *testing.T, e Event) {
			s := e.(SettingReceived)
			assert.Equal(t, SettingName(""), s.Name)
			assert.Equal(t, "96", s.Value)
		}},
		{"setting fields trimmed", "1| minlim | 0.5 ", func(t *testing.T, e Event) {
			s := e.(SettingReceived)
			assert.Equal(t, SettingMinimumLimit, s.Name)
			assert.Equal(t, "0.5", s.Value)
			assert.Equal(t, []string{" minlim ", " 0.5 "}, s.Args())
		}},
		{"setting value only trimmed", "1| 96 ", func(t *testing.T, e Event) {
			assert.Equal(t, "96", e.(SettingReceived).Value)
		}},
		{"position", "2|12.5", func(t *testing.T, e Event) {
			assert.Equal(t, 12.5, e.(PositionReceived).Position)
		}},
		{"error", "3|103", func(t *testing.T, e Event) {
			ce := e.(ControllerError)
			assert.Equal(t, ErrorUnexpectedObstruction, ce.ErrorCode)
			assert.Equal(t, "controller error 103: unexpected obstruction", ce.Error())
		}},
		{"tool engaged", "4", func(t *testing.T, e Event) {
			assert.IsType(t, ToolEngaged{}, e)
		}},
		{"tool disengaged", "5", func(t *testing.T, e Event) {
			assert.IsType(t, ToolDisengaged{}, e)
		}},
		{"edge detect on", "6", func(t *testing.T, e Event) {
			s := e.(SensorChanged)
			assert.Equal(t, SensorEdgeDetect, s.Sensor)
			assert.True(t, s.Active)
		}},
		{"edge detect off", "7", func(t *testing.T, e Event) {
			s := e.(SensorChanged)
			assert.Equal(t, SensorEdgeDetect, s.Sensor)
			assert.False(t, s.Active)
		}},
		{"defect", "8", func(t *testing.T, e Event) {
			s := e.(SensorChanged)
			assert.Equal(t, SensorDefect, s.Sensor)
			assert.True(t, s.Active)
		}},
		{"unknown keeps args", "42|a|b|c", func(t *testing.T, e Event) {
			u := e.(Unknown)
			assert.Equal(t, EventCode(42), u.ID)
			assert.Equal(t, []string{"a", "b", "c"}, u.Args())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseEvent(tt.line)
			require.NoError(t, err)
			f, _ := ParseFrame(tt.line)
			assert.Equal(t, f.Code, e.Code())
			assert.Equal(t, f.Args, e.Args())
			tt.check(t, e)
		})
	}
}

func TestDecodeEventRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"setting without value", "1"},
		{"position missing", "2"},
		{"position not a number", "2|far"},
		{"position NaN", "2|NaN"},
		{"error missing", "3"},
		{"error not a number", "3|oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvent(tt.line)
			var perr *ParseError
			assert.True(t, errors.As(err, &perr), "got %v", err)
		})
	}
}

func TestFormatEvent(t *testing.T) {
	e, err := ParseEvent("3|117")
	require.NoError(t, err)
	assert.Equal(t, "3|117", FormatEvent(e))
	assert.Equal(t, "disconnected", FormatEvent(Disconnected{}))
}

func TestParsePosition(t *testing.T) {
	v, err := ParsePosition(" 24.75 ")
	require.NoError(t, err)
	assert.Equal(t, 24.75, v)

	for _, bad := range []string{"", "abc", "Inf", "1e400"} {
		_, err := ParsePosition(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
