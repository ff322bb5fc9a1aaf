package tspro

import (
	"math"
	"strconv"
	"strings"
)

// Frame is one inbound line split into its event code and arguments.
type Frame struct {
	Code EventCode
	Args []string
}

// ParseFrame splits a line received from the controller into a Frame.
// A trailing line terminator (and carriage return) is ignored. The first
// field must be a decimal integer; everything after the first delimiter is
// returned as Args, in order and unmodified.
func ParseFrame(line string) (Frame, error) {
	line = strings.TrimSuffix(line, LineTerminator)
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return Frame{}, newEmptyLineError()
	}

	segments := strings.Split(line, Delimiter)
	head := strings.TrimSpace(segments[0])
	code, err := strconv.Atoi(head)
	if err != nil {
		return Frame{}, newInvalidEventCodeError(segments[0])
	}
	if EventCode(code) == EventDisconnected {
		return Frame{}, newReservedEventCodeError(head)
	}

	return Frame{Code: EventCode(code), Args: segments[1:]}, nil
}

// DecodeEvent turns a Frame into its typed Event. Codes outside the known
// set decode to Unknown. Known codes whose arguments are missing or cannot
// be converted return a *ParseError.
func DecodeEvent(f Frame) (Event, error) {
	args := rawArgs(f.Args)

	switch f.Code {
	case EventMoveFinished:
		return MoveFinished{args}, nil

	case EventReceivedSetting:
		switch len(f.Args) {
		case 0:
			return nil, NewMissingArgumentError("received_setting requires a value")
		case 1:
			return SettingReceived{rawArgs: args, Value: strings.TrimSpace(f.Args[0])}, nil
		default:
			return SettingReceived{
				rawArgs: args,
				Name:    SettingName(strings.TrimSpace(f.Args[0])),
				Value:   strings.TrimSpace(f.Args[1]),
			}, nil
		}

	case EventReceivedPosition:
		if len(f.Args) < 1 {
			return nil, NewMissingArgumentError("received_position requires a position")
		}
		pos, err := ParsePosition(f.Args[0])
		if err != nil {
			return nil, err
		}
		return PositionReceived{rawArgs: args, Position: pos}, nil

	case EventError:
		if len(f.Args) < 1 {
			return nil, NewMissingArgumentError("error requires an error code")
		}
		code, err := strconv.Atoi(strings.TrimSpace(f.Args[0]))
		if err != nil {
			return nil, NewInvalidArgumentError(f.Args[0], "error code must be an integer")
		}
		return ControllerError{rawArgs: args, ErrorCode: ErrorCode(code)}, nil

	case EventToolEngaged:
		return ToolEngaged{args}, nil

	case EventToolDisengaged:
		return ToolDisengaged{args}, nil

	case EventEdgeDetectSensorActivated:
		return SensorChanged{rawArgs: args, Sensor: SensorEdgeDetect, Active: true}, nil

	case EventEdgeDetectSensorDeactivated:
		return SensorChanged{rawArgs: args, Sensor: SensorEdgeDetect, Active: false}, nil

	case EventDefectSensorActivated:
		return SensorChanged{rawArgs: args, Sensor: SensorDefect, Active: true}, nil

	default:
		return Unknown{ID: f.Code, rawArgs: args}, nil
	}
}

// ParseEvent parses and decodes a line in one step.
func ParseEvent(line string) (Event, error) {
	f, err := ParseFrame(line)
	if err != nil {
		return nil, err
	}
	return DecodeEvent(f)
}

// ParsePosition parses a finite decimal position from controller or user
// supplied text.
func ParsePosition(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewInvalidArgumentError(s, "position must be a finite number")
	}
	return v, nil
}
