package tspro

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is a decoded controller event. The concrete type tells which kind
// of event arrived:
//
//	MoveFinished, SettingReceived, PositionReceived, ControllerError,
//	ToolEngaged, ToolDisengaged, SensorChanged, Disconnected, Unknown
//
// Args returns the raw argument strings of the line the event was decoded
// from, in their original order.
type Event interface {
	Code() EventCode
	Args() []string
	isEvent()
}

// rawArgs carries the undecoded arguments of an inbound line.
type rawArgs []string

func (a rawArgs) Args() []string { return []string(a) }
func (rawArgs) isEvent()         {}

// MoveFinished reports that the last requested move has completed.
type MoveFinished struct{ rawArgs }

// Code implements Event.
func (MoveFinished) Code() EventCode { return EventMoveFinished }

// SettingReceived answers a get_setting request.
type SettingReceived struct {
	rawArgs
	Name  SettingName
	Value string
}

// Code implements Event.
func (SettingReceived) Code() EventCode { return EventReceivedSetting }

// Float parses the setting value as a number.
func (e SettingReceived) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
}

// PositionReceived answers a get_position request.
type PositionReceived struct {
	rawArgs
	Position float64
}

// Code implements Event.
func (PositionReceived) Code() EventCode { return EventReceivedPosition }

// ControllerError reports a fault or a rejected request.
type ControllerError struct {
	rawArgs
	ErrorCode ErrorCode
}

// Code implements Event.
func (ControllerError) Code() EventCode { return EventError }

// Error implements the error interface so a ControllerError can be returned
// or wrapped by callers.
func (e ControllerError) Error() string {
	return fmt.Sprintf("controller error %d: %s", int(e.ErrorCode), e.ErrorCode)
}

// ToolEngaged reports that the tool went down.
type ToolEngaged struct{ rawArgs }

// Code implements Event.
func (ToolEngaged) Code() EventCode { return EventToolEngaged }

// ToolDisengaged reports that the tool came back up.
type ToolDisengaged struct{ rawArgs }

// Code implements Event.
func (ToolDisengaged) Code() EventCode { return EventToolDisengaged }

// SensorChanged reports an edge detect or defect sensor transition.
type SensorChanged struct {
	rawArgs
	Sensor SensorKind
	Active bool
}

// Code implements Event.
func (e SensorChanged) Code() EventCode {
	switch {
	case e.Sensor == SensorDefect:
		return EventDefectSensorActivated
	case e.Active:
		return EventEdgeDetectSensorActivated
	default:
		return EventEdgeDetectSensorDeactivated
	}
}

// Disconnected is delivered exactly once when the connection ends. Err is
// nil when the connection was closed with Client.Close.
type Disconnected struct {
	rawArgs
	Err error
}

// Code implements Event.
func (Disconnected) Code() EventCode { return EventDisconnected }

// Unknown carries a well-formed line whose code is outside the known set.
type Unknown struct {
	ID EventCode
	rawArgs
}

// Code implements Event.
func (e Unknown) Code() EventCode { return e.ID }

// FormatEvent returns the event formatted as a wire line without the
// terminator. Disconnected has no wire form and formats as its name.
func FormatEvent(e Event) string {
	if e.Code() == EventDisconnected {
		return e.Code().String()
	}
	parts := append([]string{strconv.Itoa(int(e.Code()))}, e.Args()...)
	return strings.Join(parts, Delimiter)
}
