package tspro

import "strconv"

// EventCode identifies the kind of a controller-originated line. It is the
// first field of every inbound line.
type EventCode int

const (
	// EventDisconnected is reserved for the local disconnection notice. It
	// never appears on the wire; inbound lines carrying it are discarded.
	EventDisconnected EventCode = -1

	EventMoveFinished                EventCode = 0
	EventReceivedSetting             EventCode = 1
	EventReceivedPosition            EventCode = 2
	EventError                       EventCode = 3
	EventToolEngaged                 EventCode = 4
	EventToolDisengaged              EventCode = 5
	EventEdgeDetectSensorActivated   EventCode = 6
	EventEdgeDetectSensorDeactivated EventCode = 7
	EventDefectSensorActivated       EventCode = 8
)

var eventCodeNames = map[EventCode]string{
	EventDisconnected:                "disconnected",
	EventMoveFinished:                "move_finished",
	EventReceivedSetting:             "received_setting",
	EventReceivedPosition:            "received_position",
	EventError:                       "error",
	EventToolEngaged:                 "tool_engaged",
	EventToolDisengaged:              "tool_disengaged",
	EventEdgeDetectSensorActivated:   "edge_detect_sensor_activated",
	EventEdgeDetectSensorDeactivated: "edge_detect_sensor_deactivated",
	EventDefectSensorActivated:       "defect_sensor_activated",
}

// String returns the symbolic name of the code, or "event(<n>)" for codes
// outside the known set.
func (c EventCode) String() string {
	if name, ok := eventCodeNames[c]; ok {
		return name
	}
	return "event(" + strconv.Itoa(int(c)) + ")"
}

// Known reports whether the code belongs to the fixed enumeration.
func (c EventCode) Known() bool {
	_, ok := eventCodeNames[c]
	return ok
}

// ErrorCode is the argument of an EventError line.
type ErrorCode int

const (
	ErrorSuccess                    ErrorCode = 100
	ErrorBeyondMinLimit             ErrorCode = 101
	ErrorBeyondMaxLimit             ErrorCode = 102
	ErrorUnexpectedObstruction      ErrorCode = 103
	ErrorUnexpectedMovement         ErrorCode = 104
	ErrorInvalidDestination         ErrorCode = 105
	ErrorInvalidCommand             ErrorCode = 106
	ErrorInvalidSetting             ErrorCode = 107
	ErrorMovementBusy               ErrorCode = 108
	ErrorUnderVoltage               ErrorCode = 109
	ErrorOverVoltage                ErrorCode = 110
	ErrorOverTemperature            ErrorCode = 111
	ErrorOverTemperatureRate        ErrorCode = 112
	ErrorOverCurrent                ErrorCode = 113
	ErrorStopped                    ErrorCode = 114
	ErrorMovedWhileToolCycling      ErrorCode = 115
	ErrorToolCycledWhileMoving      ErrorCode = 116
	ErrorInvalidCalibrationPosition ErrorCode = 117
)

var errorCodeText = map[ErrorCode]string{
	ErrorSuccess:                    "success",
	ErrorBeyondMinLimit:             "beyond minimum limit",
	ErrorBeyondMaxLimit:             "beyond maximum limit",
	ErrorUnexpectedObstruction:      "unexpected obstruction",
	ErrorUnexpectedMovement:         "unexpected movement",
	ErrorInvalidDestination:         "invalid destination",
	ErrorInvalidCommand:             "invalid command",
	ErrorInvalidSetting:             "invalid setting",
	ErrorMovementBusy:               "movement busy",
	ErrorUnderVoltage:               "under voltage",
	ErrorOverVoltage:                "over voltage",
	ErrorOverTemperature:            "over temperature",
	ErrorOverTemperatureRate:        "over temperature rate",
	ErrorOverCurrent:                "over current",
	ErrorStopped:                    "stopped",
	ErrorMovedWhileToolCycling:      "moved while tool cycling",
	ErrorToolCycledWhileMoving:      "tool cycled while moving",
	ErrorInvalidCalibrationPosition: "invalid calibration position",
}

// String returns a human readable description of the error code.
func (c ErrorCode) String() string {
	if text, ok := errorCodeText[c]; ok {
		return text
	}
	return "unknown error " + strconv.Itoa(int(c))
}

// Known reports whether the code belongs to the fixed enumeration.
func (c ErrorCode) Known() bool {
	_, ok := errorCodeText[c]
	return ok
}

// SensorKind names the sensor that changed state in a SensorChanged event.
type SensorKind int

const (
	SensorEdgeDetect SensorKind = iota
	SensorDefect
)

// String returns the sensor name.
func (k SensorKind) String() string {
	switch k {
	case SensorEdgeDetect:
		return "edge detect"
	case SensorDefect:
		return "defect"
	default:
		return "sensor(" + strconv.Itoa(int(k)) + ")"
	}
}
