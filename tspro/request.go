package tspro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is an outbound message: a verb followed by zero or more fields.
// Use the constructor functions (NewMoveToRequest, NewStopRequest, etc.)
// to create Request instances.
type Request struct {
	Verb   Verb
	Fields []any
}

// Request constructors - these provide a clean API for creating requests.

// NewMoveToRequest creates a request to move to the given position.
func NewMoveToRequest(position float64) Request {
	return Request{Verb: VerbMoveTo, Fields: []any{position}}
}

// NewStopRequest creates a request to stop all movement.
func NewStopRequest() Request {
	return Request{Verb: VerbStop}
}

// NewGetPositionRequest creates a request for the current position.
func NewGetPositionRequest() Request {
	return Request{Verb: VerbGetPosition}
}

// NewCalibrateRequest creates a request to calibrate the controller so that
// its current location reads as the given position.
func NewCalibrateRequest(position float64) Request {
	return Request{Verb: VerbCalibrate, Fields: []any{position}}
}

// NewHomeRequest creates a request to run the home routine, which finds an
// initial reference point for accurate positioning.
func NewHomeRequest() Request {
	return Request{Verb: VerbHome}
}

// NewGetSettingRequest creates a request for the value of a setting.
func NewGetSettingRequest(name SettingName) Request {
	return Request{Verb: VerbGetSetting, Fields: []any{name}}
}

// NewCycleToolRequest creates a request to cycle the tool once.
func NewCycleToolRequest() Request {
	return Request{Verb: VerbCycleTool}
}

// Encode returns the request as a complete wire line, newline included.
func (r Request) Encode() ([]byte, error) {
	fields := make([]any, 0, len(r.Fields)+1)
	fields = append(fields, r.Verb)
	fields = append(fields, r.Fields...)
	return FormatMessage(fields...)
}

// Format returns the request line without the terminator. Fields that
// would fail validation are rendered anyway; use Encode before sending.
func (r Request) Format() string {
	parts := make([]string, 0, len(r.Fields)+1)
	parts = append(parts, string(r.Verb))
	for _, f := range r.Fields {
		parts = append(parts, fieldText(f))
	}
	return strings.Join(parts, Delimiter)
}

// FormatMessage converts every field to text, joins them with Delimiter and
// appends LineTerminator. It is the single formatting primitive behind every
// outbound request.
//
//	FormatMessage("move_to", 12.5) // "move_to|12.5\n"
//	FormatMessage("stop")          // "stop\n"
func FormatMessage(fields ...any) ([]byte, error) {
	var b strings.Builder
	for i, f := range fields {
		text, err := formatField(f)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteString(Delimiter)
		}
		b.WriteString(text)
	}
	b.WriteString(LineTerminator)
	return []byte(b.String()), nil
}

// formatField renders one field and rejects values that cannot be sent.
func formatField(f any) (string, error) {
	switch v := f.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: %v", ErrInvalidPosition, v)
		}
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return "", fmt.Errorf("%w: %v", ErrInvalidPosition, v)
		}
	}

	text := fieldText(f)
	if strings.ContainsAny(text, Delimiter+"\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidField, text)
	}
	return text, nil
}

// fieldText is the textual representation of a field.
func fieldText(f any) string {
	switch v := f.(type) {
	case string:
		return v
	case Verb:
		return string(v)
	case SettingName:
		return string(v)
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	case EventCode:
		return strconv.Itoa(int(v))
	case ErrorCode:
		return strconv.Itoa(int(v))
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat writes v with the fewest digits that read back exactly. A
// decimal exponent from -4 through 15 is written in positional form and
// always carries a fractional part, so 100 is "100.0". Anything else uses
// exponent form with at least two exponent digits: "1e+16", "1e-05".
func formatFloat(v float64, bitSize int) string {
	sci := strconv.FormatFloat(v, 'e', -1, bitSize)
	exp, err := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	text := strconv.FormatFloat(v, 'f', -1, bitSize)
	if !strings.ContainsRune(text, '.') {
		text += ".0"
	}
	return text
}
