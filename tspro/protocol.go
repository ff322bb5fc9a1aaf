// Package tspro implements the line-based text protocol spoken by the
// TigerStop Pro controller over a single TCP connection.
//
// Protocol Format:
//
//	Request (client -> controller):  <verb>|<field>|<field>...\n
//	Event (controller -> client):    <event_id>|<arg>|<arg>...\n
//
// Example Session:
//
//	CLI: move_to|12.5
//	CTL: 0
//	CLI: get_position
//	CTL: 2|12.5
//	CLI: get_setting|minlim
//	CTL: 1|minlim|0.25
package tspro

// Protocol constants.
const (
	// Port is the fixed TCP port the controller listens on.
	Port = 7071

	// Delimiter separates the fields of a line in both directions.
	Delimiter = "|"

	// LineTerminator ends every line in both directions.
	LineTerminator = "\n"

	// Network is the transport used to reach the controller.
	Network = "tcp"
)

// Verb is the leading token of an outbound request line.
type Verb string

// Request verbs understood by the controller.
const (
	VerbMoveTo      Verb = "move_to"
	VerbGetSetting  Verb = "get_setting"
	VerbGetPosition Verb = "get_position"
	VerbStop        Verb = "stop"
	VerbCalibrate   Verb = "calibrate"
	VerbHome        Verb = "home"
	VerbCycleTool   Verb = "cycle_tool"
)

// SettingName identifies a controller setting for get_setting requests.
type SettingName string

const (
	// SettingMinimumLimit is the lowest position the controller may travel to.
	SettingMinimumLimit SettingName = "minlim"
	// SettingMaximumLimit is the highest position the controller may travel to.
	SettingMaximumLimit SettingName = "maxlim"
)

// SettingNames returns all setting names known to this package, in a stable order.
func SettingNames() []SettingName {
	return []SettingName{SettingMinimumLimit, SettingMaximumLimit}
}

// Known reports whether the setting name is one this package knows about.
// The controller may accept others; Known is only a convenience for callers
// that want to validate user input.
func (s SettingName) Known() bool {
	switch s {
	case SettingMinimumLimit, SettingMaximumLimit:
		return true
	default:
		return false
	}
}
