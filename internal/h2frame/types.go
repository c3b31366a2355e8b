// Package h2frame implements the closed HTTP/2 frame-type registry, the
// 9-octet frame header codec, and the pluggable per-type payload handlers
// that turn a frame payload into a human-readable block.
//
// Frame decoding here never rewrites or re-encodes anything it reads; it
// only describes. See the per-type Handler implementations for the
// rendering rules.
package h2frame

// Type identifies one of the closed set of HTTP/2 frame types
// (http://httpwg.org/specs/rfc7540.html#FrameTypes).
type Type uint8

// The closed set of HTTP/2 frame types. No other octet value is valid.
const (
	Data         Type = 0x0
	Headers      Type = 0x1
	Priority     Type = 0x2
	RstStream    Type = 0x3
	Settings     Type = 0x4
	PushPromise  Type = 0x5
	Ping         Type = 0x6
	GoAway       Type = 0x7
	WindowUpdate Type = 0x8
	Continuation Type = 0x9
)

// typeNames is the static Type -> name mapping. The zero value of Type
// (Data) is always present, so a lookup miss is detected via the ok form.
var typeNames = map[Type]string{
	Data:         "DATA",
	Headers:      "HEADERS",
	Priority:     "PRIORITY",
	RstStream:    "RST_STREAM",
	Settings:     "SETTINGS",
	PushPromise:  "PUSH_PROMISE",
	Ping:         "PING",
	GoAway:       "GOAWAY",
	WindowUpdate: "WINDOW_UPDATE",
	Continuation: "CONTINUATION",
}

// Name returns the registry name for t and whether t is a known type.
func Name(t Type) (string, bool) {
	name, ok := typeNames[t]
	return name, ok
}

// Flag is a single per-type flag bit.
type Flag uint8

// Flag bit values. Meaning is keyed by frame Type; the same bit value
// means different things (or nothing) depending on the type.
const (
	FlagAck        Flag = 0x1
	FlagEndStream  Flag = 0x1
	FlagEndHeaders Flag = 0x4
	FlagPadded     Flag = 0x8
	FlagPriority   Flag = 0x20
)

type flagName struct {
	bit  Flag
	name string
}

// flagRegistry lists, per type, the flag bits in ascending numeric order
// together with their names. Types absent from this map have no defined
// flags.
var flagRegistry = map[Type][]flagName{
	Data:         {{FlagEndStream, "END_STREAM"}, {FlagPadded, "PADDED"}},
	Headers:      {{FlagEndStream, "END_STREAM"}, {FlagEndHeaders, "END_HEADERS"}, {FlagPadded, "PADDED"}, {FlagPriority, "PRIORITY"}},
	Settings:     {{FlagAck, "ACK"}},
	PushPromise:  {{FlagEndHeaders, "END_HEADERS"}, {FlagPadded, "PADDED"}},
	Ping:         {{FlagAck, "ACK"}},
	Continuation: {{FlagEndHeaders, "END_HEADERS"}},
}

// SettingID identifies an HTTP/2 SETTINGS parameter
// (https://httpwg.org/specs/rfc7540.html#SettingValues), extensible via
// RegisterSetting.
type SettingID uint16

// The standard SETTINGS identifiers, plus SETTINGS_ENABLE_CONNECT_PROTOCOL
// from RFC 8441.
const (
	SettingHeaderTableSize      SettingID = 0x1
	SettingEnablePush           SettingID = 0x2
	SettingMaxConcurrentStreams SettingID = 0x3
	SettingInitialWindowSize    SettingID = 0x4
	SettingMaxFrameSize         SettingID = 0x5
	SettingMaxHeaderListSize    SettingID = 0x6
	SettingEnableConnectProto   SettingID = 0x8
)

// defaultSettingNames seeds a fresh Registry's extensible setting-name
// table. Unlike typeNames and flagRegistry, this table is open: extensions
// add entries through Registry.RegisterSetting.
func defaultSettingNames() map[SettingID]string {
	return map[SettingID]string{
		SettingHeaderTableSize:      "SETTINGS_HEADER_TABLE_SIZE",
		SettingEnablePush:           "SETTINGS_ENABLE_PUSH",
		SettingMaxConcurrentStreams: "SETTINGS_MAX_CONCURRENT_STREAMS",
		SettingInitialWindowSize:    "SETTINGS_INITIAL_WINDOW_SIZE",
		SettingMaxFrameSize:         "SETTINGS_MAX_FRAME_SIZE",
		SettingMaxHeaderListSize:    "SETTINGS_MAX_HEADER_LIST_SIZE",
		SettingEnableConnectProto:   "SETTINGS_ENABLE_CONNECT_PROTOCOL",
	}
}
