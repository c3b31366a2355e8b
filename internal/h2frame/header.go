package h2frame

import "fmt"

// HeaderSize is the fixed octet length of the generic HTTP/2 frame header.
const HeaderSize = 9

// ReservedStreamBit is the high bit of the 32-bit stream identifier field,
// reserved by the protocol and left unmasked here: this is an
// observational tool, not a conformance checker.
const ReservedStreamBit = 0x80000000

// Header is the decoded form of the 9-octet generic frame header.
type Header struct {
	Length uint32
	Type   Type
	Flags  uint8
	Stream uint32
}

// ParseHeader decodes the 9-octet generic frame header from b, which must
// be exactly HeaderSize bytes (callers are expected to have already
// checked length; see Iterator). Unknown frame types are reported via
// ErrUnknownType wrapped in a *ParseError.
func ParseHeader(b []byte) (Header, error) {
	_ = b[8] // bounds check once

	h := Header{
		Length: uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]),
		Type:   Type(b[3]),
		Flags:  b[4],
		Stream: uint32(b[5])<<24 | uint32(b[6])<<16 | uint32(b[7])<<8 | uint32(b[8]),
	}
	if _, ok := Name(h.Type); !ok {
		return h, newParseError(ErrUnknownType, h.Type, "")
	}
	return h, nil
}

// RenderFlags renders the set flag bits of flags for the given frame type
// in ascending numeric order as "NAME:0xVAL" terms joined by " | ". An
// empty set of recognised, set bits renders as the literal "UNSET". Any
// bit left set after accounting for every name in the per-type registry
// is fatal: ErrUnaccountedFlags wrapped in a *ParseError.
func RenderFlags(t Type, flags uint8) (string, error) {
	// flagRegistry entries are declared in ascending bit order already.
	remaining := flags
	var terms []string
	for _, d := range flagRegistry[t] {
		if flags&uint8(d.bit) != 0 {
			terms = append(terms, fmt.Sprintf("%s:0x%x", d.name, uint8(d.bit)))
			remaining &^= uint8(d.bit)
		}
	}
	if remaining != 0 {
		return "", newParseError(ErrUnaccountedFlags, t, fmt.Sprintf("leftover bits 0x%x", remaining))
	}
	if len(terms) == 0 {
		return "UNSET", nil
	}
	out := terms[0]
	for _, t := range terms[1:] {
		out += " | " + t
	}
	return out, nil
}

func hexByte(b uint8) string {
	const hexDigits = "0123456789abcdef"
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0f]})
}
