package h2frame

import (
	"fmt"

	"golang.org/x/net/http2/hpack"

	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

// DefaultHPACKTableSize is the dynamic table size a fresh per-connection
// HPACK decoder starts with, matching the HTTP/2 default.
const DefaultHPACKTableSize = 4096

// NewHPACKDecoder returns a decoder sized to DefaultHPACKTableSize. The
// caller must allocate exactly one of these per (connection, direction)
// and never share it across goroutines: the dynamic table it carries
// belongs to a single compression stream.
func NewHPACKDecoder() *hpack.Decoder {
	return hpack.NewDecoder(DefaultHPACKTableSize, nil)
}

// NewHeadersHandler builds the HEADERS payload handler bound to dec. dec
// carries the dynamic table across calls, so the same *hpack.Decoder (and
// therefore the same Handler) must be reused for every HEADERS frame seen
// in one direction of one connection.
func NewHeadersHandler(dec *hpack.Decoder) Handler {
	return func(payload []byte, flags uint8) (string, error) {
		if flags&uint8(FlagPadded) != 0 || flags&uint8(FlagPriority) != 0 {
			return "", newParseError(ErrNotImplemented, Headers, "PADDED and PRIORITY headers framing is not implemented")
		}

		var fields []hpack.HeaderField
		dec.SetEmitFunc(func(f hpack.HeaderField) { fields = append(fields, f) })
		if _, err := dec.Write(payload); err != nil {
			return "", newParseError(ErrInvalidLength, Headers, err.Error())
		}

		out := "Headers =\n"
		for _, f := range fields {
			out += fmt.Sprintf("   %s -> %s\n", QuoteBytes([]byte(f.Name)), QuoteBytes([]byte(f.Value)))
		}
		out += "Hexdump (Compressed Headers) =\n"
		out += hexdump.Indent(hexdump.Multi(payload, hexdump.DefaultRowSize), "   ")
		return out, nil
	}
}
