package h2frame

import (
	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

// DefaultHandler is the payload handler seeded for every frame type that
// does not ship a dedicated one: PRIORITY, RST_STREAM, PUSH_PROMISE,
// GOAWAY, CONTINUATION, and DATA (unless the gRPC DATA handler has been
// registered over it, see grpc_handler.go).
func DefaultHandler(payload []byte, _ uint8) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}
	out := "Frame Payload = " + QuoteBytes(payload) + "\n"
	out += "Hexdump (Frame Payload) =\n"
	out += hexdump.Indent(hexdump.Multi(payload, hexdump.DefaultRowSize), "   ")
	return out, nil
}
