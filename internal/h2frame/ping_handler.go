package h2frame

import (
	"fmt"

	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

const pingPayloadSize = 8

// PingHandler renders the 8-octet PING opaque data as a single-row
// hexdump.
func PingHandler(payload []byte, _ uint8) (string, error) {
	if len(payload) != pingPayloadSize {
		return "", newParseError(ErrInvalidLength, Ping, fmt.Sprintf("length %d != %d", len(payload), pingPayloadSize))
	}
	return "Opaque Data = " + hexdump.SingleRow(payload), nil
}
