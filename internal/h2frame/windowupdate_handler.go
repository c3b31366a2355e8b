package h2frame

import (
	"fmt"

	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

const windowUpdatePayloadSize = 4

// WindowUpdateHandler decodes the 4-octet WINDOW_UPDATE payload into its
// reserved bit and 31-bit increment.
func WindowUpdateHandler(payload []byte, _ uint8) (string, error) {
	if len(payload) != windowUpdatePayloadSize {
		return "", newParseError(ErrInvalidLength, WindowUpdate, fmt.Sprintf("length %d != %d", len(payload), windowUpdatePayloadSize))
	}
	raw := uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3])
	reserved := raw >> 31
	increment := raw &^ ReservedStreamBit

	return fmt.Sprintf("Reserved = %d, Window Size Increment = %d, Hexdump = %s", reserved, increment, hexdump.SingleRow(payload)), nil
}
