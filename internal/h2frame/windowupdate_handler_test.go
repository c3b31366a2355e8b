package h2frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowUpdateHandlerNoReservedBit(t *testing.T) {
	// payload 00 00 00 FF -> reserved 0, increment 255
	out, err := WindowUpdateHandler([]byte{0x00, 0x00, 0x00, 0xff}, 0)
	require.NoError(t, err)
	require.Contains(t, out, "Reserved = 0")
	require.Contains(t, out, "Window Size Increment = 255")
}

func TestWindowUpdateHandlerReservedBit(t *testing.T) {
	// payload 80 00 00 01 -> reserved 1, increment 1
	out, err := WindowUpdateHandler([]byte{0x80, 0x00, 0x00, 0x01}, 0)
	require.NoError(t, err)
	require.Contains(t, out, "Reserved = 1")
	require.Contains(t, out, "Window Size Increment = 1")
}

func TestWindowUpdateHandlerBadLength(t *testing.T) {
	_, err := WindowUpdateHandler([]byte{0x00, 0x00, 0x00}, 0)
	require.Error(t, err)
}
