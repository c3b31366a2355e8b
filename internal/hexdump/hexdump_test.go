package hexdump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiEmpty(t *testing.T) {
	require.Equal(t, "", Multi(nil, DefaultRowSize))
	require.Equal(t, "", Multi([]byte{}, DefaultRowSize))
}

func TestMultiSingleRow(t *testing.T) {
	got := Multi([]byte{0x50, 0x52, 0x49}, DefaultRowSize)
	require.Equal(t, "50 52 49", got)
}

func TestMultiWraps(t *testing.T) {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte(i)
	}
	got := Multi(b, 16)
	want := "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f\n10 11 12 13"
	require.Equal(t, want, got)
}

func TestSingleRow(t *testing.T) {
	require.Equal(t, "", SingleRow(nil))
	require.Equal(t, "ff 00", SingleRow([]byte{0xff, 0x00}))
}

func TestRoundTrip(t *testing.T) {
	// Parsing the multi-row hexdump of any byte string recovers it.
	b := []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n")
	dump := Multi(b, DefaultRowSize)

	var recovered []byte
	for _, line := range splitLines(dump) {
		for _, pair := range splitFields(line) {
			var hi, lo byte
			hi = unhex(pair[0])
			lo = unhex(pair[1])
			recovered = append(recovered, hi<<4|lo)
		}
	}
	require.Equal(t, b, recovered)
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	default:
		return c - 'a' + 10
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func splitFields(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	return out
}
