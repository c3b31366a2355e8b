// Package hexdump renders raw bytes as lowercase hex text, either spread
// across fixed-width rows or collapsed onto a single line.
package hexdump

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// DefaultRowSize is the row size callers pass to Multi for the standard
// 16-bytes-per-row layout; Multi itself always takes the row size
// explicitly.
const DefaultRowSize = 16

// SingleRow renders b as one space-separated line of lowercase hex pairs.
// An empty b yields the empty string.
func SingleRow(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeRow(buf, b)
	return buf.String()
}

// Multi groups b into rows of rowSize bytes, joined with newlines. Bytes
// within a row are two lowercase hex digits separated by single spaces.
// There is no index gutter and no printable column. An empty b yields the
// empty string. If rowSize <= 0, the whole input is rendered on one row
// (equivalent to SingleRow).
func Multi(b []byte, rowSize int) string {
	if len(b) == 0 {
		return ""
	}
	if rowSize <= 0 {
		return SingleRow(b)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for start := 0; start < len(b); start += rowSize {
		end := start + rowSize
		if end > len(b) {
			end = len(b)
		}
		if start != 0 {
			buf.WriteByte('\n')
		}
		writeRow(buf, b[start:end])
	}
	return buf.String()
}

func writeRow(buf *bytebufferpool.ByteBuffer, row []byte) {
	for i, c := range row {
		if i != 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte(lowerHex[c>>4])
		buf.WriteByte(lowerHex[c&0x0f])
	}
}

const lowerHex = "0123456789abcdef"

// Indent prefixes every line of s with the given indentation string. Used
// by payload handlers to nest a hexdump block under a banner line.
func Indent(s, indent string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
