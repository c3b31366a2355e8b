package h2frame

// QuoteBytes renders b as a double-quoted Go string literal, byte by
// byte: printable ASCII is emitted verbatim, everything else (including
// non-UTF-8 bytes) is escaped. This is the "best-effort printable/quoted
// literal" rendering used by the default payload handler and the HEADERS
// handler's key/value lines, so that arbitrary, possibly non-ASCII wire
// bytes survive a round trip through terminal output.
func QuoteBytes(b []byte) string {
	out := make([]byte, 0, len(b)+2)
	out = append(out, '"')
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			out = append(out, '\\', c)
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c == '\t':
			out = append(out, '\\', 't')
		case c >= 0x20 && c < 0x7f:
			out = append(out, c)
		default:
			out = append(out, '\\', 'x')
			out = append(out, hexByte(c)...)
		}
	}
	out = append(out, '"')
	return string(out)
}
