// Package describe assembles the describer façade: given the
// bytes of a single TCP read, it renders the optional proxy-protocol
// line, the optional connection preface, and every HTTP/2 frame found
// after them into one bracketed, human-readable block.
package describe

import (
	"strings"

	"github.com/domsolutions/tcp-h2-describe/internal/h2frame"
	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

// Preface is the fixed 24-octet HTTP/2 client connection preface.
const Preface = "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"

// HeaderRule and FooterRule bracket every block and every section within
// a block, respectively.
var (
	HeaderRule = strings.Repeat("=", 60)
	FooterRule = strings.Repeat("-", 40)
)

// Describer renders TCP reads from one direction of one connection. It
// owns the HPACK decoder for that direction: construct
// one Describer per (connection, direction) and never share it across
// goroutines or reuse it for the other direction.
type Describer struct {
	iter *h2frame.Iterator
}

// New builds a Describer that looks up payload handlers in registry
// (shared process-wide) but owns a private HPACK decoder for HEADERS
// frames. The registry's HEADERS slot cannot be registered over, so
// HEADERS frames always go through this decoder.
func New(registry *h2frame.Registry) *Describer {
	headersHandler := h2frame.NewHeadersHandler(h2frame.NewHPACKDecoder())
	return &Describer{
		iter: h2frame.NewIterator(registry, headersHandler),
	}
}

// Describe renders one TCP read. label identifies the connection and
// direction (e.g. "client(1.2.3.4:5)->proxy->server(localhost:80)").
// expectPreface is true only for the very first client->server read of a
// connection. proxyLine, if non-nil, is the raw PROXY protocol v1 line
// (including its trailing CRLF) detected ahead of this read.
func (d *Describer) Describe(buf []byte, label string, expectPreface bool, proxyLine []byte) (string, error) {
	var b strings.Builder

	b.WriteString(HeaderRule)
	b.WriteByte('\n')
	b.WriteString(label)
	b.WriteString("\n\n")

	if proxyLine != nil {
		b.WriteString("Proxy Protocol Line = ")
		b.WriteString(h2frame.QuoteBytes(proxyLine))
		b.WriteString("\nHexdump (Proxy Protocol Line) =\n")
		b.WriteString(hexdump.Indent(hexdump.Multi(proxyLine, hexdump.DefaultRowSize), "   "))
		b.WriteByte('\n')
		b.WriteString(FooterRule)
		b.WriteByte('\n')
	}

	if expectPreface {
		if !strings.HasPrefix(string(buf), Preface) {
			return "", h2frame.ErrMissingPreface
		}
		b.WriteString(prefaceBlock())
		b.WriteByte('\n')
		b.WriteString(FooterRule)
		b.WriteByte('\n')
		buf = buf[len(Preface):]
	}

	for len(buf) > 0 {
		var (
			block string
			err   error
		)
		block, buf, err = d.iter.Next(buf)
		if err != nil {
			return "", err
		}
		b.WriteString(block)
		b.WriteByte('\n')
		b.WriteString(FooterRule)
		b.WriteByte('\n')
	}

	return b.String(), nil
}

func prefaceBlock() string {
	pf := []byte(Preface)
	out := "Client Connection Preface = " + h2frame.QuoteBytes(pf) + "\n"
	out += "Hexdump (Client Connection Preface) =\n"
	out += hexdump.Indent(hexdump.Multi(pf, hexdump.DefaultRowSize), "   ")
	return out
}
