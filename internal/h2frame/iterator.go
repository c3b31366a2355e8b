package h2frame

import "fmt"

// Iterator consumes a byte buffer representing the tail of one TCP read
// (after any preface/proxy-protocol line has already been stripped) and
// yields one description block per HTTP/2 frame, in order, until the
// buffer is exhausted. See Next.
type Iterator struct {
	registry       *Registry
	headersHandler Handler
}

// NewIterator builds an Iterator bound to registry. headersHandler is
// used for HEADERS frames in place of the registry's unbound placeholder
// slot; it must be the HPACK handler for this connection's direction
// (see NewHeadersHandler).
func NewIterator(registry *Registry, headersHandler Handler) *Iterator {
	return &Iterator{registry: registry, headersHandler: headersHandler}
}

// Next decodes the single frame at the front of buf and returns its
// description block along with the unconsumed remainder. Callers should
// loop `for len(buf) > 0 { block, buf, err = it.Next(buf); ... }`.
//
// A successful call always consumes exactly 9+Length bytes. On error, buf is returned unmodified and the caller must stop:
// the rest of the buffer cannot be reliably resynchronised.
func (it *Iterator) Next(buf []byte) (block string, rest []byte, err error) {
	if len(buf) < HeaderSize {
		return "", buf, newParseError(ErrShortHeader, 0, fmt.Sprintf("%d octets remain", len(buf)))
	}

	h, err := ParseHeader(buf[:HeaderSize])
	if err != nil {
		return "", buf, err
	}

	flagsStr, err := RenderFlags(h.Type, h.Flags)
	if err != nil {
		return "", buf, err
	}

	total := uint64(HeaderSize) + uint64(h.Length)
	if uint64(len(buf)) < total {
		return "", buf, newParseError(ErrShortPayload, h.Type, fmt.Sprintf("declared length %d, have %d", h.Length, len(buf)-HeaderSize))
	}
	payload := buf[HeaderSize:total]

	handler, isHeadersPlaceholder := it.registry.handlerFor(h.Type)
	if isHeadersPlaceholder && it.headersHandler != nil {
		handler = it.headersHandler
	}
	handlerOut, err := handler(payload, h.Flags)
	if err != nil {
		return "", buf, err
	}

	name, _ := Name(h.Type)
	block = fmt.Sprintf("Length = %d\nType = %s (0x%x)\nFlags = %s\nStreamID = %d", h.Length, name, uint8(h.Type), flagsStr, h.Stream)
	if handlerOut != "" {
		block += "\n" + handlerOut
	}

	return block, buf[total:], nil
}
