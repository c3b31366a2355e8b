package describe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domsolutions/tcp-h2-describe/internal/h2frame"
)

func settingsEntry(id uint16, value uint32) []byte {
	return []byte{
		byte(id >> 8), byte(id),
		byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value),
	}
}

// sixEntrySettingsPayload builds a 36-byte payload carrying the six
// standard parameters a client typically announces.
func sixEntrySettingsPayload(enablePush uint32) []byte {
	var p []byte
	p = append(p, settingsEntry(0x1, 4096)...)
	p = append(p, settingsEntry(0x2, enablePush)...)
	p = append(p, settingsEntry(0x4, 65535)...)
	p = append(p, settingsEntry(0x5, 16384)...)
	p = append(p, settingsEntry(0x3, 100)...)
	p = append(p, settingsEntry(0x6, 65536)...)
	return p
}

func settingsFrameHeader(length uint32) []byte {
	return []byte{
		byte(length >> 16), byte(length >> 8), byte(length),
		0x04, // SETTINGS
		0x00, // flags
		0x00, 0x00, 0x00, 0x00, // stream 0
	}
}

func TestDescribeInvalidPreface(t *testing.T) {
	d := New(h2frame.NewRegistry())
	_, err := d.Describe(nil, "client->server", true, nil)
	require.ErrorIs(t, err, h2frame.ErrMissingPreface)
}

func TestDescribeEmptyBufferNoPreface(t *testing.T) {
	d := New(h2frame.NewRegistry())
	out, err := d.Describe(nil, "client->server", false, nil)
	require.NoError(t, err)
	require.Equal(t, HeaderRule+"\nclient->server\n\n", out)
}

func TestDescribePrefaceAndTwoSettingsFrames(t *testing.T) {
	var buf []byte
	buf = append(buf, []byte(Preface)...)
	buf = append(buf, settingsFrameHeader(36)...)
	buf = append(buf, sixEntrySettingsPayload(1)...)
	buf = append(buf, settingsFrameHeader(6)...)
	buf = append(buf, settingsEntry(0x2, 0)...)

	d := New(h2frame.NewRegistry())
	out, err := d.Describe(buf, "client->server", true, nil)
	require.NoError(t, err)

	require.Contains(t, out, "Client Connection Preface =")
	require.Contains(t, out, "SETTINGS_HEADER_TABLE_SIZE:0x1 -> 4096")
	require.Contains(t, out, "SETTINGS_ENABLE_PUSH:0x2 -> 1")
	require.Contains(t, out, "SETTINGS_INITIAL_WINDOW_SIZE:0x4 -> 65535")
	require.Contains(t, out, "SETTINGS_MAX_FRAME_SIZE:0x5 -> 16384")
	require.Contains(t, out, "SETTINGS_MAX_CONCURRENT_STREAMS:0x3 -> 100")
	require.Contains(t, out, "SETTINGS_MAX_HEADER_LIST_SIZE:0x6 -> 65536")
	require.Contains(t, out, "SETTINGS_ENABLE_PUSH:0x2 -> 0")
}

func TestDescribeServerSideSettingsOnly(t *testing.T) {
	var buf []byte
	buf = append(buf, settingsFrameHeader(36)...)
	buf = append(buf, sixEntrySettingsPayload(0)...)

	d := New(h2frame.NewRegistry())
	out, err := d.Describe(buf, "server->client", false, nil)
	require.NoError(t, err)
	require.Contains(t, out, "SETTINGS_ENABLE_PUSH:0x2 -> 0")
	require.NotContains(t, out, "Client Connection Preface")
}

// The sum of 9+Length over all described frames equals the buffer size.
func TestAccountingProperty(t *testing.T) {
	var buf []byte
	buf = append(buf, settingsFrameHeader(36)...)
	buf = append(buf, sixEntrySettingsPayload(1)...)
	buf = append(buf, []byte{0x00, 0x00, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff}...)

	registry := h2frame.NewRegistry()
	it := h2frame.NewIterator(registry, nil)

	var consumed int
	rest := buf
	for len(rest) > 0 {
		_, next, err := it.Next(rest)
		require.NoError(t, err)
		consumed += len(rest) - len(next)
		rest = next
	}
	require.Equal(t, len(buf), consumed)
}

// With the preface gate on, the body after the preface is described
// identically to describing the same bytes with the gate off.
func TestPrefaceGateProperty(t *testing.T) {
	var body []byte
	body = append(body, settingsFrameHeader(36)...)
	body = append(body, sixEntrySettingsPayload(1)...)

	withPreface := append([]byte(Preface), body...)

	d1 := New(h2frame.NewRegistry())
	out1, err := d1.Describe(withPreface, "label", true, nil)
	require.NoError(t, err)

	d2 := New(h2frame.NewRegistry())
	out2, err := d2.Describe(body, "label", false, nil)
	require.NoError(t, err)

	require.Contains(t, out1, out2[len(HeaderRule)+len("label")+2:])
}

// Given fixed registries, Describe is a pure function of
// (buffer, label).
func TestDeterminismProperty(t *testing.T) {
	var buf []byte
	buf = append(buf, settingsFrameHeader(36)...)
	buf = append(buf, sixEntrySettingsPayload(1)...)

	registry := h2frame.NewRegistry()
	d1 := New(registry)
	d2 := New(registry)

	out1, err := d1.Describe(buf, "label", false, nil)
	require.NoError(t, err)
	out2, err := d2.Describe(buf, "label", false, nil)
	require.NoError(t, err)
	require.Equal(t, out1, out2)

	again, err := d1.Describe(buf, "label", false, nil)
	require.NoError(t, err)
	require.Equal(t, out1, again)
}

func TestDescribeProxyLineSection(t *testing.T) {
	line := []byte("PROXY TCP4 192.168.0.1 192.168.0.11 56324 443\r\n")
	d := New(h2frame.NewRegistry())
	out, err := d.Describe(nil, "client->server", false, line)
	require.NoError(t, err)
	require.Contains(t, out, "Proxy Protocol Line = ")
	require.Contains(t, out, `PROXY TCP4 192.168.0.1 192.168.0.11 56324 443\r\n`)
	require.Contains(t, out, "Hexdump (Proxy Protocol Line) =")
	require.Contains(t, out, FooterRule)
}

func TestDescribeShortHeader(t *testing.T) {
	d := New(h2frame.NewRegistry())
	_, err := d.Describe([]byte{1, 2, 3, 4, 5, 6, 7, 8}, "label", false, nil)
	require.ErrorIs(t, err, h2frame.ErrShortHeader)
}

func TestDescribeShortPayload(t *testing.T) {
	d := New(h2frame.NewRegistry())
	// declares length 10 but only 1 payload byte follows
	buf := []byte{0x00, 0x00, 0x0a, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	_, err := d.Describe(buf, "label", false, nil)
	require.ErrorIs(t, err, h2frame.ErrShortPayload)
}
