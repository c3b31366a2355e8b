package h2frame

import (
	"fmt"

	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

// settingsEntrySize is the fixed width of one SETTINGS parameter: a
// 2-octet identifier followed by a 4-octet value.
const settingsEntrySize = 6

// SettingsHandler builds the SETTINGS payload handler bound to r, so that
// identifier names reflect whatever has been registered via
// Registry.RegisterSetting at the time each frame is described.
func SettingsHandler(r *Registry) Handler {
	return func(payload []byte, _ uint8) (string, error) {
		if len(payload)%settingsEntrySize != 0 {
			return "", newParseError(ErrInvalidLength, Settings, fmt.Sprintf("length %d not a multiple of %d", len(payload), settingsEntrySize))
		}
		if len(payload) == 0 {
			return "", nil
		}

		out := "Settings =\n"
		for off := 0; off < len(payload); off += settingsEntrySize {
			entry := payload[off : off+settingsEntrySize]
			id := SettingID(uint16(entry[0])<<8 | uint16(entry[1]))
			value := uint32(entry[2])<<24 | uint32(entry[3])<<16 | uint32(entry[4])<<8 | uint32(entry[5])
			out += fmt.Sprintf("   %s:0x%x -> %d (%s | %s)\n", r.SettingName(id), uint16(id), value, hexdump.SingleRow(entry[:2]), hexdump.SingleRow(entry[2:]))
		}
		return out[:len(out)-1], nil
	}
}
