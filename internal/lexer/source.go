package lexer

import (
	"fmt"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeSource normalizes raw source bytes to a UTF-8 string, detecting a
// byte-order mark the way the teacher's file loader does (UTF-8, UTF-16
// LE/BE); files without a BOM are assumed UTF-8 already. Hosts read files
// with this before handing text to New, so the lexer itself only ever
// sees UTF-8.
func DecodeSource(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, xunicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, xunicode.BigEndian)
	case utf8.Valid(data):
		return string(data), nil
	default:
		return "", fmt.Errorf("source is not valid UTF-8 and carries no recognized BOM")
	}
}

func decodeUTF16(data []byte, endian xunicode.Endianness) (string, error) {
	decoder := xunicode.UTF16(endian, xunicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16 source: %w", err)
	}
	return string(out), nil
}
