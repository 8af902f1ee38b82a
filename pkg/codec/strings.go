package codec

import (
	"log"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// trimWS is the set of whitespace/padding runes the regulation's fixed-width
// string fields are stripped of: ASCII whitespace plus the 0x00/0xFF fill
// bytes producers pad with.
const trimWS = "\t\n\v\f\r \x85\xA0\x00\xFF"

// TrimPadding trims space, 0x00 and 0xFF padding off a raw Latin-1 string.
func TrimPadding(s string) string {
	return strings.Trim(s, trimWS)
}

// hasContent reports whether b contains at least one byte that is not 0x00
// or 0xFF — an all-fill buffer decodes to the empty string rather than to a
// string of replacement characters.
func hasContent(b []byte) bool {
	for _, v := range b {
		if v > 0 && v < 255 {
			return true
		}
	}
	return false
}

// RawString decodes a plain (no code-page byte) fixed-width field: Latin-1,
// padding-stripped. Used for fields the regulation defines without an
// explicit CodePage prefix (e.g. plate numbers, card numbers).
func RawString(b []byte) string {
	if !hasContent(b) {
		return ""
	}
	return TrimPadding(string(b))
}

// codePages maps the regulation's Appendix 1 CodePage byte to an ISO-8859 /
// KOI8 charmap, mirroring the teacher's decodeWithCodePage table exactly.
var codePages = map[byte]*charmap.Charmap{
	1:  charmap.ISO8859_1,
	2:  charmap.ISO8859_2,
	3:  charmap.ISO8859_3,
	5:  charmap.ISO8859_5,
	7:  charmap.ISO8859_7,
	9:  charmap.ISO8859_9,
	13: charmap.ISO8859_13,
	15: charmap.ISO8859_15,
	16: charmap.ISO8859_16,
	80: charmap.KOI8R,
	85: charmap.KOI8U,
}

// CodePageString decodes a field consisting of a leading CodePage byte
// followed by code-page-encoded text (Appendix 1 2.2, "Address" and several
// name fields), padding-stripped.
func CodePageString(codePage byte, data []byte) (string, error) {
	if !hasContent(data) {
		return "", nil
	}
	cmap, ok := codePages[codePage]
	if !ok {
		log.Printf("warn: unsupported code page %v, falling back to ISO-8859-1", codePage)
		cmap = charmap.ISO8859_1
	}
	decoded, err := cmap.NewDecoder().String(string(data))
	if err != nil {
		log.Printf("error: could not decode code page string: %v", err)
		return "", err
	}
	return TrimPadding(decoded), nil
}
