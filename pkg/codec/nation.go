package codec

import "fmt"

// Nation is the one-byte numeric nation code of Appendix 1 2.101.
type Nation byte

// nationNames is the Annex 1B numeric-to-ISO/common nation table.
var nationNames = map[Nation]string{
	0x00: "no information available",
	0x01: "A", 0x02: "AL", 0x03: "AND", 0x04: "ARM", 0x05: "AZ", 0x06: "B", 0x07: "BG",
	0x08: "BIH", 0x09: "BY", 0x0A: "CH", 0x0B: "CY", 0x0C: "CZ", 0x0D: "D", 0x0E: "DK",
	0x0F: "E", 0x10: "EST", 0x11: "F", 0x12: "FIN", 0x13: "FL", 0x14: "FR", 0x15: "UK",
	0x16: "GE", 0x17: "GR", 0x18: "H", 0x19: "HR", 0x1A: "I", 0x1B: "IRL", 0x1C: "IS",
	0x1D: "KZ", 0x1E: "L", 0x1F: "LT", 0x20: "LV", 0x21: "M", 0x22: "MC", 0x23: "MD",
	0x24: "MK", 0x25: "N", 0x26: "NL", 0x27: "P", 0x28: "PL", 0x29: "RO", 0x2A: "RSM",
	0x2B: "RUS", 0x2C: "S", 0x2D: "SK", 0x2E: "SLO", 0x2F: "TM", 0x30: "TR", 0x31: "UA",
	0x32: "V", 0x33: "YU", 0x34: "MNE", 0x35: "SRB", 0xFD: "EC", 0xFE: "EUR", 0xFF: "WLD",
}

// String returns the ISO/common nation code, or "Unknown(0xNN)" for codes
// the regulation has not assigned (future amendments, or a malformed file).
func (n Nation) String() string {
	if name, ok := nationNames[n]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", byte(n))
}

func (n Nation) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}
