package codec

import (
	"encoding/hex"
	"strconv"
)

// BCD is a packed binary-coded-decimal byte string. Appendix 1 2.7 of the
// regulation (DailyPresenceCounter, CardApprovalNumber digits, VU data block
// counters, Datef components) all use this encoding: each nibble is a decimal
// digit, and a trailing 'f' nibble is a fill value rather than a digit.
type BCD []byte

// Decode returns the decimal integer the BCD digits spell out.
func (b BCD) Decode() (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	s := hex.EncodeToString(b)
	if len(s) > 0 && s[len(s)-1] == 'f' {
		s = s[:len(s)-1]
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return int(n), err
}

// IsAllOnes reports whether every byte is 0xFF, the sentinel the regulation
// uses for "counter absent" (e.g. the VU data block counter in a short-form
// G1 CardVehiclesUsed record).
func (b BCD) IsAllOnes() bool {
	if len(b) == 0 {
		return false
	}
	for _, v := range b {
		if v != 0xFF {
			return false
		}
	}
	return true
}
