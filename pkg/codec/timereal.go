package codec

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeReal is a UInt32 count of seconds since 1970-01-01T00:00:00Z, the
// regulation's standard timestamp encoding (Appendix 1 2.122).
type TimeReal uint32

// sentinel values the regulation reserves to mean "no timestamp"
const (
	TimeRealZero = TimeReal(0)
	TimeRealNone = TimeReal(0xFFFFFFFF)
)

// DecodeTimeReal reads a TimeReal from the first 4 bytes of data.
func DecodeTimeReal(data []byte) (TimeReal, error) {
	v, err := UInt32(data)
	if err != nil {
		return 0, err
	}
	return TimeReal(v), nil
}

// IsSentinel reports whether this value marks an absent/unused timestamp.
func (t TimeReal) IsSentinel() bool {
	return t == TimeRealZero || t == TimeRealNone
}

// Time converts to an absolute UTC time.Time. Sentinel encodings are
// converted like any other value (0 gives 1970-01-01, 0xFFFFFFFF a date in
// 2106); callers that care should check IsSentinel first.
func (t TimeReal) Time() time.Time {
	return time.Unix(int64(uint32(t)), 0).UTC()
}

func (t TimeReal) MarshalJSON() ([]byte, error) {
	if t.IsSentinel() {
		return json.Marshal(nil)
	}
	return json.Marshal(t.Time().Format(time.RFC3339))
}

func (t TimeReal) String() string {
	if t.IsSentinel() {
		return "n/a"
	}
	return t.Time().Format(time.RFC3339)
}

// Encode is the inverse of DecodeTimeReal, used by the round-trip property
// tests in §8 of the specification.
func (t TimeReal) Encode() []byte {
	return []byte{
		byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t),
	}
}

var _ fmt.Stringer = TimeReal(0)
