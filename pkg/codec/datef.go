package codec

import (
	"encoding/json"
	"fmt"
	"time"
)

// Datef is a packed-BCD YYYYMMDD date, 4 bytes wide: year as 2 BCD bytes,
// month and day as 1 BCD byte each (Appendix 1 2.57).
type Datef struct {
	Year  BCD
	Month BCD
	Day   BCD
}

// DecodeDatef reads a Datef from the first 4 bytes of data.
func DecodeDatef(data []byte) (Datef, error) {
	if len(data) < 4 {
		return Datef{}, fmt.Errorf("codec: datef needs 4 bytes, have %d", len(data))
	}
	return Datef{
		Year:  BCD(data[0:2]),
		Month: BCD(data[2:3]),
		Day:   BCD(data[3:4]),
	}, nil
}

// Valid reports whether the decoded fields form a plausible calendar date:
// month in 1..12 and day in 1..31. This is the check decoders use to decide
// whether a CardHolderBirthDate field is really a Datef or (as some
// producers emit) a TimeReal instead — see Time.
func (d Datef) Valid() bool {
	y, errY := d.Year.Decode()
	m, errM := d.Month.Decode()
	day, errD := d.Day.Decode()
	if errY != nil || errM != nil || errD != nil {
		return false
	}
	return y > 0 && m >= 1 && m <= 12 && day >= 1 && day <= 31
}

// Time returns the date at midnight UTC. Callers must check Valid first.
func (d Datef) Time() time.Time {
	y, _ := d.Year.Decode()
	m, _ := d.Month.Decode()
	day, _ := d.Day.Decode()
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

func (d Datef) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.Time().Format("2006-01-02"))
}

// DecodeBirthDate implements the Datef-first, TimeReal-fallback policy
// §4.2 requires for CardHolderBirthDate: some vehicle-unit firmware emits a
// TimeReal in the field nominally typed Datef. It attempts Datef, validates
// it, and falls back to TimeReal when the Datef interpretation is
// implausible. It always returns the raw 4 bytes alongside the attempted
// interpretation, per the open question in spec.md §9.
func DecodeBirthDate(data []byte) (t time.Time, rawHex string, usedTimeReal bool, err error) {
	if len(data) < 4 {
		return time.Time{}, "", false, fmt.Errorf("codec: birth date needs 4 bytes, have %d", len(data))
	}
	raw := append([]byte(nil), data[:4]...)
	rawHex = fmt.Sprintf("%x", raw)
	df, err := DecodeDatef(raw)
	if err == nil && df.Valid() {
		return df.Time(), rawHex, false, nil
	}
	tr, err := DecodeTimeReal(raw)
	if err != nil {
		return time.Time{}, rawHex, false, err
	}
	if tr.IsSentinel() {
		return time.Time{}, rawHex, true, nil
	}
	return tr.Time(), rawHex, true, nil
}
