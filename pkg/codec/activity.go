package codec

import "encoding/binary"

// ActivityKind is the driver status encoded in bits 12-11 of an
// ActivityChangeInfo word.
type ActivityKind byte

const (
	ActivityRest ActivityKind = iota
	ActivityAvailability
	ActivityWork
	ActivityDriving
)

func (k ActivityKind) String() string {
	switch k {
	case ActivityRest:
		return "REST"
	case ActivityAvailability:
		return "AVAILABILITY"
	case ActivityWork:
		return "WORK"
	case ActivityDriving:
		return "DRIVING"
	default:
		return "UNKNOWN"
	}
}

// ActivityChangeInfo is the 2-byte bitfield (Appendix 1 2.4) encoding a
// single driver-activity-change event:
//
//	bit 15:    slot (0 driver, 1 co-driver)
//	bit 14:    crew flag (0 single, 1 crew)
//	bit 13:    card status (0 inserted, 1 withdrawn)
//	bits 12-11: activity kind
//	bits 10-0: minute of day, 0..1439
type ActivityChangeInfo struct {
	CoDriverSlot bool
	Crew         bool
	CardWithdrawn bool
	Kind         ActivityKind
	MinuteOfDay  int
}

// DecodeActivityChangeInfo unpacks the 2 raw bytes of an ActivityChangeInfo.
func DecodeActivityChangeInfo(data []byte) (ActivityChangeInfo, error) {
	v, err := UInt16(data)
	if err != nil {
		return ActivityChangeInfo{}, err
	}
	return ActivityChangeInfo{
		CoDriverSlot:  v&0x8000 != 0,
		Crew:          v&0x4000 != 0,
		CardWithdrawn: v&0x2000 != 0,
		Kind:          ActivityKind((v & 0x1800) >> 11),
		MinuteOfDay:   int(v & 0x07FF),
	}, nil
}

// Encode packs the fields back into the 2-byte wire representation. Used by
// the bit-layout round-trip property test in spec.md §8.
func (a ActivityChangeInfo) Encode() []byte {
	var v uint16
	if a.CoDriverSlot {
		v |= 0x8000
	}
	if a.Crew {
		v |= 0x4000
	}
	if a.CardWithdrawn {
		v |= 0x2000
	}
	v |= uint16(a.Kind&0x03) << 11
	v |= uint16(a.MinuteOfDay) & 0x07FF
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return buf
}
