package records

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const eventFaultRecordLen = 24

// eventGroupNames is the fixed six-group order CardEventData/CardFaultData
// share (§4.2): TimeOverlap, LastCardSession, PowerSupplyInterruption,
// CardConflict, TimeDifference, DrivingWithoutCard.
var eventGroupNames = [6]string{
	"TimeOverlap",
	"LastCardSession",
	"PowerSupplyInterruption",
	"CardConflict",
	"TimeDifference",
	"DrivingWithoutCard",
}

type rawEventFaultRecord struct {
	typeCode byte
	begin    uint32
	end      uint32
	nation   byte
	plate    string
}

// decodeEventFaultGroups splits payload into six equal-size groups (the
// fixed group count CardEventData/CardFaultData both use) and decodes each
// group's fixed-width 24-byte records, skipping all-sentinel empty slots
// without ending the group early (§4.2).
func decodeEventFaultGroups(payload []byte) ([][]rawEventFaultRecord, error) {
	if len(payload)%6 != 0 {
		return nil, fmt.Errorf("event/fault payload length %d not divisible by 6 groups", len(payload))
	}
	groupSize := len(payload) / 6
	if groupSize%eventFaultRecordLen != 0 {
		return nil, fmt.Errorf("event/fault group size %d not a multiple of record size %d", groupSize, eventFaultRecordLen)
	}
	groups := make([][]rawEventFaultRecord, 6)
	for g := 0; g < 6; g++ {
		group := payload[g*groupSize : (g+1)*groupSize]
		var records []rawEventFaultRecord
		for pos := 0; pos+eventFaultRecordLen <= len(group); pos += eventFaultRecordLen {
			rec := group[pos : pos+eventFaultRecordLen]
			typeCode := rec[0]
			begin, err := codec.UInt32(rec[1:5])
			if err != nil {
				return nil, err
			}
			end, err := codec.UInt32(rec[5:9])
			if err != nil {
				return nil, err
			}
			if typeCode == 0xFF && begin == 0 && end == 0 {
				continue
			}
			records = append(records, rawEventFaultRecord{
				typeCode: typeCode,
				begin:    begin,
				end:      end,
				nation:   rec[9],
				plate:    codec.RawString(rec[10:24]),
			})
		}
		groups[g] = records
	}
	return groups, nil
}

// DecodeCardEventData handles tag 0x0502 (G1); the framing registry binds no
// G2 or G2.2 tag to it. A single non-empty record produces exactly one
// entry in res.Events (§8 scenario 2); driver identification fields are
// never touched by this decoder.
func DecodeCardEventData(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	groups, err := decodeEventFaultGroups(payload)
	if err != nil {
		return err
	}
	for g, records := range groups {
		for _, r := range records {
			res.Events = append(res.Events, result.EventRecord{
				Group:    eventGroupNames[g],
				TypeCode: r.typeCode,
				Begin:    codec.TimeReal(r.begin).Time(),
				End:      codec.TimeReal(r.end).Time(),
				Vehicle: result.VehicleRef{
					Nation: codec.Nation(r.nation).String(),
					Plate:  r.plate,
				},
			})
		}
	}
	return nil
}

// DecodeCardFaultData handles tag 0x0503. Structurally identical to
// DecodeCardEventData (§4.2) but the group labels have fault-specific
// meaning, so it is kept as a separate decoder rather than sharing a
// generic "EventOrFault" entry in the registry.
func DecodeCardFaultData(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	groups, err := decodeEventFaultGroups(payload)
	if err != nil {
		return err
	}
	for g, records := range groups {
		for _, r := range records {
			res.Faults = append(res.Faults, result.FaultRecord{
				Group:    eventGroupNames[g],
				TypeCode: r.typeCode,
				Begin:    codec.TimeReal(r.begin).Time(),
				End:      codec.TimeReal(r.end).Time(),
				Vehicle: result.VehicleRef{
					Nation: codec.Nation(r.nation).String(),
					Plate:  r.plate,
				},
			})
		}
	}
	return nil
}
