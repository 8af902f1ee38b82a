package records

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const (
	vehicleRecLenG1Long  = 31
	vehicleRecLenG1Short = 29
	vehicleRecLenG2      = 48
)

// pickVehicleRecordLen selects the CardVehiclesUsed record layout by which
// candidate size evenly divides the payload, per §4.2 ("size selects the
// layout"). The 31-byte G1 form is tried first since it is the binding
// layout named by the end-to-end scenario.
func pickVehicleRecordLen(total int) (int, error) {
	for _, size := range []int{vehicleRecLenG1Long, vehicleRecLenG1Short, vehicleRecLenG2} {
		if total != 0 && total%size == 0 {
			return size, nil
		}
	}
	return 0, fmt.Errorf("vehicles-used payload length %d matches no known record size", total)
}

// DecodeCardVehiclesUsed handles tag 0x0505 (G1); the framing registry binds
// no G2 or G2.2 tag to it, though a 48-byte G2 layout is still recognized by
// size. The 31-byte G1 binding order is: odometer_begin(3) + odometer_end(3) +
// first_use(4) + last_use(4) + nation(1) + plate(14) + counter(2 BCD).
func DecodeCardVehiclesUsed(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	recLen, err := pickVehicleRecordLen(len(payload))
	if err != nil {
		return err
	}
	for pos := 0; pos+recLen <= len(payload); pos += recLen {
		rec := payload[pos : pos+recLen]
		v, err := decodeVehicleRecord(rec, recLen)
		if err != nil {
			return err
		}
		if v.Empty {
			continue
		}
		res.VehiclesUsed = append(res.VehiclesUsed, v)
	}
	return nil
}

func decodeVehicleRecord(rec []byte, recLen int) (result.VehicleUsedRecord, error) {
	odoBegin, err := codec.UInt24(rec[0:3])
	if err != nil {
		return result.VehicleUsedRecord{}, err
	}
	odoEnd, err := codec.UInt24(rec[3:6])
	if err != nil {
		return result.VehicleUsedRecord{}, err
	}
	firstUse, err := codec.DecodeTimeReal(rec[6:10])
	if err != nil {
		return result.VehicleUsedRecord{}, err
	}
	lastUse, err := codec.DecodeTimeReal(rec[10:14])
	if err != nil {
		return result.VehicleUsedRecord{}, err
	}
	nation := rec[14]
	plate := codec.RawString(rec[15:29])

	v := result.VehicleUsedRecord{
		OdometerBegin:   odoBegin,
		OdometerEnd:     odoEnd,
		OdometerPresent: true,
		FirstUse:        firstUse.Time(),
		LastUse:         lastUse.Time(),
		Nation:          codec.Nation(nation).String(),
		Plate:           plate,
		Empty:           odoBegin == 0 && odoEnd == 0 && plate == "" && firstUse.IsSentinel(),
	}

	if recLen >= vehicleRecLenG1Long && len(rec) >= 31 {
		counter := codec.BCD(rec[29:31])
		if !counter.IsAllOnes() {
			if n, err := counter.Decode(); err == nil {
				v.DataBlockCounter = n
				v.CounterPresent = true
			}
		}
	}
	if recLen == vehicleRecLenG2 && len(rec) >= 48 {
		v.VIN = codec.RawString(rec[31:48])
	}
	return v, nil
}
