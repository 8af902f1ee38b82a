package records

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const (
	calibrationRecLenShort = 105
	calibrationRecLenLong  = 161
)

// DecodeCalibration handles tag 0x050C (SpecificConditions/Calibration).
// Record size (105 or 161 bytes) selects the VU-version layout (§4.2); only
// the fields common to both layouts are surfaced.
func DecodeCalibration(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	recLen, err := pickCalibrationRecordLen(len(payload))
	if err != nil {
		if !cfg.PermitG22Heuristics {
			return err
		}
		recLen = calibrationRecLenShort
		res.AddWarning("calibration_record_size_fallback",
			fmt.Sprintf("payload length %d matches neither 105 nor 161 byte records; falling back to 105-byte records", len(payload)), "")
	}
	for pos := 0; pos+recLen <= len(payload); pos += recLen {
		rec := payload[pos : pos+recLen]
		c, err := decodeCalibrationRecord(rec)
		if err != nil {
			return err
		}
		res.CalibrationRecords = append(res.CalibrationRecords, c)
	}
	return nil
}

func pickCalibrationRecordLen(total int) (int, error) {
	for _, size := range []int{calibrationRecLenShort, calibrationRecLenLong} {
		if total != 0 && total%size == 0 {
			return size, nil
		}
	}
	return 0, fmt.Errorf("calibration payload length %d matches neither 105 nor 161 byte record size", total)
}

func decodeCalibrationRecord(rec []byte) (result.CalibrationRecord, error) {
	if len(rec) < 105 {
		return result.CalibrationRecord{}, fmt.Errorf("calibration record too short: %d bytes", len(rec))
	}
	purpose := rec[0]
	vin := codec.RawString(rec[1:18])
	nation := rec[18]
	plate := codec.RawString(rec[19:33])
	wConst, err := codec.UInt16(rec[33:35])
	if err != nil {
		return result.CalibrationRecord{}, err
	}
	kConst, err := codec.UInt16(rec[35:37])
	if err != nil {
		return result.CalibrationRecord{}, err
	}
	lTyre, err := codec.UInt16(rec[37:39])
	if err != nil {
		return result.CalibrationRecord{}, err
	}
	tyreSize := codec.RawString(rec[39:54])
	speedLimit := rec[54]

	c := result.CalibrationRecord{
		PurposeCode:          purpose,
		VINAtCalibration:     vin,
		PlateAtCalibration:   plate,
		NationAtCalibration:  codec.Nation(nation).String(),
		WCharacteristicConst: wConst,
		KConstant:            kConst,
		LTyreCircumference:   lTyre,
		TyreSize:             tyreSize,
		SpeedLimitKmh:        speedLimit,
	}
	if len(rec) >= 59 {
		if odo, err := codec.UInt24(rec[55:58]); err == nil {
			c.OdometerValue = &odo
		}
	}
	return c, nil
}
