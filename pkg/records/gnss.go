package records

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const gnssScale = 1e-7

// decodeGNSSFixes decodes a run of fixed-size GNSS-bearing records sharing
// the timestamp(4) + latitude(4 signed) + longitude(4 signed) prefix, with
// an optional trailing speed(2) + heading(2) when recLen allows it (§3.1
// supplement, "GNSS coordinates... scaled by 1e-7... WGS84").
func decodeGNSSFixes(payload []byte, recLen int, cfg Config) ([]gnssFix, error) {
	if len(payload)%recLen != 0 {
		return nil, fmt.Errorf("GNSS payload length %d not a multiple of record size %d", len(payload), recLen)
	}
	var fixes []gnssFix
	for pos := 0; pos+recLen <= len(payload); pos += recLen {
		rec := payload[pos : pos+recLen]
		tr, err := codec.DecodeTimeReal(rec[0:4])
		if err != nil {
			return nil, err
		}
		if tr.IsSentinel() {
			continue
		}
		latRaw, err := codec.Int32(rec[4:8])
		if err != nil {
			return nil, err
		}
		lonRaw, err := codec.Int32(rec[8:12])
		if err != nil {
			return nil, err
		}
		f := gnssFix{
			timestamp: tr.Time(),
			latDeg:    float64(latRaw) * gnssScale,
			lonDeg:    float64(lonRaw) * gnssScale,
		}
		if recLen >= 16 {
			speed, err := codec.UInt16(rec[12:14])
			if err != nil {
				return nil, err
			}
			heading, err := codec.UInt16(rec[14:16])
			if err != nil {
				return nil, err
			}
			f.speedKmh, f.heading = speed, heading
		}
		fixes = append(fixes, f)
	}
	return fixes, nil
}

const gnssAccumulatedDrivingRecLen = 16

// DecodeGNSSAccumulatedDriving handles tag 0x0525: position fixes taken at
// each activity change, with speed and heading (§3.1 supplement).
func DecodeGNSSAccumulatedDriving(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	fixes, err := decodeGNSSFixes(payload, gnssAccumulatedDrivingRecLen, cfg)
	if err != nil {
		return err
	}
	for _, f := range fixes {
		res.GNSSPoints = append(res.GNSSPoints, result.GNSSPoint{
			Timestamp: f.timestamp,
			Latitude:  f.latDeg,
			Longitude: f.lonDeg,
			SpeedKmh:  f.speedKmh,
			Heading:   f.heading,
		})
	}
	return nil
}
