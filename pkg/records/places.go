package records

import (
	"fmt"
	"time"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const placeDailyWorkPeriodRecLen = 10

// DecodeCardPlaceDailyWorkPeriod handles tag 0x0506: a sequence of
// fixed-width entries recording where a daily work period began/ended.
// Layout: entry_time(4 TimeReal) + entry_type(1) + nation(1) + region(1) +
// vehicle_odometer(3 UInt24).
func DecodeCardPlaceDailyWorkPeriod(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload)%placeDailyWorkPeriodRecLen != 0 {
		return fmt.Errorf("place daily work period payload length %d not a multiple of %d", len(payload), placeDailyWorkPeriodRecLen)
	}
	for pos := 0; pos+placeDailyWorkPeriodRecLen <= len(payload); pos += placeDailyWorkPeriodRecLen {
		rec := payload[pos : pos+placeDailyWorkPeriodRecLen]
		ts, err := codec.DecodeTimeReal(rec[0:4])
		if err != nil {
			return err
		}
		if ts.IsSentinel() {
			continue
		}
		entryType := rec[4]
		nation := rec[5]
		res.Places = append(res.Places, result.PlaceRecord{
			Kind:      "daily_work_period",
			Timestamp: ts.Time(),
			Detail:    fmt.Sprintf("entry_type=0x%02x nation=%s", entryType, codec.Nation(nation).String()),
		})
	}
	return nil
}

const gnssPlaceRecLen = 12

// DecodeGNSSEnhancedPlaces handles tags 0x0225 (G2) and 0x0528 (G2.2):
// timestamp(4 TimeReal) + latitude(4 signed, 1e-7 deg) + longitude(4 signed,
// 1e-7 deg) per record (§3.1 supplement).
func DecodeGNSSEnhancedPlaces(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	recs, err := decodeGNSSFixes(payload, gnssPlaceRecLen, cfg)
	if err != nil {
		return err
	}
	for _, f := range recs {
		lat, lon := f.latDeg, f.lonDeg
		res.Places = append(res.Places, result.PlaceRecord{
			Kind:      "gnss_enhanced_place",
			Timestamp: f.timestamp,
			Latitude:  &lat,
			Longitude: &lon,
		})
	}
	return nil
}

type gnssFix struct {
	timestamp time.Time
	latDeg    float64
	lonDeg    float64
	speedKmh  uint16
	heading   uint16
}
