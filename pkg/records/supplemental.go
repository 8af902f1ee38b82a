package records

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const loadUnloadRecLen = 13

// DecodeLoadUnload handles tags 0x0226 (G2) and 0x0526 (G2.2): timestamp(4
// TimeReal) + operation(1, 0=LOAD/1=UNLOAD) + latitude(4 signed) +
// longitude(4 signed). 13 bytes is also the record size the len%13==0
// fallback heuristic assumes (§9, "Heuristics as policy, not bugs"), since
// this is the only supplemented record kind naturally 13 bytes wide.
func DecodeLoadUnload(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload)%loadUnloadRecLen != 0 {
		if !cfg.PermitG22Heuristics {
			return fmt.Errorf("load/unload payload length %d not a multiple of %d", len(payload), loadUnloadRecLen)
		}
		res.AddWarning("load_unload_size_heuristic",
			fmt.Sprintf("payload length %d not a clean multiple of 13; truncating to full records", len(payload)), "")
	}
	for pos := 0; pos+loadUnloadRecLen <= len(payload); pos += loadUnloadRecLen {
		rec := payload[pos : pos+loadUnloadRecLen]
		tr, err := codec.DecodeTimeReal(rec[0:4])
		if err != nil {
			return err
		}
		if tr.IsSentinel() {
			continue
		}
		op := "LOAD"
		if rec[4] == 1 {
			op = "UNLOAD"
		}
		lat, err := codec.Int32(rec[5:9])
		if err != nil {
			return err
		}
		lon, err := codec.Int32(rec[9:13])
		if err != nil {
			return err
		}
		place := result.PlaceRecord{
			Kind:      "load_unload",
			Timestamp: tr.Time(),
			Detail:    op,
		}
		if lat != 0 || lon != 0 {
			latDeg, lonDeg := float64(lat)*gnssScale, float64(lon)*gnssScale
			place.Latitude, place.Longitude = &latDeg, &lonDeg
		}
		res.Places = append(res.Places, place)
	}
	return nil
}

const trailerRegistrationRecLen = 20

// DecodeTrailerRegistrations handles tags 0x0227 (G2) and 0x0527 (G2.2):
// timestamp(4) + nation(1) + plate(14) + event(1, 0=COUPLED/1=UNCOUPLED).
// Recorded as a place-like event (§3.1 supplement) rather than splicing
// into VehicleUsedRecord, since a trailer coupling is not itself a vehicle
// use period.
func DecodeTrailerRegistrations(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload)%trailerRegistrationRecLen != 0 {
		return fmt.Errorf("trailer registration payload length %d not a multiple of %d", len(payload), trailerRegistrationRecLen)
	}
	for pos := 0; pos+trailerRegistrationRecLen <= len(payload); pos += trailerRegistrationRecLen {
		rec := payload[pos : pos+trailerRegistrationRecLen]
		tr, err := codec.DecodeTimeReal(rec[0:4])
		if err != nil {
			return err
		}
		if tr.IsSentinel() {
			continue
		}
		nation := codec.Nation(rec[4]).String()
		plate := codec.RawString(rec[5:19])
		event := "COUPLED"
		if rec[19] == 1 {
			event = "UNCOUPLED"
		}
		res.Places = append(res.Places, result.PlaceRecord{
			Kind:      "trailer_registration",
			Timestamp: tr.Time(),
			Detail:    fmt.Sprintf("%s nation=%s plate=%s", event, nation, plate),
		})
	}
	return nil
}

const borderCrossingRecLen = 14

// DecodeBorderCrossings handles tags 0x0228 (G2) and 0x052A (G2.2):
// timestamp(4) + nation_from(1) + nation_to(1) + latitude(4 signed) +
// longitude(4 signed).
func DecodeBorderCrossings(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload)%borderCrossingRecLen != 0 {
		return fmt.Errorf("border crossing payload length %d not a multiple of %d", len(payload), borderCrossingRecLen)
	}
	for pos := 0; pos+borderCrossingRecLen <= len(payload); pos += borderCrossingRecLen {
		rec := payload[pos : pos+borderCrossingRecLen]
		tr, err := codec.DecodeTimeReal(rec[0:4])
		if err != nil {
			return err
		}
		if tr.IsSentinel() {
			continue
		}
		from := codec.Nation(rec[4]).String()
		to := codec.Nation(rec[5]).String()
		place := result.PlaceRecord{
			Kind:      "border_crossing",
			Timestamp: tr.Time(),
			Detail:    fmt.Sprintf("from=%s to=%s", from, to),
		}
		if lat, err := codec.Int32(rec[6:10]); err == nil {
			if lon, err := codec.Int32(rec[10:14]); err == nil && (lat != 0 || lon != 0) {
				latDeg, lonDeg := float64(lat)*gnssScale, float64(lon)*gnssScale
				place.Latitude, place.Longitude = &latDeg, &lonDeg
			}
		}
		res.Places = append(res.Places, place)
	}
	return nil
}

const maxLoadSensorAxles = 5
const loadSensorRecLen = 4 + 1 + maxLoadSensorAxles*2

// DecodeLoadSensor handles tag 0x0529: timestamp(4) + axle_count(1) +
// weights_kg(axle_count * 2, padded to maxLoadSensorAxles slots).
func DecodeLoadSensor(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload)%loadSensorRecLen != 0 {
		return fmt.Errorf("load sensor payload length %d not a multiple of %d", len(payload), loadSensorRecLen)
	}
	for pos := 0; pos+loadSensorRecLen <= len(payload); pos += loadSensorRecLen {
		rec := payload[pos : pos+loadSensorRecLen]
		tr, err := codec.DecodeTimeReal(rec[0:4])
		if err != nil {
			return err
		}
		if tr.IsSentinel() {
			continue
		}
		axleCount := int(rec[4])
		if axleCount > maxLoadSensorAxles {
			axleCount = maxLoadSensorAxles
		}
		var weights []string
		for i := 0; i < axleCount; i++ {
			w, err := codec.UInt16(rec[5+i*2 : 7+i*2])
			if err != nil {
				return err
			}
			weights = append(weights, fmt.Sprintf("%dkg", w))
		}
		res.Places = append(res.Places, result.PlaceRecord{
			Kind:      "load_sensor",
			Timestamp: tr.Time(),
			Detail:    fmt.Sprintf("axles=%v", weights),
		})
	}
	return nil
}
