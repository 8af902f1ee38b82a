// Package result holds the generation-neutral decode result: the object
// tree produced by a full decode pass, independent of whether the source
// file was G1, G2 or G2.2. The aggregator (see framing.Decode) owns these
// values exclusively during decode; after decode the tree is handed to
// read-only consumers (timeline builder, compliance engine, viewers).
package result

import (
	"encoding/hex"
	"fmt"
	"time"
)

// Generation identifies which tachograph generation produced a file.
type Generation string

const (
	GenerationG1   Generation = "G1"
	GenerationG2   Generation = "G2"
	GenerationG2_2 Generation = "G2_2"
)

// Licence is the driving-licence information carried on a driver card.
type Licence struct {
	Authority string `json:"authority"`
	Nation    string `json:"nation"`
	Number    string `json:"number"`
}

// Driver is the decoded DriverCardHolderIdentification plus the
// identification and licence blocks associated with it.
type Driver struct {
	Surname            string    `json:"surname"`
	FirstNames         string    `json:"first_names"`
	BirthDate          time.Time `json:"birth_date,omitempty"`
	BirthDateRawHex     string    `json:"birth_date_raw_hex,omitempty"`
	BirthDateUsedTimeReal bool    `json:"birth_date_used_time_real,omitempty"`
	CardNumber         string    `json:"card_number"`
	CardExpiry         time.Time `json:"card_expiry,omitempty"`
	IssuingNation      string    `json:"issuing_nation"`
	PreferredLanguage  string    `json:"preferred_language"`
	Licence            Licence   `json:"licence"`
}

// VehicleUsedRecord is one CardVehiclesUsed / VuVehicleUsed entry (§3).
type VehicleUsedRecord struct {
	OdometerBegin   uint32    `json:"odometer_begin_km"`
	OdometerEnd     uint32    `json:"odometer_end_km"`
	OdometerPresent bool      `json:"odometer_present"`
	FirstUse        time.Time `json:"first_use"`
	LastUse         time.Time `json:"last_use"`
	Nation          string    `json:"nation"`
	Plate           string    `json:"plate"`
	VIN             string    `json:"vin,omitempty"`
	DataBlockCounter int      `json:"vu_data_block_counter,omitempty"`
	CounterPresent  bool      `json:"counter_present"`
	Empty           bool      `json:"empty"`
}

// ActivityChangeEvent is a single decoded ActivityChangeInfo tied to the
// calendar day (and therefore absolute timestamp) it was recorded on.
type ActivityChangeEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	Slot          string    `json:"slot"` // "driver" | "co-driver"
	Crew          bool      `json:"crew"`
	CardInserted  bool      `json:"card_inserted"`
	Kind          string    `json:"kind"`
}

// DailyActivityRecord is one reconstructed day from the cyclic activity
// buffer (§3, §4.2).
type DailyActivityRecord struct {
	Day                  time.Time              `json:"day"`
	DailyPresenceCounter int                    `json:"daily_presence_counter"`
	DayDistanceKm        int                    `json:"day_distance_km"`
	Changes              []ActivityChangeEvent  `json:"changes"`
}

// Activity is one contiguous, timeline-built segment derived from the
// reconstructed ActivityChangeInfo stream (§4.3): a single (kind, slot,
// card_inserted) state held from Start until End.
type Activity struct {
	Kind         string    `json:"kind"` // "REST" | "AVAILABILITY" | "WORK" | "DRIVING"
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationMin  int       `json:"duration_minutes"`
	Slot         string    `json:"slot"`
	CardInserted bool      `json:"card_inserted"`
}

// VehicleRef identifies the vehicle an event/fault occurred in.
type VehicleRef struct {
	Nation string `json:"nation"`
	Plate  string `json:"plate"`
}

// EventRecord is one CardEventData entry (§3).
type EventRecord struct {
	Group    string     `json:"group"`
	TypeCode byte       `json:"type_code"`
	Begin    time.Time  `json:"begin"`
	End      time.Time  `json:"end"`
	Vehicle  VehicleRef `json:"vehicle"`
}

// FaultRecord is one CardFaultData entry (§3), structurally analogous to
// EventRecord but with fault-specific group names.
type FaultRecord struct {
	Group    string     `json:"group"`
	TypeCode byte       `json:"type_code"`
	Begin    time.Time  `json:"begin"`
	End      time.Time  `json:"end"`
	Vehicle  VehicleRef `json:"vehicle"`
}

// PlaceRecord covers CardPlaceDailyWorkPeriod, GNSS-enhanced places,
// load/unload operations, trailer registrations, border crossings and load
// sensor readings — all "something happened at a place" records (§3.1
// supplement).
type PlaceRecord struct {
	Kind      string    `json:"kind"` // "daily_work_period" | "gnss_enhanced_place" | "load_unload" | "trailer_registration" | "border_crossing" | "load_sensor"
	Timestamp time.Time `json:"timestamp"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// GNSSPoint is one GNSS-accumulated-driving position fix (§3.1 supplement).
type GNSSPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SpeedKmh  uint16     `json:"speed_kmh"`
	Heading   uint16     `json:"heading"`
}

// CalibrationRecord is one 0x050C entry (§4.2, §3.1 supplement).
type CalibrationRecord struct {
	PurposeCode           byte   `json:"purpose_code"`
	VINAtCalibration      string `json:"vin_at_calibration"`
	PlateAtCalibration    string `json:"plate_at_calibration"`
	NationAtCalibration   string `json:"nation_at_calibration"`
	WCharacteristicConst  uint16 `json:"w_characteristic_constant"`
	KConstant             uint16 `json:"k_constant"`
	LTyreCircumference    uint16 `json:"l_tyre_circumference"`
	TyreSize              string `json:"tyre_size"`
	SpeedLimitKmh         byte   `json:"speed_limit_kmh"`
	OdometerValue         *uint32 `json:"odometer_value,omitempty"`
}

// SignatureBlock is a signed-data/signature pair, or an orphan signature
// (§4.5).
type SignatureBlock struct {
	Tag           uint32 `json:"tag"`
	DataTag       uint32 `json:"data_tag"`
	Algorithm     string `json:"algorithm"`
	SignatureHex  string `json:"signature_hex"`
	SignedDataRef string `json:"signed_data_ref,omitempty"`
	Orphan        bool   `json:"orphan"`
}

// RawUnparsed is one chunk the framing reader could not associate with a
// known decoder, per §7's recoverable-error policy.
type RawUnparsed struct {
	TagHex string `json:"tag_hex"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Reason string `json:"reason"`
	BytesHex string `json:"bytes_hex"`
}

// Warning is a semantic ambiguity recorded without failing decode (§7).
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// MalformedFile is the structural-error type §7 requires: generation byte
// unrecognizable, or top-level framing breaks on the first record.
type MalformedFile struct {
	Offset int
	Reason string
}

func (m *MalformedFile) Error() string {
	return fmt.Sprintf("malformed file at offset %d: %s", m.Offset, m.Reason)
}

// TachographFile is the top-level aggregate (§3).
type TachographFile struct {
	Generation         Generation            `json:"generation"`
	Driver             Driver                `json:"driver"`
	VehiclesUsed       []VehicleUsedRecord   `json:"vehicles_used"`
	Activities         []DailyActivityRecord `json:"activities"`
	Events             []EventRecord         `json:"events"`
	Faults             []FaultRecord         `json:"faults"`
	Places             []PlaceRecord         `json:"places"`
	GNSSPoints         []GNSSPoint           `json:"gnss_points"`
	CalibrationRecords []CalibrationRecord   `json:"calibration_records"`
	SignatureBlocks    []SignatureBlock      `json:"signature_blocks"`
	RawUnparsed        []RawUnparsed         `json:"raw_unparsed"`
	Warnings           []Warning             `json:"warnings"`
}

// AddWarning appends a semantic warning to the result (§7).
func (f *TachographFile) AddWarning(code, message, context string) {
	f.Warnings = append(f.Warnings, Warning{Code: code, Message: message, Context: context})
}

// AddRawUnparsed records a chunk the decoder could not place (§7).
func (f *TachographFile) AddRawUnparsed(tag uint32, offset, length int, reason string, raw []byte) {
	f.RawUnparsed = append(f.RawUnparsed, RawUnparsed{
		TagHex:   fmt.Sprintf("0x%x", tag),
		Offset:   offset,
		Length:   length,
		Reason:   reason,
		BytesHex: hex.EncodeToString(raw),
	})
}
