// Package records holds the per-tag structural decoders referenced by the
// tag registry (SPEC_FULL.md §4.2): identification, events, faults, the
// cyclic activity buffer, vehicles-used, places, GNSS, licence and
// calibration records. Each decoder takes the already-bracketed tag payload
// and a *result.TachographFile to accumulate into, matching the teacher's
// convention of decoders that mutate a shared result rather than returning
// deeply nested trees.
package records

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const (
	surnameLen    = 36
	firstNameLen  = 36
	cardNumberLen = 16
	plateLen      = 14
)

// DecodeDriverApplicationIdentification handles tag 0x0501
// (DriverCardApplicationIdentification), which on the wire leads with the
// card-number and issuing-nation fields the driver record needs; everything
// else in this block (application/driving-licence category counters) is
// metadata the result model does not surface separately.
func DecodeDriverApplicationIdentification(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload) < cardNumberLen+1 {
		return fmt.Errorf("driver application identification payload too short: %d bytes", len(payload))
	}
	res.Driver.CardNumber = codec.RawString(payload[:cardNumberLen])
	res.Driver.IssuingNation = codec.Nation(payload[cardNumberLen]).String()
	return nil
}

// DecodeCardIdentificationAndHolder handles tag 0x0520
// (CardIdentification + DriverCardHolderIdentification, G1) and tag 0x0201
// (DriverCardHolderIdentification, G2). Layout, read from the first payload
// byte: holder surname(36) + first names(36) + birth date(4) + preferred
// language(2). No card-identification prefix is skipped or decoded.
func DecodeCardIdentificationAndHolder(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	need := surnameLen + firstNameLen + 4 + 2
	if len(payload) < need {
		return fmt.Errorf("card identification payload too short: %d bytes, need %d", len(payload), need)
	}
	off := 0
	res.Driver.Surname = codec.RawString(payload[off : off+surnameLen])
	off += surnameLen
	res.Driver.FirstNames = codec.RawString(payload[off : off+firstNameLen])
	off += firstNameLen

	birth, rawHex, usedTimeReal, err := codec.DecodeBirthDate(payload[off : off+4])
	if err != nil {
		return fmt.Errorf("birth date: %w", err)
	}
	res.Driver.BirthDate = birth
	res.Driver.BirthDateRawHex = rawHex
	res.Driver.BirthDateUsedTimeReal = usedTimeReal
	if usedTimeReal {
		res.AddWarning("birth_date_timereal_fallback", "CardHolderBirthDate did not parse as Datef; fell back to TimeReal interpretation", rawHex)
	}
	off += 4

	res.Driver.PreferredLanguage = codec.RawString(payload[off : off+2])
	return nil
}

// DecodeDrivingLicenceInformation handles tag 0x0521
// (CardDrivingLicenceInformation): issuing authority name(36) + issuing
// nation(1) + licence number(16).
func DecodeDrivingLicenceInformation(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	const authorityLen = 36
	need := authorityLen + 1 + 16
	if len(payload) < need {
		return fmt.Errorf("driving licence payload too short: %d bytes", len(payload))
	}
	res.Driver.Licence = result.Licence{
		Authority: codec.RawString(payload[:authorityLen]),
		Nation:    codec.Nation(payload[authorityLen]).String(),
		Number:    codec.RawString(payload[authorityLen+1 : authorityLen+1+16]),
	}
	return nil
}
