package framing

import (
	"github.com/alpinefleet/tachoscan/pkg/records"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

// wrap adapts a records.* decoder (which takes an explicit records.Config)
// into a framing.DecodeFunc, threading ctx.Config and ctx.Generation
// through without requiring every call site to repeat the conversion.
func wrap(fn func(res *result.TachographFile, gen result.Generation, cfg records.Config, payload []byte) error) DecodeFunc {
	return func(ctx *DecodeContext, tag uint32, payload []byte) error {
		cfg := records.Config{PermitG22Heuristics: ctx.Config.PermitG22Heuristics}
		return fn(ctx.Result, ctx.Generation, cfg, payload)
	}
}

// signatureMarkerTag is the BER-TLV generation's shared signature-EF tag:
// Annex 1C structures repeat this same FID after each signed EF, so unlike
// G1 (where the signature shares its data EF's own tag, distinguished only
// by the STAP record-type byte) there is no per-data-tag signature value to
// derive; pairing instead falls back to pure container adjacency (§4.5).
const signatureMarkerTag = 0x0002

// registryTable is the explicit (generation, tag) -> RegistryEntry table
// mandated by spec.md §9 ("model the tag registry as an explicit table...
// no reflection or runtime type discovery").
var registryTable = map[result.Generation]map[uint32]RegistryEntry{
	result.GenerationG1: {
		0x0501: {Name: "DriverCardApplicationIdentification", Decode: wrap(records.DecodeDriverApplicationIdentification)},
		0x0502: {Name: "CardEventData", Decode: wrap(records.DecodeCardEventData)},
		0x0503: {Name: "CardFaultData", Decode: wrap(records.DecodeCardFaultData)},
		0x0504: {Name: "CardDriverActivity", Decode: wrap(records.DecodeCardDriverActivity)},
		0x0505: {Name: "CardVehiclesUsed", Decode: wrap(records.DecodeCardVehiclesUsed)},
		0x0506: {Name: "CardPlaceDailyWorkPeriod", Decode: wrap(records.DecodeCardPlaceDailyWorkPeriod)},
		0x050C: {Name: "SpecificConditionsCalibration", Decode: wrap(records.DecodeCalibration)},
		0x0520: {Name: "CardIdentificationAndDriverCardHolderIdentification", Decode: wrap(records.DecodeCardIdentificationAndHolder)},
		0x0521: {Name: "CardDrivingLicenceInformation", Decode: wrap(records.DecodeDrivingLicenceInformation)},
	},
	result.GenerationG2: {
		0x0201: {Name: "DriverCardHolderIdentification", Decode: wrap(records.DecodeCardIdentificationAndHolder)},
		0x0225: {Name: "GNSSEnhancedPlaces", Decode: wrap(records.DecodeGNSSEnhancedPlaces)},
		0x0226: {Name: "LoadUnload", Decode: wrap(records.DecodeLoadUnload)},
		0x0227: {Name: "TrailerRegistrations", Decode: wrap(records.DecodeTrailerRegistrations)},
		0x0228: {Name: "BorderCrossings", Decode: wrap(records.DecodeBorderCrossings)},
		0x0524: {Name: "CardDriverActivity", Decode: wrap(records.DecodeCardDriverActivity)},
		0x7621: {Name: "ContainerG2", IsContainer: true},
		signatureMarkerTag: {Name: "Signature", Decode: noopSignatureDecode},
	},
	result.GenerationG2_2: {
		0x0525: {Name: "GNSSAccumulatedDriving", Decode: wrap(records.DecodeGNSSAccumulatedDriving)},
		0x0526: {Name: "LoadUnload", Decode: wrap(records.DecodeLoadUnload)},
		0x0527: {Name: "TrailerRegistrations", Decode: wrap(records.DecodeTrailerRegistrations)},
		0x0528: {Name: "GNSSEnhancedPlaces", Decode: wrap(records.DecodeGNSSEnhancedPlaces)},
		0x0529: {Name: "LoadSensor", Decode: wrap(records.DecodeLoadSensor)},
		0x052A: {Name: "BorderCrossings", Decode: wrap(records.DecodeBorderCrossings)},
		0x7631: {Name: "ContainerG2_2", IsContainer: true},
		signatureMarkerTag: {Name: "Signature", Decode: noopSignatureDecode},
	},
}

// noopSignatureDecode handles the generic BER-TLV signature tag: the raw
// bytes are captured by pairAndRecord (via TagEvent.Payload), not by a
// structural decoder.
func noopSignatureDecode(ctx *DecodeContext, tag uint32, payload []byte) error {
	return nil
}

// lookup resolves a (generation, tag) pair to its registry entry.
func lookup(gen result.Generation, tag uint32) (RegistryEntry, bool) {
	tags, ok := registryTable[gen]
	if !ok {
		return RegistryEntry{}, false
	}
	e, ok := tags[tag]
	return e, ok
}

// isContainerTag reports whether tag recurses rather than dispatching to a
// leaf decoder, for generations/tags not already known to lookup (e.g. the
// 0x7621/0x7631 padding containers, which are generation-agnostic in
// practice).
func isContainerTag(gen result.Generation, tag uint32) bool {
	if e, ok := lookup(gen, tag); ok {
		return e.IsContainer
	}
	return tag == 0x7621 || tag == 0x7631
}

// isBERSignatureTag reports whether tag is the BER-TLV generations' shared
// signature-EF tag (§4.5). G1 has no equivalent: its signature shares the
// data EF's own tag, distinguished only by the STAP record-type byte, which
// decodeSTAPLevel handles directly.
func isBERSignatureTag(gen result.Generation, tag uint32) bool {
	return gen != result.GenerationG1 && tag == signatureMarkerTag
}
