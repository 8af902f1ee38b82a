// Package signature implements the pairing and cryptographic verification
// boundary described in SPEC_FULL.md §4.5: matching a data block to its
// trailing signature block within a container, and delegating the actual
// cryptographic check to a pluggable Verifier.
package signature

import "encoding/hex"

// TagEvent is the minimal view of a framing.TagEvent that pairing needs: the
// tag, its payload, and whether the registry identified it as a signature
// tag (in which case DataTag names the data tag it signs, per §4.5 "the
// registry records each data-tag's signature-tag").
type TagEvent struct {
	Tag         uint32
	Payload     []byte
	IsSignature bool
	DataTag     uint32
}

// Pair is one signature/data relationship found at a single container
// level. Orphan is true when a signature-shaped tag had no preceding data
// tag to pair with (§4.5 edge case).
type Pair struct {
	DataTag      uint32
	SignatureTag uint32
	SignatureHex string
	DataPayload  []byte
	SignaturePayload []byte
	Orphan       bool
}

// PairEvents walks one container's TagEvents in order and pairs each signature tag
// first with the nearest preceding non-signature tag (adjacency), falling
// back to matching DataTag by value if the immediately preceding event isn't
// the signed tag (e.g. an intervening unrelated record), per §4.5. A
// signature event with no candidate data event at all is marked orphan.
// Grounded in the teacher's two-pass UnmarshalTLV approach (record data
// ranges first, then match signature tags against them) but expressed as an
// explicit scan instead of a reflection-driven map, per the non-reflection
// redesign.
func PairEvents(events []TagEvent) []Pair {
	var pairs []Pair
	seen := make(map[uint32][]byte)
	var lastDataTag uint32
	var lastDataPayload []byte
	haveLastData := false

	for _, e := range events {
		if e.IsSignature {
			p := Pair{
				SignatureTag:     e.Tag,
				SignatureHex:     hex.EncodeToString(e.Payload),
				SignaturePayload: e.Payload,
				DataTag:          e.DataTag,
			}
			switch {
			case e.DataTag == 0 && haveLastData:
				// no statically known data tag (e.g. a generation-wide
				// signature marker tag): trust adjacency.
				p.DataTag = lastDataTag
				p.DataPayload = lastDataPayload
			case e.DataTag != 0 && haveLastData && lastDataTag == e.DataTag:
				p.DataPayload = lastDataPayload
			case e.DataTag != 0:
				if payload, ok := seen[e.DataTag]; ok {
					p.DataPayload = payload
				} else {
					p.Orphan = true
				}
			default:
				p.Orphan = true
			}
			pairs = append(pairs, p)
			continue
		}
		seen[e.Tag] = e.Payload
		lastDataTag = e.Tag
		lastDataPayload = e.Payload
		haveLastData = true
	}
	return pairs
}
