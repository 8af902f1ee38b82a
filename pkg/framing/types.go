// Package framing implements the byte-cursor reader described in
// SPEC_FULL.md §4.1: generation detection, STAP (G1) and BER-TLV (G2/G2.2)
// framing with container recursion, the tag registry, and the top-level
// Decode entry point that drives record decoders and assembles a
// result.TachographFile.
package framing

import (
	"github.com/alpinefleet/tachoscan/pkg/result"
)

// Config gates optional, non-normative decode behavior.
type Config struct {
	// PermitG22Heuristics enables the len%13==0-style record-size fallback
	// heuristics for still-undocumented G2.2 layouts (spec.md §9). When
	// false ("strict mode"), a layout that cannot be determined from an
	// explicit record-count/size field is recorded as RawUnparsed instead.
	PermitG22Heuristics bool
}

// DefaultConfig is the permissive default (heuristics on), matching spec.md
// §9's "default on" instruction.
func DefaultConfig() Config {
	return Config{PermitG22Heuristics: true}
}

// TagEvent is one (tag, payload) pair as seen at a single container nesting
// level, used both for decoder dispatch and for signature pairing (§4.5),
// which needs to know adjacency within the enclosing container.
type TagEvent struct {
	Tag         uint32 // 2 bytes for BER-TLV/STAP tags; kept as uint32 for headroom
	Offset      int
	Length      int
	Payload     []byte
	IsSignature bool   // true for a STAP record-type=signature entry, or a registered signature tag
	DataTag     uint32 // the data tag this signature signs, when known statically (0 = unknown, use adjacency)
}

// DecodeFunc decodes one non-container record payload into ctx.Result.
// Decoders must never panic on malformed input; Decode recovers around each
// call as a defensive backstop, but a well-behaved decoder returns an error
// instead, which Decode turns into a RawUnparsed entry (§7 recoverable
// errors).
type DecodeFunc func(ctx *DecodeContext, tag uint32, payload []byte) error

// RegistryEntry is one (generation, tag) -> decoder binding (§4.2). Whether
// a tag is itself a signature tag is not modeled here: G1 signatures share
// their data tag's own entry (distinguished by the STAP record-type byte),
// and the BER-TLV generations use one shared marker tag handled by
// isBERSignatureTag.
type RegistryEntry struct {
	Name        string
	IsContainer bool
	Decode      DecodeFunc
}

// DecodeContext threads the in-progress result and configuration through the
// recursive descent and into each record decoder.
type DecodeContext struct {
	Result     *result.TachographFile
	Config     Config
	Generation result.Generation
}
