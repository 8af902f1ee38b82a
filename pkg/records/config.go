package records

// Config threads the decode-time policy flags record decoders need,
// mirroring framing.Config without importing the framing package (which
// itself imports records, to avoid a dependency cycle).
type Config struct {
	// PermitG22Heuristics gates the len%13==0 G2.2 record-size fallback and
	// the calibration 105-byte fallback (SPEC_FULL.md §4.2, §9).
	PermitG22Heuristics bool
}
