package signature

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"math/big"

	"github.com/keybase/go-crypto/brainpool"
)

// Status is the outcome of attempting to verify one Pair.
type Status string

const (
	StatusValid        Status = "valid"
	StatusInvalid      Status = "invalid"
	StatusNoKey        Status = "no_key"   // no public key available for the signer referenced by the block
	StatusNotAttempted Status = "not_attempted"
	StatusOrphan       Status = "orphan"
)

// VerifyResult is returned for each Pair a Verifier is asked to check.
type VerifyResult struct {
	Status Status
	Detail string
}

// Verifier is the pluggable boundary spec.md assigns to chain-of-trust
// resolution: walking a card or VU certificate up to an ERCA root is left to
// the caller (§6, "certificate-chain verification is the collaborator's
// contract"). Implementations only need to check one signature against one
// already-resolved public key.
type Verifier interface {
	// VerifyRSA checks a first-generation signature (RSA, SHA-1, plain
	// PKCS#1-v1.5-shaped raw signature as used by Annex 1B).
	VerifyRSA(pub *rsa.PublicKey, signedData, signature []byte) VerifyResult

	// VerifyECDSA checks a second-generation signature (ECDSA over one of
	// the Brainpool or NIST curves named in Annex 1C/ Reg. 2023/980, with
	// SHA-256/384/512 chosen by curve size).
	VerifyECDSA(pub *ecdsa.PublicKey, signedData, signature []byte) VerifyResult
}

// DefaultVerifier is a direct, no-chain-walking reference implementation:
// it performs the raw cryptographic check and nothing else.
type DefaultVerifier struct{}

var _ Verifier = DefaultVerifier{}

// VerifyRSA reproduces the digital signature scheme used by first-generation
// tachograph cards and vehicle units: RSA with SHA-1 digest, signature
// recovered directly from the modulus (no ASN.1 DigestInfo wrapper, per
// Annex 1B Appendix 11).
func (DefaultVerifier) VerifyRSA(pub *rsa.PublicKey, signedData, sig []byte) VerifyResult {
	if pub == nil {
		return VerifyResult{Status: StatusNoKey}
	}
	digest := sha1.Sum(signedData)
	c := new(big.Int).SetBytes(sig)
	m := new(big.Int).Exp(c, big.NewInt(int64(pub.E)), pub.N)
	recovered := m.Bytes()
	// the recovered EM ends in the SHA-1 digest per the Annex 1B padding
	// scheme; compare the trailing 20 bytes.
	if len(recovered) < len(digest) {
		return VerifyResult{Status: StatusInvalid, Detail: "recovered message shorter than digest"}
	}
	tail := recovered[len(recovered)-len(digest):]
	for i := range digest {
		if tail[i] != digest[i] {
			return VerifyResult{Status: StatusInvalid, Detail: "digest mismatch"}
		}
	}
	return VerifyResult{Status: StatusValid}
}

// VerifyECDSA checks a second-generation ECDSA signature. Curve/hash
// selection follows the curve's field size, matching the pairing table in
// Annex 1C Appendix 11 (Brainpool P256/P384/P512, or NIST P-256/P-384/P-521).
func (DefaultVerifier) VerifyECDSA(pub *ecdsa.PublicKey, signedData, sig []byte) VerifyResult {
	if pub == nil {
		return VerifyResult{Status: StatusNoKey}
	}
	byteLen := (pub.Curve.Params().BitSize + 7) / 8
	if len(sig) != 2*byteLen {
		return VerifyResult{Status: StatusInvalid, Detail: "signature length does not match curve order size"}
	}
	r := new(big.Int).SetBytes(sig[:byteLen])
	s := new(big.Int).SetBytes(sig[byteLen:])

	digest, err := digestFor(byteLen, signedData)
	if err != nil {
		return VerifyResult{Status: StatusInvalid, Detail: err.Error()}
	}
	if ecdsa.Verify(pub, digest, r, s) {
		return VerifyResult{Status: StatusValid}
	}
	return VerifyResult{Status: StatusInvalid, Detail: "signature does not verify"}
}

func digestFor(curveByteLen int, data []byte) ([]byte, error) {
	switch {
	case curveByteLen <= 32:
		d := sha256.Sum256(data)
		return d[:], nil
	case curveByteLen <= 48:
		d := sha512.Sum384(data)
		return d[:], nil
	case curveByteLen <= 66:
		d := sha512.Sum512(data)
		return d[:], nil
	default:
		return nil, errors.New("unsupported curve size")
	}
}

// BrainpoolCurve resolves one of the Brainpool curves Annex 1C/Reg. 2023/980
// name by their field size, grounded on the keybase/go-crypto/brainpool
// package the teacher already depends on for second-generation certificates.
func BrainpoolCurve(bitSize int) (elliptic.Curve, error) {
	switch bitSize {
	case 256:
		return brainpool.P256r1(), nil
	case 384:
		return brainpool.P384r1(), nil
	case 512:
		return brainpool.P512r1(), nil
	default:
		return nil, errors.New("unsupported brainpool curve size")
	}
}
