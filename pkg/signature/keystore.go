package signature

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math/big"
	"strconv"
	"strings"
)

// KeyStore holds the long-lived root public keys a Verifier consults when a
// SignatureBlock carries a certificate reference instead of an inline key
// (§6 "SignerCertificate (optional)"). Keys are indexed by the 8-byte
// Certificate Holder Reference (CHR) carried in Annex 1B/1C certificates.
//
// This is a narrower adaptation of the teacher's certificate loader
// (originally internal/pkg/certificates, which embedded real ERCA/MSCA
// .bin files and walked a full non-root certificate chain): no key
// material ships with this module, so loading happens against a caller-
// supplied fs.FS at runtime instead of a go:embed directory, and only the
// self-contained root-key wire format is parsed here. Verifying a non-root
// card/VU certificate against its issuing root is chain-of-trust logic the
// spec places outside this boundary (§4.5 "the cryptographic verification
// itself is delegated"); KeyStore supplies the roots a caller's delegate
// would need to do that.
type KeyStore struct {
	rsaKeys   map[uint64]*rsa.PublicKey
	ecdsaKeys map[uint64]*ecdsa.PublicKey
}

func NewKeyStore() *KeyStore {
	return &KeyStore{
		rsaKeys:   make(map[uint64]*rsa.PublicKey),
		ecdsaKeys: make(map[uint64]*ecdsa.PublicKey),
	}
}

// LoadGen1Root parses a first-generation (ERCA/MSCA) root public key from
// its 144-byte wire format: 8-byte key identifier, 128-byte RSA modulus,
// 8-byte RSA exponent. Grounded byte-for-byte in the teacher's root-key
// parsing in certificates.go's init().
func (k *KeyStore) LoadGen1Root(raw []byte) (uint64, error) {
	const wantLen = 144
	if len(raw) != wantLen {
		return 0, fmt.Errorf("gen1 root key must be %d bytes, got %d", wantLen, len(raw))
	}
	chr := binary.BigEndian.Uint64(raw[0:8])
	n := new(big.Int).SetBytes(raw[8:136])
	e := new(big.Int).SetBytes(raw[136:144])
	k.rsaKeys[chr] = &rsa.PublicKey{N: n, E: int(e.Int64())}
	return chr, nil
}

// RegisterECDSA registers an already-parsed second-generation root key
// under chr, for callers that resolve Brainpool/NIST points themselves
// (e.g. via BrainpoolCurve) rather than through a KeyStore loader.
func (k *KeyStore) RegisterECDSA(chr uint64, pub *ecdsa.PublicKey) {
	k.ecdsaKeys[chr] = pub
}

func (k *KeyStore) RSAKey(chr uint64) (*rsa.PublicKey, bool) {
	pub, ok := k.rsaKeys[chr]
	return pub, ok
}

func (k *KeyStore) ECDSAKey(chr uint64) (*ecdsa.PublicKey, bool) {
	pub, ok := k.ecdsaKeys[chr]
	return pub, ok
}

// LoadDir walks fsys loading every "<16 hex digits>.bin" file as a gen1
// root key (the Annex 1B root-key naming convention the teacher's loader
// also relies on). Files that aren't 144 bytes are skipped rather than
// treated as an error, since a deployment's key directory may also hold
// non-root certificates this loader intentionally does not parse.
func (k *KeyStore) LoadDir(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.TrimSuffix(d.Name(), ".bin")
		if len(name) != 16 {
			return nil
		}
		if _, err := strconv.ParseUint(name, 16, 64); err != nil {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if len(raw) != 144 {
			return nil
		}
		_, err = k.LoadGen1Root(raw)
		return err
	})
}
