package framing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectGenerationIsPureOverByteInputs(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "G1"},
		{"one byte", []byte{0x76}, "G1"},
		{"G2 marker", []byte{0x76, 0x21, 0xFF, 0xFF}, "G2"},
		{"G2.2 marker", []byte{0x76, 0x31, 0x00, 0x00}, "G2_2"},
		{"unrelated bytes", []byte{0x05, 0x01, 0x00, 0x00}, "G1"},
		{"0x76 but wrong second byte", []byte{0x76, 0x99}, "G1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectGeneration(tc.data)
			require.Equal(t, tc.want, string(got))
			// purity: calling again with the same bytes gives the same answer.
			require.Equal(t, got, DetectGeneration(tc.data))
		})
	}
}

// driverAppIDPayload builds the 17-byte payload DecodeDriverApplicationIdentification expects.
func driverAppIDPayload() []byte {
	p := make([]byte, 17)
	copy(p[0:16], []byte("1234567890ABCDEF"))
	p[16] = 0x03
	return p
}

func stapRecord(tag uint16, recType byte, payload []byte) []byte {
	out := []byte{byte(tag >> 8), byte(tag), recType, byte(len(payload) >> 8), byte(len(payload))}
	return append(out, payload...)
}

func TestDecodeG1STAPDecodesKnownTagAndReturnsCoveredResult(t *testing.T) {
	data := stapRecord(0x0501, 0x00, driverAppIDPayload())
	res, err := Decode(data, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "1234567890ABCDEF", res.Driver.CardNumber)
	require.Empty(t, res.RawUnparsed)
}

func TestDecodeG1STAPSignatureSharesDataTag(t *testing.T) {
	sigPayload := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	data := append(stapRecord(0x0501, 0x00, driverAppIDPayload()), stapRecord(0x0501, 0x01, sigPayload)...)
	res, err := Decode(data, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.SignatureBlocks, 1)
	blk := res.SignatureBlocks[0]
	require.False(t, blk.Orphan)
	require.Equal(t, uint32(0x0501), blk.DataTag)
	require.Equal(t, "aabbccdd", blk.SignatureHex)
}

func berShort(tag uint16, payload []byte) []byte {
	out := []byte{byte(tag >> 8), byte(tag), byte(len(payload))}
	return append(out, payload...)
}

func loadUnloadPayload() []byte {
	rec := make([]byte, 13)
	copy(rec[0:4], []byte{0x60, 0x00, 0x00, 0x00})
	rec[4] = 0 // LOAD
	return rec
}

func TestDecodeG2ContainerRecursesThroughPaddedContainer(t *testing.T) {
	inner := berShort(0x0226, loadUnloadPayload())
	containerPayload := append([]byte{0x00, 0x00}, inner...) // 2-byte padding word
	container := append([]byte{0x76, 0x21, byte(len(containerPayload))}, containerPayload...)

	res, err := Decode(container, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	require.Equal(t, "load_unload", res.Places[0].Kind)
}

func TestDecodeG2SignaturePairsByAdjacency(t *testing.T) {
	dataRec := berShort(0x0226, loadUnloadPayload())
	sigPayload := []byte{0x11, 0x22}
	sigRec := berShort(0x0002, sigPayload)
	containerPayload := append([]byte{0x00, 0x00}, append(dataRec, sigRec...)...)
	container := append([]byte{0x76, 0x21, byte(len(containerPayload))}, containerPayload...)

	res, err := Decode(container, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.SignatureBlocks, 1)
	blk := res.SignatureBlocks[0]
	require.False(t, blk.Orphan)
	require.Equal(t, uint32(0x0226), blk.DataTag)
	require.Equal(t, "1122", blk.SignatureHex)
}

func TestDecodeG2OrphanSignatureHasNoPrecedingData(t *testing.T) {
	sigRec := berShort(0x0002, []byte{0x01})
	containerPayload := append([]byte{0x00, 0x00}, sigRec...)
	container := append([]byte{0x76, 0x21, byte(len(containerPayload))}, containerPayload...)

	res, err := Decode(container, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.SignatureBlocks, 1)
	require.True(t, res.SignatureBlocks[0].Orphan)
}

func TestDecodeMalformedLengthProducesRawUnparsed(t *testing.T) {
	// tag 0x0501, record type 0, declared length far exceeds remaining bytes.
	data := []byte{0x05, 0x01, 0x00, 0xFF, 0xFF, 0x01, 0x02}
	res, err := Decode(data, DefaultConfig())
	require.NoError(t, err)
	require.NotEmpty(t, res.RawUnparsed)
}

func TestDecodeUnknownTagBecomesRawUnparsed(t *testing.T) {
	data := stapRecord(0x0599, 0x00, []byte{0x01, 0x02, 0x03})
	res, err := Decode(data, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.RawUnparsed, 1)
	require.Equal(t, "0x599", res.RawUnparsed[0].TagHex)
}

func TestDecodeEmptyOrTinyInputIsNotTreatedAsMalformed(t *testing.T) {
	res, err := Decode([]byte{}, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, res)

	res, err = Decode([]byte{0x01, 0x02}, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, res)
}

func TestFallbackFrameTriesBERLongFormFirst(t *testing.T) {
	// tag(2) + long-form length byte 0x81 + 1 length byte (10) + 10 bytes payload.
	data := []byte{0x01, 0x02, 0x81, 0x0A, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	tag, length, headerLen, ok := fallbackFrame(data, 0, len(data))
	require.True(t, ok)
	require.Equal(t, uint16(0x0102), tag)
	require.Equal(t, 10, length)
	require.Equal(t, 4, headerLen) // 2-byte tag + 0x81 + 1 length byte
}

func TestFallbackFrameFallsBackToFourByteTagLength(t *testing.T) {
	// Construct input where long-form BER parse fails (the byte after the tag,
	// 0x00, has its high bit clear) so fallback must try 2+2 framing.
	data := []byte{0x01, 0x02, 0x00, 0x03, 0xAA, 0xBB, 0xCC}
	tag, length, headerLen, ok := fallbackFrame(data, 0, len(data))
	require.True(t, ok)
	require.Equal(t, uint16(0x0102), tag)
	require.Equal(t, 3, length)
	require.Equal(t, 4, headerLen)
}

func TestFallbackFrameShortFormAsLastResort(t *testing.T) {
	// Only 3 bytes total: tag(2) + one short-form length byte with no room
	// for a 2+2 interpretation's declared length to fit.
	data := []byte{0x01, 0x02, 0x00}
	tag, length, headerLen, ok := fallbackFrame(data, 0, len(data))
	require.True(t, ok)
	require.Equal(t, uint16(0x0102), tag)
	require.Equal(t, 0, length)
	require.Equal(t, 3, headerLen) // 2-byte tag + 1 short-form length byte
}
