package records

import (
	"testing"

	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/stretchr/testify/require"
)

func TestDecodeLoadUnload(t *testing.T) {
	rec := make([]byte, loadUnloadRecLen)
	copy(rec[0:4], []byte{0x60, 0x00, 0x00, 0x00})
	rec[4] = 1 // UNLOAD
	copy(rec[5:9], []byte{0x02, 0xFA, 0xF0, 0x80})
	copy(rec[9:13], []byte{0x00, 0x7A, 0x12, 0x00})

	res := &result.TachographFile{}
	err := DecodeLoadUnload(res, result.GenerationG2, Config{}, rec)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	require.Equal(t, "load_unload", res.Places[0].Kind)
	require.Equal(t, "UNLOAD", res.Places[0].Detail)
	require.NotNil(t, res.Places[0].Latitude)
}

func TestDecodeLoadUnloadStrictModeRejectsBadLength(t *testing.T) {
	res := &result.TachographFile{}
	err := DecodeLoadUnload(res, result.GenerationG2, Config{PermitG22Heuristics: false}, make([]byte, loadUnloadRecLen+1))
	require.Error(t, err)
}

func TestDecodeLoadUnloadHeuristicModeWarnsOnBadLength(t *testing.T) {
	res := &result.TachographFile{}
	err := DecodeLoadUnload(res, result.GenerationG2, Config{PermitG22Heuristics: true}, make([]byte, loadUnloadRecLen+1))
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
}

func TestDecodeTrailerRegistrations(t *testing.T) {
	rec := make([]byte, trailerRegistrationRecLen)
	copy(rec[0:4], []byte{0x60, 0x00, 0x00, 0x00})
	rec[4] = 0x03
	copy(rec[5:19], []byte("TRAILER-001\x00\x00\x00"))
	rec[19] = 1 // UNCOUPLED

	res := &result.TachographFile{}
	err := DecodeTrailerRegistrations(res, result.GenerationG2, Config{}, rec)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	require.Equal(t, "trailer_registration", res.Places[0].Kind)
	require.Contains(t, res.Places[0].Detail, "UNCOUPLED")
}

func TestDecodeBorderCrossings(t *testing.T) {
	rec := make([]byte, borderCrossingRecLen)
	copy(rec[0:4], []byte{0x60, 0x00, 0x00, 0x00})
	rec[4] = 0x0D // D
	rec[5] = 0x0F // E
	res := &result.TachographFile{}
	err := DecodeBorderCrossings(res, result.GenerationG2, Config{}, rec)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	require.Contains(t, res.Places[0].Detail, "from=D")
	require.Contains(t, res.Places[0].Detail, "to=E")
}

func TestDecodeLoadSensor(t *testing.T) {
	rec := make([]byte, loadSensorRecLen)
	copy(rec[0:4], []byte{0x60, 0x00, 0x00, 0x00})
	rec[4] = 2 // axle count
	copy(rec[5:7], []byte{0x0B, 0xB8})  // 3000
	copy(rec[7:9], []byte{0x0B, 0xB8})  // 3000

	res := &result.TachographFile{}
	err := DecodeLoadSensor(res, result.GenerationG2_2, Config{}, rec)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	require.Equal(t, "load_sensor", res.Places[0].Kind)
}
