package records

import (
	"testing"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/stretchr/testify/require"
)

// §8 scenario 1: G1 VehiclesUsed ordering.
func TestDecodeCardVehiclesUsedScenario1(t *testing.T) {
	payload := []byte{
		0x00, 0x27, 0x10, // odometer_begin = 10000
		0x00, 0x27, 0x21, // odometer_end = 10017
		0x5E, 0x00, 0x00, 0x00, // first_use
		0x5E, 0x00, 0x0E, 0x10, // last_use
		0x03, // nation
		'A', 'B', '1', '2', '3', 'C', 'D', 0, 0, 0, 0, 0, 0, 0, // plate, 14 bytes
		0x00, 0x00, // counter (all-zero, not all-0xFF)
	}
	require.Len(t, payload, 31)

	res := &result.TachographFile{}
	err := DecodeCardVehiclesUsed(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Len(t, res.VehiclesUsed, 1)

	v := res.VehiclesUsed[0]
	require.Equal(t, uint32(10000), v.OdometerBegin)
	require.Equal(t, uint32(10017), v.OdometerEnd)
	require.Equal(t, "AB123CD", v.Plate)

	firstUse, err := codec.DecodeTimeReal(payload[6:10])
	require.NoError(t, err)
	require.Equal(t, firstUse.Time(), v.FirstUse)
	require.GreaterOrEqual(t, v.OdometerEnd, v.OdometerBegin)
}

func TestDecodeCardVehiclesUsedEmptyRecordSkipped(t *testing.T) {
	payload := make([]byte, 31) // all-zero record: begin=end=0, blank plate -> Empty
	res := &result.TachographFile{}
	err := DecodeCardVehiclesUsed(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Empty(t, res.VehiclesUsed)
}

func TestDecodeCardVehiclesUsedG2WithVIN(t *testing.T) {
	payload := make([]byte, 48)
	payload[2] = 0x64   // odometer_begin = 100
	payload[5] = 0xC8   // odometer_end = 200
	payload[14] = 0x03  // nation
	copy(payload[15:29], []byte("AB123CD\x00\x00\x00\x00\x00\x00\x00"))
	copy(payload[31:48], []byte("1HGCM82633A004352"))
	payload[29], payload[30] = 0xFF, 0xFF // all-0xFF counter: ignored

	res := &result.TachographFile{}
	err := DecodeCardVehiclesUsed(res, result.GenerationG2, Config{}, payload)
	require.NoError(t, err)
	require.Len(t, res.VehiclesUsed, 1)
	v := res.VehiclesUsed[0]
	require.Equal(t, uint32(100), v.OdometerBegin)
	require.Equal(t, uint32(200), v.OdometerEnd)
	require.Equal(t, "1HGCM82633A004352", v.VIN)
	require.False(t, v.CounterPresent)
}

func TestPickVehicleRecordLenRejectsUnknownSize(t *testing.T) {
	_, err := pickVehicleRecordLen(17)
	require.Error(t, err)
}
