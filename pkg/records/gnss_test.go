package records

import (
	"testing"

	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/stretchr/testify/require"
)

func TestDecodeGNSSAccumulatedDriving(t *testing.T) {
	rec := make([]byte, gnssAccumulatedDrivingRecLen)
	copy(rec[0:4], []byte{0x60, 0x00, 0x00, 0x00})
	copy(rec[4:8], []byte{0x02, 0xFA, 0xF0, 0x80})  // lat raw
	copy(rec[8:12], []byte{0x00, 0x7A, 0x12, 0x00}) // lon raw
	copy(rec[12:14], []byte{0x00, 0x5A})            // speed
	copy(rec[14:16], []byte{0x00, 0x5A})            // heading

	res := &result.TachographFile{}
	err := DecodeGNSSAccumulatedDriving(res, result.GenerationG2_2, Config{}, rec)
	require.NoError(t, err)
	require.Len(t, res.GNSSPoints, 1)
	require.NotZero(t, res.GNSSPoints[0].Latitude)
	require.Equal(t, uint16(0x5A), res.GNSSPoints[0].SpeedKmh)
}

func TestDecodeGNSSAccumulatedDrivingSkipsSentinelTimestamp(t *testing.T) {
	rec := make([]byte, gnssAccumulatedDrivingRecLen) // all-zero: sentinel timestamp
	res := &result.TachographFile{}
	err := DecodeGNSSAccumulatedDriving(res, result.GenerationG2_2, Config{}, rec)
	require.NoError(t, err)
	require.Empty(t, res.GNSSPoints)
}

func TestDecodeGNSSAccumulatedDrivingRejectsBadLength(t *testing.T) {
	res := &result.TachographFile{}
	err := DecodeGNSSAccumulatedDriving(res, result.GenerationG2_2, Config{}, make([]byte, gnssAccumulatedDrivingRecLen+1))
	require.Error(t, err)
}
