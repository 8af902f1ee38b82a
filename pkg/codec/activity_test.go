package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActivityChangeInfoRoundTrip(t *testing.T) {
	for v := 0; v <= 0xFFFF; v++ {
		raw := []byte{byte(v >> 8), byte(v)}
		decoded, err := DecodeActivityChangeInfo(raw)
		require.NoError(t, err)
		require.Equal(t, raw, decoded.Encode(), "round trip mismatch for 0x%04x", v)
	}
}

func TestActivityChangeInfoFields(t *testing.T) {
	// scpaattttttttttt: s=1 (co-driver), c=1 (crew), p=0 (inserted), aa=11 (driving), minutes=500
	word := uint16(1)<<15 | uint16(1)<<14 | uint16(0)<<13 | uint16(3)<<11 | uint16(500)
	raw := []byte{byte(word >> 8), byte(word)}
	d, err := DecodeActivityChangeInfo(raw)
	require.NoError(t, err)
	require.True(t, d.CoDriverSlot)
	require.True(t, d.Crew)
	require.False(t, d.CardWithdrawn)
	require.Equal(t, ActivityDriving, d.Kind)
	require.Equal(t, 500, d.MinuteOfDay)
}
