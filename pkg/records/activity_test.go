package records

import (
	"testing"
	"time"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/stretchr/testify/require"
)

// buildDayHeader encodes one activityDayHeaderLen-byte cyclic-buffer header:
// prev_len(2) + cur_len(2) + day_ts(4) + daily_presence(2 BCD) + day_distance(2).
func buildDayHeader(prevLen, curLen int, day time.Time, distanceKm int) []byte {
	h := make([]byte, activityDayHeaderLen)
	h[0], h[1] = byte(prevLen>>8), byte(prevLen)
	h[2], h[3] = byte(curLen>>8), byte(curLen)
	copy(h[4:8], codec.TimeReal(day.Unix()).Encode())
	h[8], h[9] = 0x00, 0x00 // daily presence counter BCD = 0
	h[10], h[11] = byte(distanceKm>>8), byte(distanceKm)
	return h
}

// TestDecodeCardDriverActivityWalksBackwardToChronologicalOrder builds a
// two-day cyclic buffer (oldest day1, newest day2 with one
// ActivityChangeInfo) and checks reconstruction visits each record exactly
// once and emits days in chronological order (§8 cyclic-buffer property).
func TestDecodeCardDriverActivityWalksBackwardToChronologicalOrder(t *testing.T) {
	day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	rec1 := buildDayHeader(0, activityDayHeaderLen, day1, 100) // no changes
	rec2 := buildDayHeader(len(rec1), activityDayHeaderLen+2, day2, 200)
	rec2 = append(rec2, 0x18, 0x64) // one ActivityChangeInfo: DRIVING at minute 100

	body := append(append([]byte{}, rec1...), rec2...)

	oldestPtr := 0
	newestPtr := len(rec1)

	payload := make([]byte, 4)
	payload[0], payload[1] = byte(oldestPtr>>8), byte(oldestPtr)
	payload[2], payload[3] = byte(newestPtr>>8), byte(newestPtr)
	payload = append(payload, body...)

	res := &result.TachographFile{}
	err := DecodeCardDriverActivity(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Len(t, res.Activities, 2)

	require.Equal(t, day1, res.Activities[0].Day)
	require.Equal(t, 100, res.Activities[0].DayDistanceKm)
	require.Empty(t, res.Activities[0].Changes)

	require.Equal(t, day2, res.Activities[1].Day)
	require.Equal(t, 200, res.Activities[1].DayDistanceKm)
	require.Len(t, res.Activities[1].Changes, 1)
	require.Equal(t, "DRIVING", res.Activities[1].Changes[0].Kind)
	require.Equal(t, day2.Add(100*time.Minute), res.Activities[1].Changes[0].Timestamp)
}

func TestDecodeCardDriverActivityEmptyPayloadIsNoop(t *testing.T) {
	res := &result.TachographFile{}
	err := DecodeCardDriverActivity(res, result.GenerationG1, Config{}, []byte{0, 0, 0, 0})
	require.NoError(t, err)
	require.Empty(t, res.Activities)
}

func TestWrapIndexHandlesNegativeAndOverflow(t *testing.T) {
	require.Equal(t, 0, wrapIndex(10, 10))
	require.Equal(t, 9, wrapIndex(-1, 10))
	require.Equal(t, 5, wrapIndex(15, 10))
}
