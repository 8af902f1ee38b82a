package records

import (
	"testing"

	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/stretchr/testify/require"
)

func makeEventFaultPayload(groupIndex int, rec []byte) []byte {
	groupSize := eventFaultRecordLen // one record per group in this fixture
	payload := make([]byte, 6*groupSize)
	for g := 0; g < 6; g++ {
		start := g * groupSize
		if g == groupIndex {
			copy(payload[start:start+groupSize], rec)
			continue
		}
		// sentinel-empty record: type 0xFF, begin=end=0
		payload[start] = 0xFF
	}
	return payload
}

// §8 scenario 2: a single non-empty DrivingWithoutCard event produces
// exactly one events[] entry with the right group/begin/end, and driver
// identification is untouched.
func TestDecodeCardEventDataScenario2(t *testing.T) {
	rec := make([]byte, eventFaultRecordLen)
	rec[0] = 0x01                               // type code
	copy(rec[1:5], []byte{0x60, 0x00, 0x00, 0x00}) // begin
	copy(rec[5:9], []byte{0x60, 0x00, 0x0E, 0x10}) // end
	rec[9] = 0x03                               // nation
	copy(rec[10:24], []byte("AB123CD\x00\x00\x00\x00\x00\x00\x00"))

	payload := makeEventFaultPayload(5, rec) // DrivingWithoutCard is group index 5

	res := &result.TachographFile{}
	res.Driver.Surname = "untouched"
	err := DecodeCardEventData(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	require.Equal(t, "DrivingWithoutCard", res.Events[0].Group)
	require.True(t, res.Events[0].Begin.Before(res.Events[0].End))
	require.Equal(t, "untouched", res.Driver.Surname)
}

func TestDecodeCardEventDataAllEmptyProducesNoEvents(t *testing.T) {
	payload := make([]byte, 6*eventFaultRecordLen)
	for g := 0; g < 6; g++ {
		payload[g*eventFaultRecordLen] = 0xFF
	}
	res := &result.TachographFile{}
	err := DecodeCardEventData(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Empty(t, res.Events)
}

func TestDecodeCardFaultDataUsesSameGroupLayout(t *testing.T) {
	rec := make([]byte, eventFaultRecordLen)
	rec[0] = 0x02
	copy(rec[1:5], []byte{0x60, 0x00, 0x00, 0x00})
	copy(rec[5:9], []byte{0x60, 0x00, 0x01, 0x00})
	payload := makeEventFaultPayload(0, rec) // TimeOverlap

	res := &result.TachographFile{}
	err := DecodeCardFaultData(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Len(t, res.Faults, 1)
	require.Equal(t, "TimeOverlap", res.Faults[0].Group)
}
