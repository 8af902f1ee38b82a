package records

import (
	"fmt"
	"time"

	"github.com/alpinefleet/tachoscan/pkg/codec"
	"github.com/alpinefleet/tachoscan/pkg/result"
)

const activityDayHeaderLen = 12 // prev_len(2) + cur_len(2) + day_ts(4) + daily_presence(2) + day_distance(2)

const maxActivityDays = 400 // one card year plus slack; backstops a corrupt ring from looping forever

// DecodeCardDriverActivity handles tags 0x0504 (G1) and 0x0524 (G2): the
// cyclic activity buffer. Header is a 2-byte oldest pointer + 2-byte newest
// pointer into the circular body; each daily record is prev_len(2) +
// cur_len(2) + day_ts(4) + daily_presence(2 BCD) + day_distance_km(2) +
// ActivityChangeInfo[] (2 bytes each). Reconstruction walks backward from
// newest using prev_len until oldest is reached, with modular indexing over
// the body length standing in for the wrap-around (§4.2, §9 "Cyclic buffer
// walking").
func DecodeCardDriverActivity(res *result.TachographFile, gen result.Generation, cfg Config, payload []byte) error {
	if len(payload) < 4 {
		return fmt.Errorf("driver activity payload too short: %d bytes", len(payload))
	}
	oldestPtr, err := codec.UInt16(payload[0:2])
	if err != nil {
		return err
	}
	newestPtr, err := codec.UInt16(payload[2:4])
	if err != nil {
		return err
	}
	body := payload[4:]
	bodyLen := len(body)
	if bodyLen == 0 {
		return nil
	}

	var daysReversed []result.DailyActivityRecord
	pos := wrapIndex(int(newestPtr), bodyLen)
	oldest := wrapIndex(int(oldestPtr), bodyLen)

	for visited := 0; visited < maxActivityDays; visited++ {
		if bodyLen < activityDayHeaderLen {
			break
		}
		header := readWrapped(body, pos, activityDayHeaderLen)
		prevLen, err := codec.UInt16(header[0:2])
		if err != nil {
			return err
		}
		curLen, err := codec.UInt16(header[2:4])
		if err != nil {
			return err
		}
		dayTs, err := codec.DecodeTimeReal(header[4:8])
		if err != nil {
			return err
		}
		presenceCounter, _ := codec.BCD(header[8:10]).Decode()
		dayDistance, err := codec.UInt16(header[10:12])
		if err != nil {
			return err
		}

		day := result.DailyActivityRecord{
			Day:                  dayTs.Time(),
			DailyPresenceCounter: presenceCounter,
			DayDistanceKm:        int(dayDistance),
		}

		if int(curLen) > activityDayHeaderLen {
			changeBytes := readWrapped(body, wrapIndex(pos+activityDayHeaderLen, bodyLen), int(curLen)-activityDayHeaderLen)
			for i := 0; i+2 <= len(changeBytes); i += 2 {
				info, err := codec.DecodeActivityChangeInfo(changeBytes[i : i+2])
				if err != nil {
					continue
				}
				slot := "driver"
				if info.CoDriverSlot {
					slot = "co-driver"
				}
				day.Changes = append(day.Changes, result.ActivityChangeEvent{
					Timestamp:    dayTs.Time().Add(time.Duration(info.MinuteOfDay) * time.Minute),
					Slot:         slot,
					Crew:         info.Crew,
					CardInserted: !info.CardWithdrawn,
					Kind:         info.Kind.String(),
				})
			}
		}

		daysReversed = append(daysReversed, day)

		if pos == oldest || prevLen == 0 {
			break
		}
		pos = wrapIndex(pos-int(prevLen), bodyLen)
	}

	for i := len(daysReversed) - 1; i >= 0; i-- {
		res.Activities = append(res.Activities, daysReversed[i])
	}
	return nil
}

func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// readWrapped copies length bytes starting at start, wrapping around the
// end of body as many times as needed — the flat-slice-plus-modular-index
// representation of the circular buffer (§9).
func readWrapped(body []byte, start, length int) []byte {
	n := len(body)
	if n == 0 || length <= 0 {
		return nil
	}
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = body[wrapIndex(start+i, n)]
	}
	return out
}
