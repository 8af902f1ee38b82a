package compliance

import (
	"fmt"
	"time"

	"github.com/alpinefleet/tachoscan/pkg/result"
)

// Shift is a maximal driver-activity sequence bounded by daily rests of
// ≥ 9h (glossary "Shift"). Date is the calendar day attributed to the
// shift, used to key infractions and week stats.
type Shift struct {
	Date       time.Time
	Activities []result.Activity
}

// SegmentShifts partitions a chronological Activity sequence into shifts.
// A REST activity of at least dailyRestReducedMin minutes closes the shift
// it appears in (it is included as that shift's closing rest) and starts a
// fresh one. A trailing run with no closing rest (the file ends mid-shift)
// is still emitted as a shift, satisfying the partition law in §8: shifts
// cover all activities without overlap or gap.
func SegmentShifts(acts []result.Activity) []Shift {
	var shifts []Shift
	var current []result.Activity
	for _, a := range acts {
		current = append(current, a)
		if a.Kind == "REST" && a.DurationMin >= dailyRestReducedMin {
			shifts = append(shifts, Shift{Date: shiftDate(current), Activities: current})
			current = nil
		}
	}
	if len(current) > 0 {
		shifts = append(shifts, Shift{Date: shiftDate(current), Activities: current})
	}
	return shifts
}

// shiftDate attributes a shift to the calendar day of its first activity,
// which is also the day any triggering infraction is reported against
// (§4.4 "date (local day of the triggering event)").
func shiftDate(acts []result.Activity) time.Time {
	if len(acts) == 0 {
		return time.Time{}
	}
	return acts[0].Start
}

// drivingMinutes sums every DRIVING activity's duration within the shift.
func (s Shift) drivingMinutes() int {
	total := 0
	for _, a := range s.Activities {
		if a.Kind == "DRIVING" {
			total += a.DurationMin
		}
	}
	return total
}

// weekKey returns the ISO 8601 year-week identifier ("2026-W05") t falls in.
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
