package compliance

import (
	"sort"

	"github.com/alpinefleet/tachoscan/pkg/result"
)

// Evaluate runs every Art. 6/7/8 check over a timeline-built Activity
// sequence and returns the infraction list plus per-week aggregate
// counters (§4.4, §6). days supplies the day_distance_km figures the
// Activity sequence itself does not carry.
//
// Evaluation is a single pass: segment into shifts, then run the
// per-shift Art. 7/6.1/8 checks in shift (i.e. chronological) order so the
// weekly-extension and reduced-rest counters accumulate correctly, then the
// whole-file Art. 6.2/6.3/8.6 checks over the resulting week stats.
func Evaluate(acts []result.Activity, days []result.DailyActivityRecord) ([]Infraction, []WeekStats) {
	shifts := SegmentShifts(acts)

	var infractions []Infraction
	extensions := make(map[string]int)
	reducedRests := make(map[string]int)
	for _, s := range shifts {
		infractions = append(infractions, evaluateContinuousDriving(s)...)
		infractions = append(infractions, evaluateDailyDriving(s, extensions)...)
		infractions = append(infractions, evaluateDailyRest(s, reducedRests)...)
	}

	stats := computeWeekStats(shifts, days)
	infractions = append(infractions, evaluateWeeklyDriving(stats)...)
	infractions = append(infractions, evaluateWeeklyRestCompensation(acts)...)

	sort.SliceStable(infractions, func(i, j int) bool { return infractions[i].Date.Before(infractions[j].Date) })

	weeks := make([]WeekStats, 0, len(stats))
	for _, key := range sortedWeekKeys(stats) {
		weeks = append(weeks, *stats[key])
	}
	return infractions, weeks
}
