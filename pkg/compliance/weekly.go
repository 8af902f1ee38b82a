package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/alpinefleet/tachoscan/pkg/result"
)

// computeWeekStats aggregates the §6 per-week counters: driving minutes and
// shift count from the shifts, distance from the daily activity records
// (the only place day_distance_km is carried), and qualifying breaks
// (REST ≥ shortBreakMin) from the shifts' activities.
func computeWeekStats(shifts []Shift, days []result.DailyActivityRecord) map[string]*WeekStats {
	stats := make(map[string]*WeekStats)
	get := func(week string) *WeekStats {
		w, ok := stats[week]
		if !ok {
			w = &WeekStats{WeekKey: week}
			stats[week] = w
		}
		return w
	}

	for _, s := range shifts {
		w := get(weekKey(s.Date))
		w.Shifts++
		w.DrivingMinutes += s.drivingMinutes()
		for _, a := range s.Activities {
			if a.Kind == "REST" && a.DurationMin >= shortBreakMin {
				w.Breaks++
			}
		}
	}
	for _, d := range days {
		w := get(weekKey(d.Day))
		w.DistanceKm += d.DayDistanceKm
	}
	return stats
}

// sortedWeekKeys returns the weeks present in stats in chronological order,
// needed because biweekly evaluation compares each week against the one
// immediately before it.
func sortedWeekKeys(stats map[string]*WeekStats) []string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys) // "YYYY-Www" leads with the year and zero-pads the week, so string order is chronological
	return keys
}

// evaluateWeeklyDriving implements Art. 6.2/6.3: a week's own driving total
// over weeklyDrivingLimitMin, and a week plus its immediate predecessor's
// total over biweeklyDrivingLimitMin.
func evaluateWeeklyDriving(stats map[string]*WeekStats) []Infraction {
	var out []Infraction
	keys := sortedWeekKeys(stats)
	weekStart := func(key string) time.Time { return isoWeekStart(key) }

	for i, key := range keys {
		w := stats[key]
		if w.DrivingMinutes > weeklyDrivingLimitMin {
			out = append(out, Infraction{
				Date:        weekStart(key),
				Category:    CategoryWeeklyDrivingOver56h,
				Severity:    SeverityVerySerious,
				Description: fmt.Sprintf("week %s driving of %d min exceeds the 56h (%d min) limit", key, w.DrivingMinutes, weeklyDrivingLimitMin),
			})
		}
		if i > 0 {
			prev := stats[keys[i-1]]
			combined := w.DrivingMinutes + prev.DrivingMinutes
			if combined > biweeklyDrivingLimitMin {
				out = append(out, Infraction{
					Date:        weekStart(key),
					Category:    CategoryBiweeklyDrivingOver90h,
					Severity:    SeverityVerySerious,
					Description: fmt.Sprintf("weeks %s+%s combined driving of %d min exceeds the 90h (%d min) limit", keys[i-1], key, combined, biweeklyDrivingLimitMin),
				})
			}
		}
	}
	return out
}

// isoWeekStart resolves a "YYYY-Www" key back to that week's Monday, purely
// so infractions can carry a concrete date; it is the inverse of weekKey.
func isoWeekStart(key string) time.Time {
	var year, week int
	if _, err := fmt.Sscanf(key, "%d-W%d", &year, &week); err != nil {
		return time.Time{}
	}
	// ISO week 1 contains January 4th; walk from there to the Monday of
	// the requested week.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	_, jan4Week := jan4.ISOWeek()
	monday := jan4.AddDate(0, 0, -int(jan4.Weekday()+6)%7)
	return monday.AddDate(0, 0, (week-jan4Week)*7)
}

// weeklyRestDeficit tracks one reduced weekly rest awaiting compensation.
type weeklyRestDeficit struct {
	deficitMin   int
	deadlineWeek string
}

// evaluateWeeklyRestCompensation implements Art. 8.6's compensation rule: a
// reduced weekly rest (≥ weeklyRestReducedMin, < weeklyRestRegularMin) must
// be topped up — by rest beyond the ordinary 9h daily minimum attached to a
// later rest — before the end of the third week following it. Rests are
// scanned in chronological order across the whole file, independent of
// shift boundaries, since a weekly rest is identified purely by its
// duration.
func evaluateWeeklyRestCompensation(acts []result.Activity) []Infraction {
	var out []Infraction
	var deficits []weeklyRestDeficit

	for _, a := range acts {
		if a.Kind != "REST" {
			continue
		}
		switch {
		case a.DurationMin >= weeklyRestReducedMin && a.DurationMin < weeklyRestRegularMin:
			deadline := addWeeks(weekKey(a.Start), compensationDeadlineWeeks)
			deficits = append(deficits, weeklyRestDeficit{
				deficitMin:   weeklyRestRegularMin - a.DurationMin,
				deadlineWeek: deadline,
			})
		case a.DurationMin > dailyRestReducedMin:
			surplus := a.DurationMin - dailyRestReducedMin
			week := weekKey(a.Start)
			for i := range deficits {
				if deficits[i].deficitMin <= 0 || week > deficits[i].deadlineWeek {
					continue
				}
				applied := min(surplus, deficits[i].deficitMin)
				deficits[i].deficitMin -= applied
				surplus -= applied
				if surplus <= 0 {
					break
				}
			}
		}
	}

	for _, d := range deficits {
		if d.deficitMin > 0 {
			out = append(out, Infraction{
				Date:        isoWeekStart(d.deadlineWeek),
				Category:    CategoryWeeklyRestCompensationMissing,
				Severity:    SeveritySerious,
				Description: fmt.Sprintf("reduced weekly rest short by %d min was not compensated by the end of week %s", d.deficitMin, d.deadlineWeek),
			})
		}
	}
	return out
}

func addWeeks(key string, n int) string {
	return weekKey(isoWeekStart(key).AddDate(0, 0, 7*n))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
