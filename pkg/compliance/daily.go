package compliance

import (
	"fmt"
	"time"
)

// evaluateDailyDriving implements Art. 6.1: a shift's total DRIVING time
// over 600 min is always a violation; over 540 and at most 600 min is an
// "extension" permitted at most maxWeeklyExtensions times per ISO week
// (tracked in extensions, keyed by week, mutated in place across shifts in
// week order).
func evaluateDailyDriving(s Shift, extensions map[string]int) []Infraction {
	total := s.drivingMinutes()
	week := weekKey(s.Date)

	switch {
	case total > dailyDrivingExtendedMin:
		return []Infraction{{
			Date:        s.Date,
			Category:    CategoryDailyDrivingOver10h,
			Severity:    SeverityVerySerious,
			Description: fmt.Sprintf("daily driving of %d min exceeds the 10h (600 min) limit", total),
		}}
	case total > dailyDrivingNormalMin:
		count := extensions[week]
		if count >= maxWeeklyExtensions {
			return []Infraction{{
				Date:        s.Date,
				Category:    CategoryExtraDailyExtension,
				Severity:    SeverityMinor,
				Description: fmt.Sprintf("daily driving of %d min is an extension beyond 9h, exceeding the %d permitted per week", total, maxWeeklyExtensions),
			}}
		}
		extensions[week] = count + 1
	}
	return nil
}

// evaluateDailyRest implements Art. 8: the longest continuous REST closing
// the shift must reach dailyRestRegularMin, or dailyRestReducedMin as a
// reduced rest — allowed at most maxReducedRests times between two weekly
// rests (approximated here as "per ISO week", tracked in reduced, mutated
// in place across shifts in week order). A split daily rest of
// splitRestFirstMin then dailyRestReducedMin within splitRestWindow counts
// as regular (§4.4 "Split rest of 3h + 9h").
//
// A shift with no REST activity at all is not evaluated: the file ended
// mid-shift before any closing rest was recorded, which is a truncation,
// not an infraction.
func evaluateDailyRest(s Shift, reduced map[string]int) []Infraction {
	rests := restActivities(s)
	if len(rests) == 0 {
		return nil
	}

	longest := 0
	for _, r := range rests {
		if r.DurationMin > longest {
			longest = r.DurationMin
		}
	}

	if isSplitDailyRest(rests) {
		return nil
	}

	week := weekKey(s.Date)
	switch {
	case longest >= dailyRestRegularMin:
		return nil
	case longest >= dailyRestReducedMin:
		count := reduced[week]
		reduced[week] = count + 1
		if count >= maxReducedRests {
			return []Infraction{{
				Date:        s.Date,
				Category:    CategoryReducedRestOveruse,
				Severity:    SeveritySerious,
				Description: fmt.Sprintf("reduced daily rest of %d min used for the %dth time this week, exceeding the %d permitted", longest, count+1, maxReducedRests),
			}}
		}
		return nil
	default:
		return []Infraction{{
			Date:        s.Date,
			Category:    CategoryInsufficientDailyRest,
			Severity:    SeverityVerySerious,
			Description: fmt.Sprintf("longest daily rest of %d min is below the %d min minimum", longest, dailyRestReducedMin),
		}}
	}
}

type restSpan struct {
	Start       time.Time
	DurationMin int
}

func restActivities(s Shift) []restSpan {
	var out []restSpan
	for _, a := range s.Activities {
		if a.Kind == "REST" {
			out = append(out, restSpan{Start: a.Start, DurationMin: a.DurationMin})
		}
	}
	return out
}

// isSplitDailyRest looks for two rests, in order, where the first reaches
// splitRestFirstMin and the second reaches dailyRestReducedMin, within
// splitRestWindow of each other.
func isSplitDailyRest(rests []restSpan) bool {
	for i := 0; i+1 < len(rests); i++ {
		first, second := rests[i], rests[i+1]
		if first.DurationMin >= splitRestFirstMin &&
			second.DurationMin >= dailyRestReducedMin &&
			second.Start.Sub(first.Start) <= splitRestWindow {
			return true
		}
	}
	return false
}
