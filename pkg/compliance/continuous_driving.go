package compliance

import "fmt"

// evaluateContinuousDriving implements Art. 7 for one shift: a driving
// accumulator resets only on a cumulative REST of at least shortBreakMin
// minutes, or on a split of splitBreakFirstMin minutes then
// splitBreakSecondMin minutes in that order. AVAILABILITY and WORK neither
// accumulate nor reset it.
//
// The accumulator is checked only when DRIVING time is added (grounded in
// the teacher corpus's original_source/compliance_engine.py, which performs
// the same check-on-addition and resets to zero immediately after reporting
// to avoid re-flagging the same stretch). While a split's first part is
// pending, the check is suspended: intervening DRIVING does not trigger a
// premature infraction, since the regulation still allows the block to be
// closed out by the split's second part (§8 scenario 5).
func evaluateContinuousDriving(s Shift) []Infraction {
	var out []Infraction
	acc := 0
	pendingSplit := false

	for _, a := range s.Activities {
		switch a.Kind {
		case "DRIVING":
			acc += a.DurationMin
			if !pendingSplit && acc > continuousDrivingLimitMin {
				out = append(out, Infraction{
					Date:        s.Date,
					Category:    CategoryNoBreakAfter4h30,
					Severity:    SeveritySerious,
					Description: fmt.Sprintf("continuous driving of %d min exceeds the %d min limit without a qualifying break", acc, continuousDrivingLimitMin),
					EvidenceRefs: []string{fmt.Sprintf("activity:%s..%s", a.Start.Format("15:04"), a.End.Format("15:04"))},
				})
				acc = 0
				pendingSplit = false
			}
		case "REST":
			switch {
			case a.DurationMin >= shortBreakMin:
				acc = 0
				pendingSplit = false
			case pendingSplit && a.DurationMin >= splitBreakSecondMin:
				acc = 0
				pendingSplit = false
			case a.DurationMin >= splitBreakFirstMin:
				pendingSplit = true
			}
		}
	}
	return out
}
