// Package timeline turns the reconstructed ActivityChangeInfo stream
// (pkg/records' cyclic-buffer decode) into the contiguous, gap-filled,
// duration-annotated Activity sequence described in SPEC_FULL.md §4.3, which
// the compliance engine consumes.
package timeline

import (
	"sort"

	"github.com/alpinefleet/tachoscan/pkg/result"
)

// Build flattens every DailyActivityRecord's Changes across the whole file,
// orders them by absolute timestamp (ties broken by order of appearance, per
// §4.3), and folds the result into a contiguous list of Activity segments:
// one per state held between one change and the next. Adjacent segments of
// the same (kind, slot, card_inserted) are merged into a single, longer
// segment rather than reported as repeats.
//
// The timeline only covers the span between the first and last recorded
// change (§4.3): the final change has no known end, since there is no later
// change bounding it, so it is not emitted as a segment. A file with fewer
// than two changes in total produces no segments.
func Build(activities []result.DailyActivityRecord) []result.Activity {
	changes := flatten(activities)
	if len(changes) < 2 {
		return nil
	}

	var out []result.Activity
	for i := 0; i+1 < len(changes); i++ {
		cur := changes[i]
		next := changes[i+1]
		seg := result.Activity{
			Kind:         cur.Kind,
			Start:        cur.Timestamp,
			End:          next.Timestamp,
			Slot:         cur.Slot,
			CardInserted: cur.CardInserted,
		}
		seg.DurationMin = int(seg.End.Sub(seg.Start).Minutes())

		if n := len(out); n > 0 && sameState(out[n-1], seg) {
			out[n-1].End = seg.End
			out[n-1].DurationMin += seg.DurationMin
			continue
		}
		out = append(out, seg)
	}
	return out
}

func sameState(a, b result.Activity) bool {
	return a.Kind == b.Kind && a.Slot == b.Slot && a.CardInserted == b.CardInserted
}

// flatten collects every ActivityChangeEvent across every reconstructed day
// into a single stream ordered by absolute timestamp. sort.SliceStable
// preserves original appearance order for equal timestamps, matching the
// "ties broken by order of appearance" rule in §4.3.
func flatten(activities []result.DailyActivityRecord) []result.ActivityChangeEvent {
	var changes []result.ActivityChangeEvent
	for _, day := range activities {
		changes = append(changes, day.Changes...)
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Timestamp.Before(changes[j].Timestamp)
	})
	return changes
}
