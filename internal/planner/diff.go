package planner

import "encoding/json"

// DiffScope narrows a diff to the part of the plan an instruction was
// allowed to touch. With Activity set, only that position is compared;
// with StartDay/EndDay set, only days inside [StartDay, EndDay]; a nil
// scope compares the whole plan.
type DiffScope struct {
	StartDay int
	EndDay   int
	Activity *ActivityRef
}

func rangeScope(startDay, chunkSize int) *DiffScope {
	return &DiffScope{StartDay: startDay, EndDay: startDay + chunkSize - 1}
}

func (s *DiffScope) coversDay(n int) bool {
	if s == nil {
		return true
	}
	if s.Activity != nil {
		return s.Activity.DayNumber == n
	}
	return n >= s.StartDay && n <= s.EndDay
}

func (s *DiffScope) coversActivity(day, idx int) bool {
	if s == nil || s.Activity == nil {
		return true
	}
	return s.Activity.DayNumber == day && s.Activity.ActivityIndex == idx
}

// Diff reports which activity positions changed between two snapshots of
// the same plan. Days are matched by DayNumber; within a day, activities
// are compared positionally by their full serialized form, so any field
// change (including a pure reformat) flags the position. Positions past
// the end of the old day are insertions and always flagged. The result
// feeds UI highlighting only.
func Diff(oldIt, newIt *Itinerary, scope *DiffScope) []ActivityRef {
	changed := []ActivityRef{}
	if newIt == nil {
		return changed
	}

	for _, newDay := range newIt.Days {
		if !scope.coversDay(newDay.DayNumber) {
			continue
		}

		var oldActs []Activity
		if oldIt != nil {
			if oldDay := oldIt.DayByNumber(newDay.DayNumber); oldDay != nil {
				oldActs = oldDay.Activities
			}
		}

		for i := range newDay.Activities {
			if !scope.coversActivity(newDay.DayNumber, i) {
				continue
			}
			if i >= len(oldActs) || !sameActivity(oldActs[i], newDay.Activities[i]) {
				changed = append(changed, ActivityRef{DayNumber: newDay.DayNumber, ActivityIndex: i})
			}
		}
	}

	return changed
}

// sameActivity compares two activities by structural serialization.
// Marshaling a flat struct of strings cannot fail, so the errors are
// ignored on purpose.
func sameActivity(a, b Activity) bool {
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return string(ab) == string(bb)
}
