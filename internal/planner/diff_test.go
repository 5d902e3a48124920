package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeActivity(desc string) Activity {
	return Activity{
		StartTime:      "09:00",
		EndTime:        "11:00",
		Description:    desc,
		EstimatedCost:  "200000",
		Transportation: "xe máy",
		Address:        Unknown,
		PlaceDetail:    Unknown,
	}
}

func makeItinerary(days ...Day) *Itinerary {
	return &Itinerary{Destination: "Đà Lạt", Days: days}
}

func TestDiffEqualItineraries(t *testing.T) {
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), makeActivity("b")}})
	fresh := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), makeActivity("b")}})

	assert.Empty(t, Diff(old, fresh, nil))
}

func TestDiffTailInsertion(t *testing.T) {
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), makeActivity("b")}})
	fresh := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), makeActivity("b"), makeActivity("c")}})

	changed := Diff(old, fresh, nil)
	require.Len(t, changed, 1)
	assert.Equal(t, ActivityRef{DayNumber: 1, ActivityIndex: 2}, changed[0])
}

func TestDiffFieldChange(t *testing.T) {
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), makeActivity("b")}})

	edited := makeActivity("b")
	edited.StartTime = "10:00"
	fresh := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), edited}})

	changed := Diff(old, fresh, nil)
	require.Len(t, changed, 1)
	assert.Equal(t, ActivityRef{DayNumber: 1, ActivityIndex: 1}, changed[0])
}

func TestDiffWhitespaceReformatIsFlagged(t *testing.T) {
	// Equality is byte-for-byte over the serialized record; a pure
	// reformat still counts as a change.
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("ăn sáng")}})
	fresh := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("ăn sáng ")}})

	assert.Len(t, Diff(old, fresh, nil), 1)
}

func TestDiffNewDay(t *testing.T) {
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a")}})
	fresh := makeItinerary(
		Day{DayNumber: 1, Activities: []Activity{makeActivity("a")}},
		Day{DayNumber: 2, Activities: []Activity{makeActivity("x"), makeActivity("y")}},
	)

	changed := Diff(old, fresh, nil)
	assert.ElementsMatch(t, []ActivityRef{
		{DayNumber: 2, ActivityIndex: 0},
		{DayNumber: 2, ActivityIndex: 1},
	}, changed)
}

func TestDiffRangeScopeExcludesOtherDays(t *testing.T) {
	old := makeItinerary(
		Day{DayNumber: 1, Activities: []Activity{makeActivity("a")}},
		Day{DayNumber: 2, Activities: []Activity{makeActivity("b")}},
		Day{DayNumber: 3, Activities: []Activity{makeActivity("c")}},
	)
	fresh := makeItinerary(
		Day{DayNumber: 1, Activities: []Activity{makeActivity("changed-1")}},
		Day{DayNumber: 2, Activities: []Activity{makeActivity("changed-2")}},
		Day{DayNumber: 3, Activities: []Activity{makeActivity("c")}},
	)

	changed := Diff(old, fresh, rangeScope(2, 2))
	require.Len(t, changed, 1)
	assert.Equal(t, 2, changed[0].DayNumber)
}

func TestDiffSingleActivityScope(t *testing.T) {
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a"), makeActivity("b")}})
	fresh := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a2"), makeActivity("b2")}})

	scope := &DiffScope{Activity: &ActivityRef{DayNumber: 1, ActivityIndex: 1}}
	changed := Diff(old, fresh, scope)

	require.Len(t, changed, 1)
	assert.Equal(t, ActivityRef{DayNumber: 1, ActivityIndex: 1}, changed[0])
}

func TestDiffNilOldItinerary(t *testing.T) {
	fresh := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a")}})

	changed := Diff(nil, fresh, nil)
	require.Len(t, changed, 1)
	assert.Equal(t, ActivityRef{DayNumber: 1, ActivityIndex: 0}, changed[0])
}

func TestDiffNilNewItinerary(t *testing.T) {
	old := makeItinerary(Day{DayNumber: 1, Activities: []Activity{makeActivity("a")}})
	assert.Empty(t, Diff(old, nil, nil))
}
