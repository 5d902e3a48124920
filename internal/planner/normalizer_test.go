package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNilPayload(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestNormalizeDefaults(t *testing.T) {
	it := Normalize(map[string]any{})
	require.NotNil(t, it)

	assert.Equal(t, Unknown, it.Destination)
	assert.Equal(t, Unknown, it.TravelDate)
	assert.Equal(t, Unknown, it.Budget)
	assert.Equal(t, 0, it.DurationDays)
	assert.Empty(t, it.Days)
	assert.Empty(t, it.PreviousAddresses)
	assert.Empty(t, it.RelatedTours)
	assert.False(t, it.HasMore)
}

func TestNormalizeCasingVariantsAreEquivalent(t *testing.T) {
	camel := Normalize(map[string]any{
		"destination":  "Đà Lạt",
		"travelDate":   "2025-12-01",
		"durationDays": float64(3),
	})
	pascal := Normalize(map[string]any{
		"Destination":  "Đà Lạt",
		"TravelDate":   "2025-12-01",
		"DurationDays": float64(3),
	})
	snake := Normalize(map[string]any{
		"destination":   "Đà Lạt",
		"travel_date":   "2025-12-01",
		"duration_days": float64(3),
	})

	assert.Equal(t, camel, pascal)
	assert.Equal(t, camel, snake)
	assert.Equal(t, "Đà Lạt", camel.Destination)
	assert.Equal(t, 3, camel.DurationDays)
}

func TestNormalizeMixedCasingWithinOnePayload(t *testing.T) {
	// The history endpoint has been seen mixing conventions in a single
	// object; resolution must be independent per field.
	it := Normalize(map[string]any{
		"destination": "Huế",
		"TravelDate":  "2025-10-20",
		"group_type":  "gia đình",
	})

	assert.Equal(t, "Huế", it.Destination)
	assert.Equal(t, "2025-10-20", it.TravelDate)
	assert.Equal(t, "gia đình", it.GroupType)
}

func TestNormalizeCamelCaseWinsOverPascal(t *testing.T) {
	it := Normalize(map[string]any{
		"destination": "Hội An",
		"Destination": "stale value",
	})
	assert.Equal(t, "Hội An", it.Destination)
}

func TestNormalizeEmptyStringFallsThrough(t *testing.T) {
	it := Normalize(map[string]any{
		"destination": "  ",
		"Destination": "Sa Pa",
	})
	assert.Equal(t, "Sa Pa", it.Destination)
}

func TestNormalizeDaysAndActivities(t *testing.T) {
	payload := map[string]any{
		"Days": []any{
			map[string]any{
				"DayNumber": float64(1),
				"title":     "Khám phá trung tâm",
				"Activities": []any{
					map[string]any{
						"startTime":   "08:00",
						"end_time":    "10:00",
						"description": "Ăn sáng bún bò",
						"address":     "12 Lê Lợi",
					},
				},
			},
			"garbage entry",
			map[string]any{
				"day_number": float64(2),
			},
		},
	}

	it := Normalize(payload)
	require.Len(t, it.Days, 2)

	day1 := it.Days[0]
	assert.Equal(t, 1, day1.DayNumber)
	assert.Equal(t, "Khám phá trung tâm", day1.Title)
	require.Len(t, day1.Activities, 1)

	act := day1.Activities[0]
	assert.Equal(t, "08:00", act.StartTime)
	assert.Equal(t, "10:00", act.EndTime)
	assert.Equal(t, "Ăn sáng bún bò", act.Description)
	assert.Equal(t, "12 Lê Lợi", act.Address)
	assert.Equal(t, Unknown, act.EstimatedCost)

	assert.Equal(t, 2, it.Days[1].DayNumber)
	assert.Empty(t, it.Days[1].Activities)
}

func TestNormalizeActivityTimeSpellings(t *testing.T) {
	for _, key := range []string{"starttime", "startTime", "StartTime", "start_time"} {
		it := Normalize(map[string]any{
			"days": []any{
				map[string]any{
					"dayNumber":  float64(1),
					"activities": []any{map[string]any{key: "07:30"}},
				},
			},
		})
		require.Len(t, it.Days, 1)
		require.Len(t, it.Days[0].Activities, 1)
		assert.Equal(t, "07:30", it.Days[0].Activities[0].StartTime, "alias %s", key)
	}
}

func TestNormalizeDayNumberDefaultsToZero(t *testing.T) {
	it := Normalize(map[string]any{
		"days": []any{map[string]any{"title": "Ngày tự do"}},
	})
	require.Len(t, it.Days, 1)
	assert.Equal(t, 0, it.Days[0].DayNumber)
}

func TestNormalizeMalformedSequencesTreatedAsEmpty(t *testing.T) {
	it := Normalize(map[string]any{
		"days":              "not an array",
		"previousAddresses": float64(7),
		"relatedTours":      map[string]any{"id": "t1"},
	})

	assert.Empty(t, it.Days)
	assert.Empty(t, it.PreviousAddresses)
	assert.Empty(t, it.RelatedTours)
}

func TestNormalizePreferenceTagList(t *testing.T) {
	it := Normalize(map[string]any{
		"preferences": []any{"ẩm thực", "thiên nhiên"},
	})
	assert.Equal(t, "ẩm thực, thiên nhiên", it.Preferences)

	asString := Normalize(map[string]any{"Preferences": "ẩm thực, biển"})
	assert.Equal(t, "ẩm thực, biển", asString.Preferences)
}

func TestNormalizePaginationAndRelatedTours(t *testing.T) {
	it := Normalize(map[string]any{
		"has_more":          true,
		"nextStartDate":     "2025-12-04",
		"PreviousAddresses": []any{"Đà Lạt", "Nha Trang"},
		"related_tours": []any{
			map[string]any{"Id": "t-1", "title": "Tour thác Datanla", "price": "490000"},
		},
	})

	assert.True(t, it.HasMore)
	assert.Equal(t, "2025-12-04", it.NextStartDate)
	assert.Equal(t, []string{"Đà Lạt", "Nha Trang"}, it.PreviousAddresses)
	require.Len(t, it.RelatedTours, 1)
	assert.Equal(t, "t-1", it.RelatedTours[0].ID)
	assert.Equal(t, "Tour thác Datanla", it.RelatedTours[0].Title)
}

func TestNormalizeNumericCostStringified(t *testing.T) {
	it := Normalize(map[string]any{
		"days": []any{
			map[string]any{"dayNumber": float64(1), "dailyCost": float64(350000)},
		},
	})
	require.Len(t, it.Days, 1)
	assert.Equal(t, "350000", it.Days[0].DailyCost)
}

func TestNormalizeRoundTripsThroughJSON(t *testing.T) {
	// Payloads arrive as json.Unmarshal output; make sure the resolver
	// handles that shape end to end.
	raw := []byte(`{
		"Destination": "Phú Quốc",
		"duration": 2,
		"days": [
			{"day": 1, "activities": [{"start_time": "09:00", "Description": "Lặn ngắm san hô"}]}
		]
	}`)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	it := Normalize(payload)
	assert.Equal(t, "Phú Quốc", it.Destination)
	assert.Equal(t, 2, it.DurationDays)
	require.Len(t, it.Days, 1)
	require.Len(t, it.Days[0].Activities, 1)
	assert.Equal(t, "Lặn ngắm san hô", it.Days[0].Activities[0].Description)
}
