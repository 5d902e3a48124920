package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// The backend is inconsistent about field casing: the generation endpoint
// tends to return camelCase, the history endpoint PascalCase, and older
// payloads snake_case, sometimes mixed within one object. Resolution is
// therefore per field, not per payload: for each canonical field we probe
// camelCase, then PascalCase, then snake_case, and fall back to a default.

// aliases derives the probe order for a camelCase field name.
func aliases(camel string) []string {
	return []string{camel, pascalCase(camel), snakeCase(camel)}
}

func pascalCase(camel string) string {
	if camel == "" {
		return ""
	}
	return strings.ToUpper(camel[:1]) + camel[1:]
}

func snakeCase(camel string) string {
	var b strings.Builder
	for i, r := range camel {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pickString resolves the first alias that carries a non-empty string.
// Numbers are stringified so a payload that sends dailyCost as a bare
// number still renders.
func pickString(m map[string]any, keys []string, def string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case bool:
			return strconv.FormatBool(s)
		}
	}
	return def
}

func pickInt(m map[string]any, keys []string, def int) int {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return parsed
			}
		}
	}
	return def
}

func pickBool(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if v, ok := m[k].(bool); ok {
			return v
		}
	}
	return false
}

// pickList returns the first alias holding a JSON array. Anything that is
// not an array (including a malformed scalar under the right key) counts
// as absent.
func pickList(m map[string]any, keys []string) []any {
	for _, k := range keys {
		if v, ok := m[k].([]any); ok {
			return v
		}
	}
	return nil
}

// Normalize converts an arbitrary itinerary payload into the canonical
// shape. A nil map yields nil; everything else yields a fully populated
// Itinerary where strings default to Unknown, numbers to 0 and sequences
// to empty. It never fails: garbage nested entries are simply skipped.
func Normalize(raw map[string]any) *Itinerary {
	if raw == nil {
		return nil
	}

	it := &Itinerary{
		Destination:    pickString(raw, aliases("destination"), Unknown),
		TravelDate:     pickString(raw, aliases("travelDate"), Unknown),
		DurationDays:   pickInt(raw, append(aliases("durationDays"), aliases("duration")...), 0),
		Preferences:    normalizePreferences(raw),
		Budget:         pickString(raw, aliases("budget"), Unknown),
		TotalCost:      pickString(raw, append(aliases("totalCost"), aliases("totalEstimatedCost")...), Unknown),
		Transportation: pickString(raw, aliases("transportation"), Unknown),
		GroupType:      pickString(raw, append(aliases("groupType"), aliases("group")...), Unknown),
		Accommodation:  pickString(raw, aliases("accommodation"), Unknown),
		SuggestedStay:  pickString(raw, append(aliases("suggestedStay"), aliases("suggestedAccommodation")...), Unknown),
		HasMore:        pickBool(raw, aliases("hasMore")),
		NextStartDate:  pickString(raw, aliases("nextStartDate"), ""),
		Days:           []Day{},
	}

	for _, entry := range pickList(raw, aliases("days")) {
		if m, ok := entry.(map[string]any); ok {
			it.Days = append(it.Days, normalizeDay(m))
		}
	}

	it.PreviousAddresses = []string{}
	for _, entry := range pickList(raw, aliases("previousAddresses")) {
		if s, ok := entry.(string); ok && s != "" {
			it.PreviousAddresses = append(it.PreviousAddresses, s)
		}
	}

	it.RelatedTours = []RelatedTour{}
	for _, entry := range pickList(raw, aliases("relatedTours")) {
		if m, ok := entry.(map[string]any); ok {
			it.RelatedTours = append(it.RelatedTours, RelatedTour{
				ID:          pickString(m, aliases("id"), ""),
				Title:       pickString(m, aliases("title"), Unknown),
				Destination: pickString(m, aliases("destination"), Unknown),
				Price:       pickString(m, aliases("price"), Unknown),
				Image:       pickString(m, aliases("image"), ""),
			})
		}
	}

	return it
}

// normalizePreferences folds a preference tag array into the comma-joined
// form the rest of the app uses; a plain string is taken as-is.
func normalizePreferences(raw map[string]any) string {
	if list := pickList(raw, aliases("preferences")); list != nil {
		var tags []string
		for _, entry := range list {
			switch t := entry.(type) {
			case string:
				if t != "" {
					tags = append(tags, t)
				}
			case float64:
				tags = append(tags, strconv.FormatFloat(t, 'f', -1, 64))
			}
		}
		if len(tags) > 0 {
			return strings.Join(tags, ", ")
		}
		return Unknown
	}
	return pickString(raw, aliases("preferences"), Unknown)
}

func normalizeDay(raw map[string]any) Day {
	d := Day{
		DayNumber:   pickInt(raw, append(aliases("dayNumber"), aliases("day")...), 0),
		Title:       pickString(raw, aliases("title"), Unknown),
		DailyCost:   pickString(raw, aliases("dailyCost"), Unknown),
		Weather:     pickString(raw, aliases("weather"), ""),
		Temperature: pickString(raw, aliases("temperature"), ""),
		Activities:  []Activity{},
	}
	for _, entry := range pickList(raw, aliases("activities")) {
		if m, ok := entry.(map[string]any); ok {
			d.Activities = append(d.Activities, normalizeActivity(m))
		}
	}
	return d
}

// Activity times accept both the canonical lower-case spelling and the
// display-layer camel variants.
var (
	startTimeAliases = []string{"starttime", "startTime", "StartTime", "start_time"}
	endTimeAliases   = []string{"endtime", "endTime", "EndTime", "end_time"}
)

func normalizeActivity(raw map[string]any) Activity {
	return Activity{
		StartTime:      pickString(raw, startTimeAliases, Unknown),
		EndTime:        pickString(raw, endTimeAliases, Unknown),
		Description:    pickString(raw, aliases("description"), Unknown),
		EstimatedCost:  pickString(raw, aliases("estimatedCost"), Unknown),
		Transportation: pickString(raw, aliases("transportation"), Unknown),
		Address:        pickString(raw, aliases("address"), Unknown),
		PlaceDetail:    pickString(raw, aliases("placeDetail"), Unknown),
		MapURL:         pickString(raw, append(aliases("mapUrl"), "mapURL"), ""),
		Image:          pickString(raw, aliases("image"), ""),
	}
}

// Ref renders an ActivityRef for log lines.
func (r ActivityRef) String() string {
	return fmt.Sprintf("day %d / activity %d", r.DayNumber, r.ActivityIndex)
}
