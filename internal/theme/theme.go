// Package theme assigns free-text suggestions to a fixed category set by
// keyword membership.
package theme

import (
	"sort"
	"strings"
)

// Theme is one of the fixed suggestion categories.
type Theme string

const (
	Technology Theme = "Technology"
	Facilities Theme = "Facilities"
	FoodDrink  Theme = "Food & Drink"
	Learning   Theme = "Learning"
	Activities Theme = "Activities"
	Scheduling Theme = "Scheduling"
	Other      Theme = "Other"
)

type keywordGroup struct {
	theme    Theme
	keywords []string
}

// keywordGroups are evaluated in order, first match wins. The order resolves
// collisions: "class schedule" is Learning, not Scheduling, because Learning
// is tested first.
var keywordGroups = []keywordGroup{
	{Technology, []string{"wifi", "internet", "computer"}},
	{Facilities, []string{"chair", "table", "room", "air", "temperature", "light"}},
	{FoodDrink, []string{"coffee", "food", "snack", "water", "kitchen"}},
	{Learning, []string{"class", "lesson", "teacher", "homework", "grammar", "speaking", "practice"}},
	{Activities, []string{"event", "activity", "trip", "party", "social", "club"}},
	{Scheduling, []string{"schedule", "time", "hour", "break"}},
}

// Classify maps a suggestion to its theme, defaulting to Other.
func Classify(s string) Theme {
	lowered := strings.ToLower(s)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lowered, kw) {
				return group.theme
			}
		}
	}
	return Other
}

// ThemeCount is one theme with its number of suggestions.
type ThemeCount struct {
	Theme Theme `json:"theme"`
	Count int   `json:"count"`
}

// Count classifies each non-empty suggestion and returns per-theme counts
// sorted by count descending, ties keeping group order.
func Count(suggestions []string) []ThemeCount {
	counts := make(map[Theme]int)
	for _, s := range suggestions {
		if strings.TrimSpace(s) == "" {
			continue
		}
		counts[Classify(s)]++
	}

	order := make([]Theme, 0, len(keywordGroups)+1)
	for _, g := range keywordGroups {
		order = append(order, g.theme)
	}
	order = append(order, Other)

	out := make([]ThemeCount, 0, len(counts))
	for _, t := range order {
		if n, ok := counts[t]; ok {
			out = append(out, ThemeCount{Theme: t, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
