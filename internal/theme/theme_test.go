package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Theme
	}{
		{"technology", "the WIFI keeps dropping", Technology},
		{"facilities", "The room is too cold", Facilities},
		{"food and drink", "better coffee please", FoodDrink},
		{"learning", "more speaking practice", Learning},
		{"activities", "organise a weekend trip", Activities},
		{"scheduling", "longer breaks between sessions", Scheduling},
		{"no keyword", "everything was lovely", Other},
		{"empty", "", Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

// Learning is tested before Scheduling, so a text matching both resolves to
// Learning.
func TestClassifyPriorityOrder(t *testing.T) {
	assert.Equal(t, Learning, Classify("The class schedule is confusing"))
	assert.Equal(t, Technology, Classify("computer room too warm"))
}

func TestCount(t *testing.T) {
	got := Count([]string{
		"wifi down again",
		"no wifi in the lounge",
		"longer breaks please",
		"",
		"   ",
	})

	assert.Equal(t, []ThemeCount{
		{Theme: Technology, Count: 2},
		{Theme: Scheduling, Count: 1},
	}, got)
}

func TestCountEmpty(t *testing.T) {
	assert.Empty(t, Count(nil))
}
