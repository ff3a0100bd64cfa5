package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentsMergesVariants(t *testing.T) {
	got := Comments([]string{"Great teacher", "great teacher!", "The teacher is great"})

	assert.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Count)
	// Display replacement requires a strictly shorter comment, so the first
	// seen wins over the equal-length "great teacher!".
	assert.Equal(t, "Great teacher", got[0].Text)
}

func TestCommentsKeepsDistinctComments(t *testing.T) {
	input := []string{
		"the coffee machine is broken",
		"classroom projector flickers",
		"homework portal keeps crashing",
	}
	got := Comments(input)

	assert.Len(t, got, 3)
	for i, c := range got {
		assert.Equal(t, input[i], c.Text)
		assert.Equal(t, 1, c.Count)
	}
}

func TestCommentsPrefersShorterDisplayText(t *testing.T) {
	got := Comments([]string{"The lessons are great fun", "lessons are great"})

	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "lessons are great", got[0].Text)
}

func TestCommentsFiltersNoiseAndNonEnglish(t *testing.T) {
	got := Comments([]string{
		"ok",
		"nothing",
		"Очень хорошо",
		"",
		"the wifi is slow",
		"WiFi is slow",
	})

	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "WiFi is slow", got[0].Text)
}

func TestCommentsSortsByCountDescending(t *testing.T) {
	got := Comments([]string{
		"food is cold",
		"slow wifi",
		"slow wifi!",
	})

	assert.Len(t, got, 2)
	assert.Equal(t, "slow wifi", got[0].Text)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "food is cold", got[1].Text)
	assert.Equal(t, 1, got[1].Count)
}

func TestCommentsEmptyInput(t *testing.T) {
	assert.Empty(t, Comments(nil))
	assert.Empty(t, Comments([]string{}))
}
