package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreSimilar(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical", "slow wifi", "slow wifi", true},
		{"substring containment", "wifi is slow", "the wifi is slow", true},
		{"containment is symmetric", "the wifi is slow", "wifi is slow", true},
		{"token overlap", "the coffee is bad", "coffee is very bad", true},
		{"reworded same theme", "great teacher", "the teacher is great", true},
		{"no shared tokens", "coffee machine broken", "teacher talks fast", false},
		{"length gap blocks overlap", "wifi slow", "the wifi in the main building drops every single afternoon", false},
		{"short tokens ignored", "it is ok up to", "is it to up so", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreSimilar(tt.a, tt.b))
		})
	}
}

func TestTokenOverlapThreshold(t *testing.T) {
	// Two of three tokens shared: 2 >= 0.6 * 3, a match.
	assert.True(t, AreSimilar("rooms are cold", "rooms always cold"))
	// One of three tokens shared: 1 < 0.6 * 3, no match.
	assert.False(t, AreSimilar("rooms are cold", "rooms need paint"))
}
