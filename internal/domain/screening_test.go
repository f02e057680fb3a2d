package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreen(t *testing.T) {
	longDescription := "A well used mountain bike in good condition, pickup only."

	tests := []struct {
		name        string
		title       string
		description string
		passed      bool
		reason      string
	}{
		{
			name:        "clean listing passes",
			title:       "Mountain bike",
			description: longDescription,
			passed:      true,
		},
		{
			name:        "keyword in title",
			title:       "Great deal not a scam",
			description: longDescription,
			reason:      `Listing contains prohibited content: "scam"`,
		},
		{
			name:        "keyword in description",
			title:       "Designer bag",
			description: "Looks original but it is a replica, very convincing quality.",
			reason:      `Listing contains prohibited content: "replica"`,
		},
		{
			name:        "keyword match is case insensitive",
			title:       "COUNTERFEIT watches",
			description: longDescription,
			reason:      `Listing contains prohibited content: "counterfeit"`,
		},
		{
			name:        "earlier keyword in list order wins",
			title:       "fraud scam special",
			description: longDescription,
			reason:      `Listing contains prohibited content: "scam"`,
		},
		{
			name:        "short description",
			title:       "Old chair",
			description: "Just a chair.",
			reason:      "Description is too short.",
		},
		{
			name:        "shouty title",
			title:       "BUY THIS NOW really",
			description: longDescription,
			reason:      "Title contains excessive capitalization.",
		},
		{
			name:        "empty title skips capitalization check",
			title:       "",
			description: longDescription,
			passed:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Screen(tt.title, tt.description)
			assert.Equal(t, tt.passed, res.Passed)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

// The keyword scan runs before the length check, so a prohibited keyword in
// the title must be reported even when the description is also too short.
func TestScreenCheckOrderIsFixed(t *testing.T) {
	res := Screen("BUY NOW SCAM", "short")
	assert.False(t, res.Passed)
	assert.Equal(t, `Listing contains prohibited content: "scam"`, res.Reason)
}
