package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringListRoundTrip(t *testing.T) {
	original := StringList{"adult", "youth", "instructor"}

	value, err := original.Value()
	assert.NoError(t, err)

	var decoded StringList
	assert.NoError(t, decoded.Scan(value))
	assert.Equal(t, original, decoded)

	assert.True(t, decoded.Contains("youth"))
	assert.False(t, decoded.Contains("toddler"))

	var empty StringList
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}

func TestInitialCurriculum(t *testing.T) {
	curriculum := initialCurriculum()
	assert.NotEmpty(t, curriculum)

	seen := map[string]bool{}
	freeSamples := 0
	for _, l := range curriculum {
		assert.False(t, seen[l.ID], l.ID)
		seen[l.ID] = true

		assert.NotEmpty(t, l.Title, l.ID)
		assert.NotEmpty(t, l.Series, l.ID)
		assert.Greater(t, l.LessonNumber, 0, l.ID)
		assert.NotEmpty(t, l.EditionAccess, l.ID)

		if l.TierRequired == TierFree {
			freeSamples++
		}
	}

	// the Leap of Faith sample is the only free marketing lesson
	assert.Equal(t, 1, freeSamples)
}
