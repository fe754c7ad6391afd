package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWeekKey(t *testing.T) {
	id, monday, ok := SplitWeekKey(WeekKey("e_2", "2024-01-08"))
	assert.True(t, ok)
	assert.Equal(t, "e_2", id)
	assert.Equal(t, "2024-01-08", monday)

	for _, key := range []string{"2024-01-08", "_2024-01-08", "e1-2024-01-08", ""} {
		_, _, ok = SplitWeekKey(key)
		assert.False(t, ok, key)
	}
}
