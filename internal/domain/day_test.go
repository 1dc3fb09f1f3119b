package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfTruncatesTime(t *testing.T) {
	late := time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)
	early := time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, Day("2024-06-01"), DayOf(late))
	assert.Equal(t, DayOf(late), DayOf(early), "same calendar day regardless of clock time")
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-06-01"), d)

	_, err = ParseDay("01/06/2024")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)

	_, err = ParseDay("2024-13-45")
	assert.Error(t, err)
}

func TestDayTime(t *testing.T) {
	d := Day("2024-06-01")
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d.Time())

	assert.True(t, Day("").Time().IsZero())
}
