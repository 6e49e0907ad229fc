package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_ReturnsUTC(t *testing.T) {
	now := NewRealClock().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	c := NewMockClock(time.Date(2024, 1, 1, 7, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, time.Date(2024, 1, 1, 1, 30, 0, 0, time.UTC), c.Now())

	c.Set(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, c.Now().Year())
}
