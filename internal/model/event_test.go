package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartsAt(t *testing.T) {
	e := Event{EventDate: "2026-07-01", EventTime: "19:30:00"}
	assert.Equal(t, time.Date(2026, 7, 1, 19, 30, 0, 0, time.UTC), e.StartsAt())

	assert.True(t, Event{EventDate: "garbage", EventTime: "19:30:00"}.StartsAt().IsZero())
	assert.True(t, Event{}.StartsAt().IsZero())
}

func TestIsPast(t *testing.T) {
	e := Event{EventDate: "2026-07-01", EventTime: "19:30:00"}

	assert.False(t, e.IsPast(time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC)))
	assert.True(t, e.IsPast(time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC)))
	// The exact start instant is not past yet.
	assert.False(t, e.IsPast(time.Date(2026, 7, 1, 19, 30, 0, 0, time.UTC)))
	// Unparseable rows never count as past.
	assert.False(t, Event{EventDate: "garbage"}.IsPast(time.Now()))
}
