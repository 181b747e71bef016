package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnrestrictedWindowCoversEverything(t *testing.T) {
	got := Unrestricted.window(5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLevelWindowIncludesBoundaries(t *testing.T) {
	l := Level(1)
	got := l.window(100)
	assert.Contains(t, got, 0)
	assert.Contains(t, got, 99)
	assert.LessOrEqual(t, len(got), 3)
}

func TestLevelWindowFallsBackToFullRangeWhenSmall(t *testing.T) {
	l := Level(10)
	got := l.window(4)
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}
