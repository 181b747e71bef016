package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
)

func TestRawSlotDelegatesToRaw(t *testing.T) {
	slot := NewRawSlot(NewRaw(2, []int{5, 6}))

	assert.Equal(t, KindRaw, slot.Kind())
	assert.Equal(t, 2, slot.Vehicle())
	assert.Equal(t, 2, slot.Size())
	assert.Equal(t, 5, slot.At(0))

	require.NoError(t, slot.Add([]int{7}, 1))
	assert.Equal(t, []int{5, 7, 6}, slot.Jobs())

	require.NoError(t, slot.Reverse(0, 2))
	assert.Equal(t, []int{6, 7, 5}, slot.Jobs())

	_, ok := slot.TW()
	assert.False(t, ok)
}

func TestTWSlotDelegatesToTW(t *testing.T) {
	inst := fixture(t, nil, 10)
	tw, err := NewTW(&inst, 0, []int{0})
	require.NoError(t, err)
	slot := NewTWSlot(tw)

	assert.Equal(t, KindTW, slot.Kind())
	require.NoError(t, slot.Add([]int{1}, 1))
	assert.Equal(t, []int{0, 1}, slot.Jobs())

	got, ok := slot.TW()
	assert.True(t, ok)
	assert.Same(t, tw, got)

	_, ok = slot.Raw()
	assert.False(t, ok)
}

func TestSlotTotalLoad(t *testing.T) {
	rawSlot := NewRawSlot(NewRaw(0, []int{0, 1}))
	inst := fixture(t, nil, 10)
	assert.Equal(t, model.Amount{2}, rawSlot.TotalLoad(&inst))

	tw, err := NewTW(&inst, 0, []int{0, 1})
	require.NoError(t, err)
	twSlot := NewTWSlot(tw)
	assert.Equal(t, model.Amount{2}, twSlot.TotalLoad(&inst))
}
