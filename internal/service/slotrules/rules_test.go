package slotrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

func defaultRanges() []Range {
	return []Range{
		{Start: "13:30", End: "17:00"},
		{Start: "08:30", End: "12:00"},
	}
}

func TestRuleSet_EnumerateDailySlots(t *testing.T) {
	rules, err := NewRuleSet(defaultRanges(), 30)
	require.NoError(t, err)

	slots := rules.EnumerateDailySlots()

	require.Len(t, slots, 14)
	assert.Equal(t, types.TimeString("08:30"), slots[0])
	assert.Equal(t, types.TimeString("11:30"), slots[6])
	assert.Equal(t, types.TimeString("13:30"), slots[7])
	assert.Equal(t, types.TimeString("16:30"), slots[13])
	assert.NotContains(t, slots, types.TimeString("12:00"))
	assert.NotContains(t, slots, types.TimeString("17:00"))
}

func TestRuleSet_UnalignedRangeStart(t *testing.T) {
	rules, err := NewRuleSet([]Range{{Start: "08:45", End: "10:00"}}, 30)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, rules.EnumerateDailySlots())
	assert.False(t, rules.IsValid("08:45"))
}

func TestRuleSet_IsValidAgreesWithEnumeration(t *testing.T) {
	rules, err := NewRuleSet(defaultRanges(), 30)
	require.NoError(t, err)

	enumerated := make(map[types.TimeString]bool)
	for _, s := range rules.EnumerateDailySlots() {
		enumerated[s] = true
	}

	for m := 0; m < 24*60; m++ {
		ts := types.FromMinutes(m)
		assert.Equal(t, enumerated[ts], rules.IsValid(ts), "minute %s", ts)
	}
}

func TestRuleSet_IsValid(t *testing.T) {
	rules, err := NewRuleSet(defaultRanges(), 30)
	require.NoError(t, err)

	assert.True(t, rules.IsValid("08:30"))
	assert.True(t, rules.IsValid("16:30"))
	assert.False(t, rules.IsValid("12:00"))
	assert.False(t, rules.IsValid("12:30"))
	assert.False(t, rules.IsValid("09:15"))
	assert.False(t, rules.IsValid("garbage"))
}

func TestNewRuleSet_Errors(t *testing.T) {
	_, err := NewRuleSet(defaultRanges(), 0)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = NewRuleSet([]Range{{Start: "12:00", End: "08:30"}}, 30)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewRuleSet([]Range{{Start: "08:30", End: "12:00"}, {Start: "11:00", End: "13:00"}}, 30)
	assert.ErrorIs(t, err, ErrOverlappingRanges)
}
