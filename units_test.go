package bsontemporal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicksPerUnit(t *testing.T) {
	cases := []struct {
		unit TimeUnit
		tpu  int64
	}{
		{UnitTicks, 1},
		{UnitDays, 864_000_000_000},
		{UnitHours, 36_000_000_000},
		{UnitMinutes, 600_000_000},
		{UnitSeconds, 10_000_000},
		{UnitMilliseconds, 10_000},
		{UnitMicroseconds, 10},
	}
	for _, c := range cases {
		tpu, err := ticksPerUnit(c.unit)
		require.NoError(t, err, c.unit.String())
		assert.Equal(t, c.tpu, tpu, c.unit.String())
	}
}

func TestTicksPerUnit_unknownUnit(t *testing.T) {
	var cfg ConfigurationError
	_, err := ticksPerUnit(TimeUnit(99))
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfg))

	// nanoseconds never take the ticksPerUnit path
	_, err = ticksPerUnit(UnitNanoseconds)
	assert.Error(t, err)
}

// Round trips must not lose more precision than the unit's own
// granularity implies, so every input here is a whole multiple of its
// unit.
func TestUnitConversion_roundTrip(t *testing.T) {
	cases := []struct {
		unit  TimeUnit
		ticks int64
	}{
		{UnitTicks, 12345},
		{UnitDays, 3 * ticksPerDay},
		{UnitHours, 7 * ticksPerHour},
		{UnitMinutes, 90 * ticksPerMinute},
		{UnitSeconds, 3600 * ticksPerSecond},
		{UnitMilliseconds, 1500 * ticksPerMillisecond},
		{UnitMicroseconds, 250 * ticksPerMicrosecond},
		{UnitNanoseconds, 12345},
	}

	for _, c := range cases {
		v64, err := ticksToInt64(c.ticks, c.unit)
		require.NoError(t, err)
		back, err := int64ToTicks(v64, c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.ticks, back, "int64 %s", c.unit)

		f, err := ticksToFloat64(c.ticks, c.unit)
		require.NoError(t, err)
		back, err = float64ToTicks(f, c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.ticks, back, "float64 %s", c.unit)
	}
}

func TestUnitConversion_int32RoundTrip(t *testing.T) {
	cases := []struct {
		unit  TimeUnit
		ticks int64
	}{
		{UnitSeconds, 3600 * ticksPerSecond},
		{UnitMinutes, 90 * ticksPerMinute},
		{UnitHours, 23 * ticksPerHour},
		{UnitMilliseconds, 250 * ticksPerMillisecond},
	}
	for _, c := range cases {
		v32, err := ticksToInt32(c.ticks, c.unit)
		require.NoError(t, err)
		back, err := int32ToTicks(v32, c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.ticks, back, c.unit.String())
	}
}

func TestUnitConversion_nanosecondAsymmetry(t *testing.T) {
	// ticks carry 100 ns each: out multiplies, in divides
	out, err := ticksToInt64(12345, UnitNanoseconds)
	require.NoError(t, err)
	assert.Equal(t, int64(1_234_500), out)

	in, err := int64ToTicks(1_234_500, UnitNanoseconds)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), in)

	// sub-tick nanoseconds truncate toward the tick scale
	in, err = int64ToTicks(199, UnitNanoseconds)
	require.NoError(t, err)
	assert.Equal(t, int64(1), in)

	// double input divides before truncating
	in, err = float64ToTicks(1_234_500.0, UnitNanoseconds)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), in)

	f, err := ticksToFloat64(12345, UnitNanoseconds)
	require.NoError(t, err)
	assert.Equal(t, 1_234_500.0, f)
}

// The multiply-before-cast and cast-before-divide orderings are what
// keep fractional inputs and outputs exact; these cases fail under
// either reversal.
func TestUnitConversion_ordering(t *testing.T) {
	// 0.5 seconds must survive the truncating cast
	ticks, err := float64ToTicks(0.5, UnitSeconds)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), ticks)

	// half a second of ticks must come back as 0.5, not 0
	f, err := ticksToFloat64(5_000_000, UnitSeconds)
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	// 1.5 days
	ticks, err = float64ToTicks(1.5, UnitDays)
	require.NoError(t, err)
	assert.Equal(t, int64(ticksPerDay+ticksPerDay/2), ticks)
}

func TestTimeUnit_String(t *testing.T) {
	assert.Equal(t, "Seconds", UnitSeconds.String())
	assert.Equal(t, "Ticks", UnitTicks.String())
	assert.Equal(t, "99", TimeUnit(99).String())
}
