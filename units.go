package bsontemporal

/*
units.go contains the externally selectable time units alongside the
pure conversion functions which move a value between a unit and the
internal 100-nanosecond tick scale for each numeric carrier.
*/

/*
TimeUnit selects the scale factor applied when a [TimeOfDay] or
[time.Duration] value is converted to or from its numeric wire form.
It is independent of the wire representation itself.
*/
type TimeUnit int

const (
	UnitTicks TimeUnit = iota
	UnitDays
	UnitHours
	UnitMinutes
	UnitSeconds
	UnitMilliseconds
	UnitMicroseconds
	UnitNanoseconds
)

/*
tick scale constants. One tick is 100 nanoseconds.
*/
const (
	nanosecondsPerTick  = 100
	ticksPerDay         = 864_000_000_000
	ticksPerHour        = 36_000_000_000
	ticksPerMinute      = 600_000_000
	ticksPerSecond      = 10_000_000
	ticksPerMillisecond = 10_000
	ticksPerMicrosecond = 10
)

/*
String returns the string representation of the receiver instance.
*/
func (r TimeUnit) String() string {
	switch r {
	case UnitTicks:
		return "Ticks"
	case UnitDays:
		return "Days"
	case UnitHours:
		return "Hours"
	case UnitMinutes:
		return "Minutes"
	case UnitSeconds:
		return "Seconds"
	case UnitMilliseconds:
		return "Milliseconds"
	case UnitMicroseconds:
		return "Microseconds"
	case UnitNanoseconds:
		return "Nanoseconds"
	}
	return itoa(int(r))
}

func validTimeUnit(u TimeUnit) bool {
	return UnitTicks <= u && u <= UnitNanoseconds
}

/*
ticksPerUnit returns the number of ticks per one u. Nanoseconds are
finer than the tick scale and never reach this function; the
asymmetric multiply/divide paths in the converters below handle them.
*/
func ticksPerUnit(u TimeUnit) (int64, error) {
	switch u {
	case UnitTicks:
		return 1, nil
	case UnitDays:
		return ticksPerDay, nil
	case UnitHours:
		return ticksPerHour, nil
	case UnitMinutes:
		return ticksPerMinute, nil
	case UnitSeconds:
		return ticksPerSecond, nil
	case UnitMilliseconds:
		return ticksPerMillisecond, nil
	case UnitMicroseconds:
		return ticksPerMicrosecond, nil
	}
	return 0, errorBadUnit("ticksPerUnit", u)
}

/*
The ordering below is load-bearing. A floating input multiplies before
the final truncating cast so that fractional units survive; a floating
output casts before dividing so that the fractional remainder survives.
Integer inputs widen before multiplying; integer outputs divide on the
tick scale and only then narrow. Rearranging any of these silently
changes which precision is lost and breaks bit-compatibility with
previously encoded data.
*/

func int32ToTicks(v int32, u TimeUnit) (int64, error) {
	if u == UnitNanoseconds {
		return int64(v) / nanosecondsPerTick, nil
	}
	tpu, err := ticksPerUnit(u)
	if err != nil {
		return 0, err
	}
	return int64(v) * tpu, nil
}

func int64ToTicks(v int64, u TimeUnit) (int64, error) {
	if u == UnitNanoseconds {
		return v / nanosecondsPerTick, nil
	}
	tpu, err := ticksPerUnit(u)
	if err != nil {
		return 0, err
	}
	return v * tpu, nil
}

func float64ToTicks(v float64, u TimeUnit) (int64, error) {
	if u == UnitNanoseconds {
		// divide first, truncate after
		return int64(v / nanosecondsPerTick), nil
	}
	tpu, err := ticksPerUnit(u)
	if err != nil {
		return 0, err
	}
	// multiply first, truncate after
	return int64(v * float64(tpu)), nil
}

func ticksToInt32(t int64, u TimeUnit) (int32, error) {
	if u == UnitNanoseconds {
		// may overflow the 32-bit carrier; the caller chose it
		return int32(t * nanosecondsPerTick), nil
	}
	tpu, err := ticksPerUnit(u)
	if err != nil {
		return 0, err
	}
	return int32(t / tpu), nil
}

func ticksToInt64(t int64, u TimeUnit) (int64, error) {
	if u == UnitNanoseconds {
		return t * nanosecondsPerTick, nil
	}
	tpu, err := ticksPerUnit(u)
	if err != nil {
		return 0, err
	}
	return t / tpu, nil
}

func ticksToFloat64(t int64, u TimeUnit) (float64, error) {
	if u == UnitNanoseconds {
		return float64(t) * nanosecondsPerTick, nil
	}
	tpu, err := ticksPerUnit(u)
	if err != nil {
		return 0, err
	}
	// cast first, divide after
	return float64(t) / float64(tpu), nil
}
