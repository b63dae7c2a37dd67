package bsontemporal

/*
timeofday.go implements the time-of-day value type and its codec,
covering the double, int32, int64 and textual duration wire
representations, each paired with a selectable [TimeUnit].
*/

import (
	"math"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

/*
TimeOfDay is an elapsed time since midnight, stored as 100-nanosecond
ticks in the range [0, 24h). The zero value is midnight. Instances are
immutable.
*/
type TimeOfDay struct {
	ticks int64
}

/*
TimeOfDayFromTicks returns an instance of [TimeOfDay] alongside an
error following a range check of ticks against [0, 24h).
*/
func TimeOfDayFromTicks(ticks int64) (TimeOfDay, error) {
	if ticks < 0 || ticks >= ticksPerDay {
		return TimeOfDay{}, mkerrf("ticks ", ticks, " out of range for a time of day")
	}
	return TimeOfDay{ticks: ticks}, nil
}

/*
TimeOfDayFromDuration returns an instance of [TimeOfDay] alongside an
error following truncation of d to the tick scale and a range check
against [0, 24h).
*/
func TimeOfDayFromDuration(d time.Duration) (TimeOfDay, error) {
	return TimeOfDayFromTicks(d.Nanoseconds() / nanosecondsPerTick)
}

/*
TimeOfDayOf returns an instance of [TimeOfDay] alongside an error
following validation of the clock fields. nsec is truncated to the
tick scale.
*/
func TimeOfDayOf(hour, min, sec, nsec int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || min < 0 || min > 59 ||
		sec < 0 || sec > 59 || nsec < 0 || nsec > 999_999_999 {
		return TimeOfDay{}, mkerrf("invalid time of day ",
			hour, ":", min, ":", sec, ".", nsec)
	}
	ticks := int64(hour)*ticksPerHour + int64(min)*ticksPerMinute +
		int64(sec)*ticksPerSecond + int64(nsec)/nanosecondsPerTick
	return TimeOfDay{ticks: ticks}, nil
}

/*
Ticks returns the elapsed 100-nanosecond ticks since midnight.
*/
func (r TimeOfDay) Ticks() int64 { return r.ticks }

/*
Hour returns the hour of the receiver instance.
*/
func (r TimeOfDay) Hour() int { return int(r.ticks / ticksPerHour) }

/*
Minute returns the minute of the receiver instance.
*/
func (r TimeOfDay) Minute() int { return int(r.ticks % ticksPerHour / ticksPerMinute) }

/*
Second returns the second of the receiver instance.
*/
func (r TimeOfDay) Second() int { return int(r.ticks % ticksPerMinute / ticksPerSecond) }

/*
Nanosecond returns the sub-second portion of the receiver instance in
nanoseconds. It is always a multiple of 100.
*/
func (r TimeOfDay) Nanosecond() int {
	return int(r.ticks % ticksPerSecond * nanosecondsPerTick)
}

/*
Duration returns the receiver instance cast as a [time.Duration].
*/
func (r TimeOfDay) Duration() time.Duration {
	return time.Duration(r.ticks * nanosecondsPerTick)
}

/*
String returns the string representation of the receiver instance in
the form hh:mm:ss[.fffffff].
*/
func (r TimeOfDay) String() string { return formatDurationTicks(r.ticks) }

/*
formatDurationTicks renders ticks as [-][d.]hh:mm:ss[.fffffff]; the
seven fractional digits appear only when the fraction is nonzero.
*/
func formatDurationTicks(t int64) string {
	neg := t < 0
	if neg {
		t = -t
	}
	days := t / ticksPerDay
	rem := t % ticksPerDay
	hh := rem / ticksPerHour
	mm := rem % ticksPerHour / ticksPerMinute
	ss := rem % ticksPerMinute / ticksPerSecond
	frac := rem % ticksPerSecond

	b := make([]byte, 0, 26)
	if neg {
		b = append(b, '-')
	}
	if days > 0 {
		b = appInt(b, days, 10)
		b = append(b, '.')
	}
	put2 := func(v int64) {
		b = append(b, byte('0'+v/10), byte('0'+v%10))
	}
	put2(hh)
	b = append(b, ':')
	put2(mm)
	b = append(b, ':')
	put2(ss)
	if frac != 0 {
		b = append(b, '.')
		for div := int64(1_000_000); div > 0; div /= 10 {
			b = append(b, byte('0'+frac/div%10))
		}
	}
	return string(b)
}

/*
parseDurationTicks parses [-][d.]hh:mm:ss[.fffffff] strictly: two-digit
clock fields, hh below 24, one to seven fractional digits, a day count
small enough for the total to fit the int64 tick scale. Any deviation
fails.
*/
func parseDurationTicks(s string) (int64, error) {
	bad := func() (int64, error) {
		return 0, mkerrf("invalid duration ", s)
	}

	rest := s
	neg := false
	if len(rest) > 0 && rest[0] == '-' {
		neg = true
		rest = rest[1:]
	}

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return bad()
	}

	var days int64
	hhStart := 0
	if colon != 2 {
		// a day component precedes the clock: one or more digits and a dot
		dot := colon - 3
		if dot < 1 || rest[dot] != '.' {
			return bad()
		}
		dayStr := rest[:dot]
		if len(dayStr) > 8 {
			return bad()
		}
		for i := 0; i < len(dayStr); i++ {
			if !isDigit(dayStr[i]) {
				return bad()
			}
			days = days*10 + int64(dayStr[i]-'0')
		}
		hhStart = dot + 1
	}

	if len(rest) < hhStart+8 ||
		rest[hhStart+2] != ':' || rest[hhStart+5] != ':' {
		return bad()
	}
	for _, i := range []int{0, 1, 3, 4, 6, 7} {
		if !isDigit(rest[hhStart+i]) {
			return bad()
		}
	}
	toInt := func(b0, b1 byte) int64 { return int64(b0-'0')*10 + int64(b1-'0') }

	hh := toInt(rest[hhStart], rest[hhStart+1])
	mm := toInt(rest[hhStart+3], rest[hhStart+4])
	ss := toInt(rest[hhStart+6], rest[hhStart+7])
	if hh > 23 || mm > 59 || ss > 59 {
		return bad()
	}

	var frac int64
	if tail := rest[hhStart+8:]; len(tail) > 0 {
		if tail[0] != '.' || len(tail) < 2 || len(tail) > 8 {
			return bad()
		}
		for i := 1; i < len(tail); i++ {
			if !isDigit(tail[i]) {
				return bad()
			}
			frac = frac*10 + int64(tail[i]-'0')
		}
		// scale to seven fractional digits
		for i := len(tail); i < 8; i++ {
			frac *= 10
		}
	}

	clock := hh*ticksPerHour + mm*ticksPerMinute + ss*ticksPerSecond + frac
	if days > (math.MaxInt64-clock)/ticksPerDay {
		return bad()
	}
	ticks := days*ticksPerDay + clock
	if neg {
		ticks = -ticks
	}
	return ticks, nil
}

var tTimeOfDay = reflect.TypeOf(TimeOfDay{})

/*
TimeOfDayCodec encodes and decodes [TimeOfDay] values. The numeric
representations carry the value in the configured [TimeUnit]; decoding
dispatches on the wire type tag regardless of the configured
representation.
*/
type TimeOfDayCodec struct {
	representation bsontype.Type
	units          TimeUnit
}

/*
NewTimeOfDayCodec returns an instance of [TimeOfDayCodec] bound to
representation and units, or a [ConfigurationError] if representation
is not one of [bsontype.Double], [bsontype.Int32], [bsontype.Int64] or
[bsontype.String], or units is unknown.
*/
func NewTimeOfDayCodec(representation bsontype.Type, units TimeUnit) (*TimeOfDayCodec, error) {
	switch representation {
	case bsontype.Double, bsontype.Int32, bsontype.Int64, bsontype.String:
	default:
		return nil, errorBadRepresentation("TimeOfDay", representation)
	}
	if !validTimeUnit(units) {
		return nil, errorBadUnit("TimeOfDay", units)
	}
	return &TimeOfDayCodec{representation: representation, units: units}, nil
}

/*
Representation returns the wire representation the receiver writes.
*/
func (r *TimeOfDayCodec) Representation() bsontype.Type { return r.representation }

/*
Units returns the [TimeUnit] applied to the numeric representations.
*/
func (r *TimeOfDayCodec) Units() TimeUnit { return r.units }

/*
WithRepresentation returns the receiver instance when representation is
unchanged, otherwise a new, equally immutable [TimeOfDayCodec] with the
same units.
*/
func (r *TimeOfDayCodec) WithRepresentation(representation bsontype.Type) (*TimeOfDayCodec, error) {
	if representation == r.representation {
		return r, nil
	}
	return NewTimeOfDayCodec(representation, r.units)
}

/*
EncodeValue implements [bsoncodec.ValueEncoder].
*/
func (r *TimeOfDayCodec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tTimeOfDay {
		return bsoncodec.ValueEncoderError{
			Name:     "TimeOfDayCodec.EncodeValue",
			Types:    []reflect.Type{tTimeOfDay},
			Received: val,
		}
	}
	t := val.Interface().(TimeOfDay)

	switch r.representation {
	case bsontype.Double:
		f, err := ticksToFloat64(t.ticks, r.units)
		if err != nil {
			return err
		}
		return vw.WriteDouble(f)
	case bsontype.Int32:
		v, err := ticksToInt32(t.ticks, r.units)
		if err != nil {
			return err
		}
		return vw.WriteInt32(v)
	case bsontype.Int64:
		v, err := ticksToInt64(t.ticks, r.units)
		if err != nil {
			return err
		}
		return vw.WriteInt64(v)
	case bsontype.String:
		return vw.WriteString(formatDurationTicks(t.ticks))
	}
	return encodeErrorf("TimeOfDay: unsupported representation ", r.representation)
}

/*
DecodeValue implements [bsoncodec.ValueDecoder]. The wire type tag, not
the configured representation, selects the decode path.
*/
func (r *TimeOfDayCodec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tTimeOfDay {
		return bsoncodec.ValueDecoderError{
			Name:     "TimeOfDayCodec.DecodeValue",
			Types:    []reflect.Type{tTimeOfDay},
			Received: val,
		}
	}

	var ticks int64
	switch vr.Type() {
	case bsontype.Double:
		f, err := vr.ReadDouble()
		if err != nil {
			return err
		}
		if ticks, err = float64ToTicks(f, r.units); err != nil {
			return err
		}
	case bsontype.Int32:
		v, err := vr.ReadInt32()
		if err != nil {
			return err
		}
		if ticks, err = int32ToTicks(v, r.units); err != nil {
			return err
		}
	case bsontype.Int64:
		v, err := vr.ReadInt64()
		if err != nil {
			return err
		}
		if ticks, err = int64ToTicks(v, r.units); err != nil {
			return err
		}
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		if ticks, err = parseDurationTicks(s); err != nil {
			return decodeValueErrorf("TimeOfDay: ", err)
		}
	default:
		return errorWireTypeMismatch("TimeOfDay", vr.Type())
	}

	t, err := TimeOfDayFromTicks(ticks)
	if err != nil {
		return decodeValueErrorf("TimeOfDay: ", err)
	}
	val.Set(reflect.ValueOf(t))
	return nil
}
