package bsontemporal

/*
duration.go implements the elapsed-time codec for [time.Duration],
sharing the unit converter and textual duration grammar with the
time-of-day codec but without the [0, 24h) range restriction.
*/

import (
	"math"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var tDuration = reflect.TypeOf(time.Duration(0))

/*
DurationCodec encodes and decodes [time.Duration] values. The numeric
representations carry the value in the configured [TimeUnit]; decoding
dispatches on the wire type tag regardless of the configured
representation.

Durations are carried on the 100-nanosecond tick scale; sub-tick
nanosecond precision is truncated on encode.
*/
type DurationCodec struct {
	representation bsontype.Type
	units          TimeUnit
}

/*
NewDurationCodec returns an instance of [DurationCodec] bound to
representation and units, or a [ConfigurationError] if representation
is not one of [bsontype.Double], [bsontype.Int32], [bsontype.Int64] or
[bsontype.String], or units is unknown.
*/
func NewDurationCodec(representation bsontype.Type, units TimeUnit) (*DurationCodec, error) {
	switch representation {
	case bsontype.Double, bsontype.Int32, bsontype.Int64, bsontype.String:
	default:
		return nil, errorBadRepresentation("Duration", representation)
	}
	if !validTimeUnit(units) {
		return nil, errorBadUnit("Duration", units)
	}
	return &DurationCodec{representation: representation, units: units}, nil
}

/*
Representation returns the wire representation the receiver writes.
*/
func (r *DurationCodec) Representation() bsontype.Type { return r.representation }

/*
Units returns the [TimeUnit] applied to the numeric representations.
*/
func (r *DurationCodec) Units() TimeUnit { return r.units }

/*
WithRepresentation returns the receiver instance when representation is
unchanged, otherwise a new, equally immutable [DurationCodec] with the
same units.
*/
func (r *DurationCodec) WithRepresentation(representation bsontype.Type) (*DurationCodec, error) {
	if representation == r.representation {
		return r, nil
	}
	return NewDurationCodec(representation, r.units)
}

/*
EncodeValue implements [bsoncodec.ValueEncoder].
*/
func (r *DurationCodec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDuration {
		return bsoncodec.ValueEncoderError{
			Name:     "DurationCodec.EncodeValue",
			Types:    []reflect.Type{tDuration},
			Received: val,
		}
	}
	ticks := int64(val.Interface().(time.Duration)) / nanosecondsPerTick

	switch r.representation {
	case bsontype.Double:
		f, err := ticksToFloat64(ticks, r.units)
		if err != nil {
			return err
		}
		return vw.WriteDouble(f)
	case bsontype.Int32:
		v, err := ticksToInt32(ticks, r.units)
		if err != nil {
			return err
		}
		return vw.WriteInt32(v)
	case bsontype.Int64:
		v, err := ticksToInt64(ticks, r.units)
		if err != nil {
			return err
		}
		return vw.WriteInt64(v)
	case bsontype.String:
		return vw.WriteString(formatDurationTicks(ticks))
	}
	return encodeErrorf("Duration: unsupported representation ", r.representation)
}

/*
DecodeValue implements [bsoncodec.ValueDecoder]. The wire type tag, not
the configured representation, selects the decode path.
*/
func (r *DurationCodec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDuration {
		return bsoncodec.ValueDecoderError{
			Name:     "DurationCodec.DecodeValue",
			Types:    []reflect.Type{tDuration},
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
			return decodeValueErrorf("Duration: ", err)
		}
	default:
		return errorWireTypeMismatch("Duration", vr.Type())
	}

	if ticks > math.MaxInt64/nanosecondsPerTick || ticks < math.MinInt64/nanosecondsPerTick {
		return decodeValueErrorf("Duration: ", ticks, " ticks overflows time.Duration")
	}
	val.SetInt(ticks * nanosecondsPerTick)
	return nil
}
