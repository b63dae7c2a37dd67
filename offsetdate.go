package bsontemporal

/*
offsetdate.go implements the date-with-offset value type and its codec.
The UTC instant representation is special-cased (and documented lossy
with respect to the offset); the document, array and string
representations are delegated to an internal base strategy which
preserves the offset.
*/

import (
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const (
	// ticks between 0001-01-01T00:00Z and the Unix epoch, and the
	// last representable instant, 9999-12-31T23:59:59.9999999Z.
	unixEpochTicks  = 621_355_968_000_000_000
	maxInstantTicks = 3_155_378_975_999_999_999

	maxOffsetMinutes = 14 * 60
)

/*
OffsetDateTime couples a UTC instant, stored as 100-nanosecond ticks
since 0001-01-01T00:00Z, with an informational UTC offset in minutes.
The instant is always stored and transmitted in UTC; the offset is
preserved by every wire representation except the UTC instant form,
which drops it. Instances are immutable.
*/
type OffsetDateTime struct {
	ticks         int64
	offsetMinutes int16
}

/*
OffsetDateTimeFromTicks returns an instance of [OffsetDateTime]
alongside an error following range checks of the UTC tick instant, the
offset (at most ±14 hours) and the local clock time the two produce
together, which must also fall within years 1 through 9999.
*/
func OffsetDateTimeFromTicks(ticks int64, offsetMinutes int16) (OffsetDateTime, error) {
	if ticks < 0 || ticks > maxInstantTicks {
		return OffsetDateTime{}, mkerrf("instant ", ticks, " ticks out of range")
	}
	if offsetMinutes < -maxOffsetMinutes || offsetMinutes > maxOffsetMinutes {
		return OffsetDateTime{}, mkerrf("offset ", int(offsetMinutes), " minutes out of range")
	}
	if lticks := ticks + int64(offsetMinutes)*ticksPerMinute; lticks < 0 || lticks > maxInstantTicks {
		return OffsetDateTime{}, mkerrf("local clock time of instant ", ticks,
			" ticks at offset ", int(offsetMinutes), " minutes out of range")
	}
	return OffsetDateTime{ticks: ticks, offsetMinutes: offsetMinutes}, nil
}

/*
NewOffsetDateTime returns an instance of [OffsetDateTime] alongside an
error following an attempt to capture t's instant and zone offset.
Sub-tick nanosecond precision and sub-minute offset precision are
truncated.
*/
func NewOffsetDateTime(t time.Time) (OffsetDateTime, error) {
	_, offsetSec := t.Zone()
	return OffsetDateTimeFromTicks(timeToTicks(t), int16(offsetSec/60))
}

func timeToTicks(t time.Time) int64 {
	return unixEpochTicks + t.Unix()*ticksPerSecond +
		int64(t.Nanosecond())/nanosecondsPerTick
}

func ticksToTime(ticks int64) time.Time {
	rel := ticks - unixEpochTicks
	sec := rel / ticksPerSecond
	rem := rel % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*nanosecondsPerTick).UTC()
}

/*
Ticks returns the UTC instant of the receiver instance as
100-nanosecond ticks since 0001-01-01T00:00Z.
*/
func (r OffsetDateTime) Ticks() int64 { return r.ticks }

/*
OffsetMinutes returns the UTC offset of the receiver instance.
*/
func (r OffsetDateTime) OffsetMinutes() int16 { return r.offsetMinutes }

/*
UTC returns the instant of the receiver instance as a [time.Time] in
UTC.
*/
func (r OffsetDateTime) UTC() time.Time { return ticksToTime(r.ticks) }

/*
Time returns the instant of the receiver instance as a [time.Time] in
a fixed zone carrying the receiver's offset.
*/
func (r OffsetDateTime) Time() time.Time {
	return r.UTC().In(time.FixedZone("", int(r.offsetMinutes)*60))
}

/*
UnixMilli returns the UTC instant of the receiver instance as
milliseconds since the Unix epoch, rounded toward the past.
*/
func (r OffsetDateTime) UnixMilli() int64 {
	rel := r.ticks - unixEpochTicks
	q := rel / ticksPerMillisecond
	if rel%ticksPerMillisecond < 0 {
		q--
	}
	return q
}

/*
String returns the string representation of the receiver instance in
the form yyyy-MM-ddTHH:mm:ss[.fffffff]±hh:mm.
*/
func (r OffsetDateTime) String() string { return formatOffsetDateTime(r) }

func formatOffsetDateTime(r OffsetDateTime) string {
	lticks := r.ticks + int64(r.offsetMinutes)*ticksPerMinute
	lt := ticksToTime(lticks)
	frac := lticks % ticksPerSecond
	if frac < 0 {
		frac += ticksPerSecond
	}

	b := make([]byte, 0, 34)
	put2 := func(v int) {
		b = append(b, byte('0'+v/10), byte('0'+v%10))
	}
	year, month, day := lt.Date()
	b = append(b, byte('0'+year/1000%10), byte('0'+year/100%10),
		byte('0'+year/10%10), byte('0'+year%10))
	b = append(b, '-')
	put2(int(month))
	b = append(b, '-')
	put2(day)
	b = append(b, 'T')
	hh, mm, ss := lt.Clock()
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

	off := int(r.offsetMinutes)
	if off < 0 {
		b = append(b, '-')
		off = -off
	} else {
		b = append(b, '+')
	}
	put2(off / 60)
	b = append(b, ':')
	put2(off % 60)
	return string(b)
}

/*
parseOffsetDateTime parses yyyy-MM-ddTHH:mm:ss[.fffffff]±hh:mm
strictly. Any deviation fails.
*/
func parseOffsetDateTime(s string) (OffsetDateTime, error) {
	bad := func() (OffsetDateTime, error) {
		return OffsetDateTime{}, mkerrf("invalid offset date-time ", s)
	}
	if len(s) < 25 {
		return bad()
	}

	offStr := s[len(s)-6:]
	if (offStr[0] != '+' && offStr[0] != '-') || offStr[3] != ':' ||
		!isDigit(offStr[1]) || !isDigit(offStr[2]) ||
		!isDigit(offStr[4]) || !isDigit(offStr[5]) {
		return bad()
	}
	offMin := (int(offStr[1]-'0')*10+int(offStr[2]-'0'))*60 +
		int(offStr[4]-'0')*10 + int(offStr[5]-'0')
	if offStr[0] == '-' {
		offMin = -offMin
	}

	body := s[:len(s)-6]
	if body[10] != 'T' {
		return bad()
	}
	d, err := parseCalendarDate(body[:10])
	if err != nil {
		return bad()
	}
	timePart := body[11:]
	if len(timePart) < 8 || !isDigit(timePart[0]) || timePart[2] != ':' {
		return bad()
	}
	timeTicks, err := parseDurationTicks(timePart)
	if err != nil {
		return bad()
	}

	lticks := int64(dayNumber(d))*ticksPerDay + timeTicks
	return OffsetDateTimeFromTicks(lticks-int64(offMin)*ticksPerMinute, int16(offMin))
}

var tOffsetDateTime = reflect.TypeOf(OffsetDateTime{})

/*
OffsetDateTimeCodec encodes and decodes [OffsetDateTime] values. The
UTC instant representation intentionally drops the offset (decoding it
reconstructs a zero offset); the document, array and string
representations preserve it. Decoding dispatches on the wire type tag
regardless of the configured representation.
*/
type OffsetDateTimeCodec struct {
	representation bsontype.Type
	base           offsetDateTimeBase
}

/*
offsetDateTimeBase carries the offset-preserving representations the
codec does not special-case. It is the statically selected delegation
target for the document, array and string forms.
*/
type offsetDateTimeBase struct{}

/*
NewOffsetDateTimeCodec returns an instance of [OffsetDateTimeCodec]
bound to representation, or a [ConfigurationError] if representation
is not one of [bsontype.DateTime], [bsontype.Array],
[bsontype.EmbeddedDocument] or [bsontype.String].
*/
func NewOffsetDateTimeCodec(representation bsontype.Type) (*OffsetDateTimeCodec, error) {
	switch representation {
	case bsontype.DateTime, bsontype.Array, bsontype.EmbeddedDocument, bsontype.String:
		return &OffsetDateTimeCodec{representation: representation}, nil
	}
	return nil, errorBadRepresentation("OffsetDateTime", representation)
}

/*
Representation returns the wire representation the receiver writes.
*/
func (r *OffsetDateTimeCodec) Representation() bsontype.Type { return r.representation }

/*
WithRepresentation returns the receiver instance when representation is
unchanged, otherwise a new, equally immutable [OffsetDateTimeCodec].
*/
func (r *OffsetDateTimeCodec) WithRepresentation(representation bsontype.Type) (*OffsetDateTimeCodec, error) {
	if representation == r.representation {
		return r, nil
	}
	return NewOffsetDateTimeCodec(representation)
}

/*
EncodeValue implements [bsoncodec.ValueEncoder].
*/
func (r *OffsetDateTimeCodec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tOffsetDateTime {
		return bsoncodec.ValueEncoderError{
			Name:     "OffsetDateTimeCodec.EncodeValue",
			Types:    []reflect.Type{tOffsetDateTime},
			Received: val,
		}
	}
	v := val.Interface().(OffsetDateTime)

	switch r.representation {
	case bsontype.DateTime:
		// offset is dropped here: the instant is already UTC
		return vw.WriteDateTime(v.UnixMilli())
	case bsontype.Array:
		return r.base.encodeArray(vw, v)
	case bsontype.EmbeddedDocument:
		return r.base.encodeDocument(vw, v)
	case bsontype.String:
		return r.base.encodeString(vw, v)
	}
	return encodeErrorf("OffsetDateTime: unsupported representation ", r.representation)
}

/*
DecodeValue implements [bsoncodec.ValueDecoder]. The wire type tag, not
the configured representation, selects the decode path. A UTC instant
below the type's floor (0001-01-01T00:00Z) is clamped up to the floor.
*/
func (r *OffsetDateTimeCodec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tOffsetDateTime {
		return bsoncodec.ValueDecoderError{
			Name:     "OffsetDateTimeCodec.DecodeValue",
			Types:    []reflect.Type{tOffsetDateTime},
			Received: val,
		}
	}

	var v OffsetDateTime
	var err error
	switch vr.Type() {
	case bsontype.DateTime:
		var ms int64
		if ms, err = vr.ReadDateTime(); err != nil {
			return err
		}
		if ms < minDateTimeMillis {
			ms = minDateTimeMillis
		}
		if v, err = OffsetDateTimeFromTicks(unixEpochTicks+ms*ticksPerMillisecond, 0); err != nil {
			return decodeValueErrorf("OffsetDateTime: ", err)
		}
	case bsontype.Array:
		if v, err = r.base.decodeArray(vr); err != nil {
			return err
		}
	case bsontype.EmbeddedDocument:
		if v, err = r.base.decodeDocument(vr); err != nil {
			return err
		}
	case bsontype.String:
		if v, err = r.base.decodeString(vr); err != nil {
			return err
		}
	default:
		return errorWireTypeMismatch("OffsetDateTime", vr.Type())
	}

	val.Set(reflect.ValueOf(v))
	return nil
}

func (offsetDateTimeBase) encodeArray(vw bsonrw.ValueWriter, v OffsetDateTime) error {
	aw, err := vw.WriteArray()
	if err != nil {
		return err
	}
	evw, err := aw.WriteArrayElement()
	if err != nil {
		return err
	}
	if err = evw.WriteInt64(v.ticks); err != nil {
		return err
	}
	if evw, err = aw.WriteArrayElement(); err != nil {
		return err
	}
	if err = evw.WriteInt32(int32(v.offsetMinutes)); err != nil {
		return err
	}
	return aw.WriteArrayEnd()
}

func (offsetDateTimeBase) decodeArray(vr bsonrw.ValueReader) (OffsetDateTime, error) {
	ar, err := vr.ReadArray()
	if err != nil {
		return OffsetDateTime{}, err
	}
	evr, err := ar.ReadValue()
	if err == bsonrw.ErrEOA {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: array is missing the instant element")
	}
	if err != nil {
		return OffsetDateTime{}, err
	}
	ticks, err := evr.ReadInt64()
	if err != nil {
		return OffsetDateTime{}, err
	}
	evr, err = ar.ReadValue()
	if err == bsonrw.ErrEOA {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: array is missing the offset element")
	}
	if err != nil {
		return OffsetDateTime{}, err
	}
	offset, err := evr.ReadInt32()
	if err != nil {
		return OffsetDateTime{}, err
	}
	switch _, err = ar.ReadValue(); err {
	case bsonrw.ErrEOA:
	case nil:
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: array holds more than two elements")
	default:
		return OffsetDateTime{}, err
	}
	if offset < -maxOffsetMinutes || offset > maxOffsetMinutes {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: offset ", int(offset), " minutes out of range")
	}

	v, err := OffsetDateTimeFromTicks(ticks, int16(offset))
	if err != nil {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: ", err)
	}
	return v, nil
}

func (offsetDateTimeBase) encodeDocument(vw bsonrw.ValueWriter, v OffsetDateTime) error {
	dw, err := vw.WriteDocument()
	if err != nil {
		return err
	}
	fvw, err := dw.WriteDocumentElement("DateTime")
	if err != nil {
		return err
	}
	if err = fvw.WriteDateTime(v.UnixMilli()); err != nil {
		return err
	}
	if fvw, err = dw.WriteDocumentElement("Ticks"); err != nil {
		return err
	}
	if err = fvw.WriteInt64(v.ticks); err != nil {
		return err
	}
	if fvw, err = dw.WriteDocumentElement("Offset"); err != nil {
		return err
	}
	if err = fvw.WriteInt32(int32(v.offsetMinutes)); err != nil {
		return err
	}
	return dw.WriteDocumentEnd()
}

/*
decodeDocument reads the fields in whatever order they arrive. Ticks
and Offset are required; DateTime is informational on the wire and is
skipped on read.
*/
func (offsetDateTimeBase) decodeDocument(vr bsonrw.ValueReader) (OffsetDateTime, error) {
	dr, err := vr.ReadDocument()
	if err != nil {
		return OffsetDateTime{}, err
	}

	var ticks int64
	var offset int32
	var haveTicks, haveOffset bool
	for {
		name, fvr, err := dr.ReadElement()
		if err == bsonrw.ErrEOD {
			break
		}
		if err != nil {
			return OffsetDateTime{}, err
		}
		switch name {
		case "DateTime":
			if _, err = fvr.ReadDateTime(); err != nil {
				return OffsetDateTime{}, err
			}
		case "Ticks":
			if ticks, err = fvr.ReadInt64(); err != nil {
				return OffsetDateTime{}, err
			}
			haveTicks = true
		case "Offset":
			if offset, err = fvr.ReadInt32(); err != nil {
				return OffsetDateTime{}, err
			}
			haveOffset = true
		default:
			return OffsetDateTime{}, decodeValueErrorf(
				"OffsetDateTime: unexpected field ", name, " in offset date-time document")
		}
	}
	if !haveTicks || !haveOffset {
		return OffsetDateTime{}, decodeValueErrorf(
			"OffsetDateTime: offset date-time document requires Ticks and Offset fields")
	}
	if offset < -maxOffsetMinutes || offset > maxOffsetMinutes {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: offset ", int(offset), " minutes out of range")
	}

	v, err := OffsetDateTimeFromTicks(ticks, int16(offset))
	if err != nil {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: ", err)
	}
	return v, nil
}

func (offsetDateTimeBase) encodeString(vw bsonrw.ValueWriter, v OffsetDateTime) error {
	return vw.WriteString(formatOffsetDateTime(v))
}

func (offsetDateTimeBase) decodeString(vr bsonrw.ValueReader) (OffsetDateTime, error) {
	s, err := vr.ReadString()
	if err != nil {
		return OffsetDateTime{}, err
	}
	v, err := parseOffsetDateTime(s)
	if err != nil {
		return OffsetDateTime{}, decodeValueErrorf("OffsetDateTime: ", err)
	}
	return v, nil
}
