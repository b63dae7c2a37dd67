package bsontemporal

/*
date.go implements the date-only value codec, covering the structured
sub-document, ISO calendar string, day-number and UTC instant wire
representations.
*/

import (
	"reflect"
	"time"

	"github.com/golang-sql/civil"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

/*
Date is the calendar date value serialized by [DateCodec]. It aliases
[civil.Date] so that values interoperate with any other code built on
that type.
*/
type Date = civil.Date

/*
dayNumberEpoch anchors the proleptic day count: 0001-01-01 is day zero.
The count is bijective with (year, month, day) for years 1 through 9999.
*/
var dayNumberEpoch = Date{Year: 1, Month: time.January, Day: 1}

const (
	minDateYear  = 1
	maxDateYear  = 9999
	maxDayNumber = 3652058 // 9999-12-31

	// millisecond instants of 0001-01-01T00:00:00.000Z and
	// 9999-12-31T23:59:59.999Z, the floor and ceiling of the
	// UTC instant representation.
	minDateTimeMillis = -62_135_596_800_000
	maxDateTimeMillis = 253_402_300_799_999
)

func dayNumber(d Date) int { return d.DaysSince(dayNumberEpoch) }

func dateFromDayNumber(n int) (Date, error) {
	if n < 0 || n > maxDayNumber {
		return Date{}, mkerrf("day number ", n, " out of range")
	}
	return dayNumberEpoch.AddDays(n), nil
}

func dateInRange(d Date) bool {
	return d.IsValid() && minDateYear <= d.Year && d.Year <= maxDateYear
}

/*
parseCalendarDate parses YYYY-MM-DD strictly: fixed width, zero padded,
nothing else accepted.
*/
func parseCalendarDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, mkerrf("invalid calendar date ", s)
	}
	for _, i := range []int{0, 1, 2, 3, 5, 6, 8, 9} {
		if !isDigit(s[i]) {
			return Date{}, mkerrf("invalid calendar date ", s)
		}
	}
	toInt := func(b0, b1 byte) int { return int(b0-'0')*10 + int(b1-'0') }

	d := Date{
		Year:  toInt(s[0], s[1])*100 + toInt(s[2], s[3]),
		Month: time.Month(toInt(s[5], s[6])),
		Day:   toInt(s[8], s[9]),
	}
	if !dateInRange(d) {
		return Date{}, mkerrf("invalid calendar date ", s)
	}
	return d, nil
}

var tDate = reflect.TypeOf(Date{})

/*
DateCodec encodes and decodes [Date] values. Encoding writes the single
representation fixed at construction; decoding dispatches on the wire
type tag and accepts any representation this codec can produce.
*/
type DateCodec struct {
	representation bsontype.Type
}

/*
NewDateCodec returns an instance of [DateCodec] bound to representation,
or a [ConfigurationError] if representation is not one of
[bsontype.EmbeddedDocument], [bsontype.String], [bsontype.Int32] or
[bsontype.DateTime].
*/
func NewDateCodec(representation bsontype.Type) (*DateCodec, error) {
	switch representation {
	case bsontype.EmbeddedDocument, bsontype.String, bsontype.Int32, bsontype.DateTime:
		return &DateCodec{representation: representation}, nil
	}
	return nil, errorBadRepresentation("Date", representation)
}

/*
Representation returns the wire representation the receiver writes.
*/
func (r *DateCodec) Representation() bsontype.Type { return r.representation }

/*
WithRepresentation returns the receiver instance when representation is
unchanged, otherwise a new, equally immutable [DateCodec].
*/
func (r *DateCodec) WithRepresentation(representation bsontype.Type) (*DateCodec, error) {
	if representation == r.representation {
		return r, nil
	}
	return NewDateCodec(representation)
}

/*
EncodeValue implements [bsoncodec.ValueEncoder].
*/
func (r *DateCodec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDate {
		return bsoncodec.ValueEncoderError{
			Name:     "DateCodec.EncodeValue",
			Types:    []reflect.Type{tDate},
			Received: val,
		}
	}
	d := val.Interface().(Date)
	if !dateInRange(d) {
		return encodeErrorf("Date: ", d.String(), " is not a valid calendar date")
	}

	switch r.representation {
	case bsontype.EmbeddedDocument:
		return encodeDateDocument(vw, d)
	case bsontype.String:
		return vw.WriteString(d.String())
	case bsontype.Int32:
		return vw.WriteInt32(int32(dayNumber(d)))
	case bsontype.DateTime:
		return vw.WriteDateTime(d.In(time.UTC).UnixMilli())
	}
	return encodeErrorf("Date: unsupported representation ", r.representation)
}

func encodeDateDocument(vw bsonrw.ValueWriter, d Date) error {
	dw, err := vw.WriteDocument()
	if err != nil {
		return err
	}
	fields := []struct {
		name  string
		value int32
	}{
		{"Year", int32(d.Year)},
		{"Month", int32(d.Month)},
		{"Day", int32(d.Day)},
	}
	for _, f := range fields {
		fvw, err := dw.WriteDocumentElement(f.name)
		if err != nil {
			return err
		}
		if err = fvw.WriteInt32(f.value); err != nil {
			return err
		}
	}
	return dw.WriteDocumentEnd()
}

/*
DecodeValue implements [bsoncodec.ValueDecoder]. The wire type tag, not
the configured representation, selects the decode path.

A UTC instant is normalized and truncated to its calendar date; a
non-midnight time-of-day is silently discarded.
*/
func (r *DateCodec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDate {
		return bsoncodec.ValueDecoderError{
			Name:     "DateCodec.DecodeValue",
			Types:    []reflect.Type{tDate},
			Received: val,
		}
	}

	var d Date
	switch vr.Type() {
	case bsontype.EmbeddedDocument:
		dec, err := decodeDateDocument(vr)
		if err != nil {
			return err
		}
		d = dec
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		if d, err = parseCalendarDate(s); err != nil {
			return decodeValueErrorf("Date: ", err)
		}
	case bsontype.Int32:
		n, err := vr.ReadInt32()
		if err != nil {
			return err
		}
		if d, err = dateFromDayNumber(int(n)); err != nil {
			return decodeValueErrorf("Date: ", err)
		}
	case bsontype.DateTime:
		ms, err := vr.ReadDateTime()
		if err != nil {
			return err
		}
		if ms < minDateTimeMillis || ms > maxDateTimeMillis {
			return decodeValueErrorf("Date: instant ", ms, "ms is outside the representable range")
		}
		d = civil.DateOf(time.UnixMilli(ms).UTC())
	default:
		return errorWireTypeMismatch("Date", vr.Type())
	}

	val.Set(reflect.ValueOf(d))
	return nil
}

/*
decodeDateDocument reads the Year/Month/Day sub-document in whatever
field order it arrives, then requires all three fields to be present.
*/
func decodeDateDocument(vr bsonrw.ValueReader) (Date, error) {
	dr, err := vr.ReadDocument()
	if err != nil {
		return Date{}, err
	}

	fields := make(map[string]int32, 3)
	for {
		name, fvr, err := dr.ReadElement()
		if err == bsonrw.ErrEOD {
			break
		}
		if err != nil {
			return Date{}, err
		}
		switch name {
		case "Year", "Month", "Day":
			v, err := fvr.ReadInt32()
			if err != nil {
				return Date{}, err
			}
			fields[name] = v
		default:
			return Date{}, decodeValueErrorf("Date: unexpected field ", name, " in date document")
		}
	}

	y, okY := fields["Year"]
	m, okM := fields["Month"]
	dd, okD := fields["Day"]
	if !okY || !okM || !okD {
		return Date{}, decodeValueErrorf("Date: date document requires Year, Month and Day fields")
	}

	d := Date{Year: int(y), Month: time.Month(m), Day: int(dd)}
	if !dateInRange(d) {
		return Date{}, decodeValueErrorf("Date: ", d.String(), " is not a valid calendar date")
	}
	return d, nil
}
