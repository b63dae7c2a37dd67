/*
Package bsontemporal provides configurable BSON codecs for calendar and
clock scalar types: a date-only value ([Date]), a time-of-day value
([TimeOfDay]), an elapsed-time value ([time.Duration]) and a
date-with-offset value ([OffsetDateTime]).

Each codec is bound to a single wire representation at construction time
and writes that representation deterministically, yet decodes any of the
representations the type supports by dispatching on the wire type tag
encountered in the stream. Codec instances are immutable following
construction and may be shared freely across goroutines.

The codecs plug into the [go.mongodb.org/mongo-driver/bson/bsoncodec]
registry machinery; see [RegisterCodecs].
*/
package bsontemporal

/*
common.go contains elements, types and functions used by myriad
components throughout this package.
*/

import (
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsontype"
)

/*
official import aliases.
*/
var (
	mkerr    func(string) error                   = errors.New
	itoa     func(int) string                     = strconv.Itoa
	fmtInt   func(int64, int) string              = strconv.FormatInt
	fmtFloat func(float64, byte, int, int) string = strconv.FormatFloat
	appInt   func([]byte, int64, int) []byte      = strconv.AppendInt
)

func newStrBuilder() strings.Builder { return strings.Builder{} }

func mkerrf(parts ...any) error {
	if len(parts) == 0 {
		return nil
	}

	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case error:
			b.WriteString(v.Error())
		case bsontype.Type:
			b.WriteString(v.String())
		case TimeUnit:
			b.WriteString(v.String())
		case int:
			b.WriteString(itoa(v))
		case int32:
			b.WriteString(fmtInt(int64(v), 10))
		case int64:
			b.WriteString(fmtInt(v, 10))
		case float64:
			b.WriteString(fmtFloat(v, 'g', -1, 64))
		default:
			b.WriteString("<not supported>")
		}
	}

	return mkerr(b.String())
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
