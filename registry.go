package bsontemporal

/*
registry.go wires the default codec instances into a
[bsoncodec.Registry].
*/

import (
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

/*
Shared default instances, one per codec type. Each is an immutable
constant value constructed once; callers needing another representation
derive their own instance via the constructors or WithRepresentation.
*/
var (
	DefaultDateCodec           = &DateCodec{representation: bsontype.DateTime}
	DefaultTimeOfDayCodec      = &TimeOfDayCodec{representation: bsontype.Int64, units: UnitTicks}
	DefaultDurationCodec       = &DurationCodec{representation: bsontype.Int64, units: UnitTicks}
	DefaultOffsetDateTimeCodec = &OffsetDateTimeCodec{representation: bsontype.Array}
)

/*
RegisterCodecs registers the default codec instances for [Date],
[TimeOfDay], [time.Duration] and [OffsetDateTime] upon reg.

Registrations are type-exact; use the individual constructors to
register alternative representations.
*/
func RegisterCodecs(reg *bsoncodec.Registry) {
	reg.RegisterTypeEncoder(tDate, DefaultDateCodec)
	reg.RegisterTypeDecoder(tDate, DefaultDateCodec)
	reg.RegisterTypeEncoder(tTimeOfDay, DefaultTimeOfDayCodec)
	reg.RegisterTypeDecoder(tTimeOfDay, DefaultTimeOfDayCodec)
	reg.RegisterTypeEncoder(tDuration, DefaultDurationCodec)
	reg.RegisterTypeDecoder(tDuration, DefaultDurationCodec)
	reg.RegisterTypeEncoder(tOffsetDateTime, DefaultOffsetDateTimeCodec)
	reg.RegisterTypeDecoder(tOffsetDateTime, DefaultOffsetDateTimeCodec)
}
