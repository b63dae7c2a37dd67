package bsontemporal

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

/*
test plumbing shared by the codec tests.
*/

// registryWith binds a single codec pair to its value type.
func registryWith(rt reflect.Type, enc bsoncodec.ValueEncoder, dec bsoncodec.ValueDecoder) *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(rt, enc)
	reg.RegisterTypeDecoder(rt, dec)
	return reg
}

// fieldReader marshals doc and returns a ValueReader positioned on its
// sole field, ready for a direct DecodeValue call.
func fieldReader(t *testing.T, doc bson.D) bsonrw.ValueReader {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	dr, err := bsonrw.NewBSONDocumentReader(raw).ReadDocument()
	require.NoError(t, err)
	_, fvr, err := dr.ReadElement()
	require.NoError(t, err)
	return fvr
}

// rawField marshals wrapped with reg and returns the "v" element.
func rawField(t *testing.T, reg *bsoncodec.Registry, wrapped any) bson.RawValue {
	t.Helper()
	raw, err := bson.MarshalWithRegistry(reg, wrapped)
	require.NoError(t, err)
	return bson.Raw(raw).Lookup("v")
}

type temporalDoc struct {
	Date    Date           `bson:"date"`
	Clock   TimeOfDay      `bson:"clock"`
	Elapsed time.Duration  `bson:"elapsed"`
	Stamp   OffsetDateTime `bson:"stamp"`
}

func TestRegisterCodecs_roundTrip(t *testing.T) {
	reg := bson.NewRegistry()
	RegisterCodecs(reg)

	clock, err := TimeOfDayOf(13, 45, 30, 123_000_000)
	require.NoError(t, err)
	stamp, err := parseOffsetDateTime("2023-05-09T13:45:30+02:00")
	require.NoError(t, err)

	in := temporalDoc{
		Date:     Date{Year: 2023, Month: time.May, Day: 9},
		Clock:    clock,
		Elapsed:  90 * time.Minute,
		Stamp:    stamp,
	}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	var out temporalDoc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.Equal(t, in, out)
}

func TestRegisterCodecs_defaultRepresentations(t *testing.T) {
	reg := bson.NewRegistry()
	RegisterCodecs(reg)

	clock, err := TimeOfDayOf(1, 0, 0, 0)
	require.NoError(t, err)
	stamp, err := OffsetDateTimeFromTicks(unixEpochTicks, 120)
	require.NoError(t, err)

	raw, err := bson.MarshalWithRegistry(reg, temporalDoc{
		Date:    Date{Year: 2023, Month: time.May, Day: 9},
		Clock:   clock,
		Elapsed: time.Second,
		Stamp:   stamp,
	})
	require.NoError(t, err)

	doc := bson.Raw(raw)
	assert.Equal(t, bson.TypeDateTime, doc.Lookup("date").Type)
	assert.Equal(t, bson.TypeInt64, doc.Lookup("clock").Type)
	assert.Equal(t, bson.TypeInt64, doc.Lookup("elapsed").Type)
	assert.Equal(t, bson.TypeArray, doc.Lookup("stamp").Type)

	assert.Equal(t, int64(ticksPerHour), doc.Lookup("clock").Int64())
	assert.Equal(t, int64(ticksPerSecond), doc.Lookup("elapsed").Int64())
}

func TestDefaultCodecs_shared(t *testing.T) {
	// the defaults are singletons: rebinding to the same
	// representation must hand back the identical instance
	c, err := DefaultDateCodec.WithRepresentation(DefaultDateCodec.Representation())
	require.NoError(t, err)
	assert.Same(t, DefaultDateCodec, c)

	tc, err := DefaultTimeOfDayCodec.WithRepresentation(DefaultTimeOfDayCodec.Representation())
	require.NoError(t, err)
	assert.Same(t, DefaultTimeOfDayCodec, tc)
}
