package bsontemporal

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type durationDoc struct {
	V time.Duration `bson:"v"`
}

func decodeDuration(t *testing.T, c *DurationCodec, doc bson.D) (time.Duration, error) {
	t.Helper()
	vr := fieldReader(t, doc)
	out := reflect.New(tDuration).Elem()
	err := c.DecodeValue(bsoncodec.DecodeContext{}, vr, out)
	if err != nil {
		return 0, err
	}
	return out.Interface().(time.Duration), nil
}

func TestNewDurationCodec_validation(t *testing.T) {
	var cfg ConfigurationError
	_, err := NewDurationCodec(bsontype.EmbeddedDocument, UnitTicks)
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfg))

	_, err = NewDurationCodec(bsontype.Int64, TimeUnit(-3))
	require.Error(t, err)
	assert.True(t, errors.As(err, &cfg))
}

func TestDurationCodec_int32Minutes(t *testing.T) {
	c, err := NewDurationCodec(bsontype.Int32, UnitMinutes)
	require.NoError(t, err)
	reg := registryWith(tDuration, c, c)

	rv := rawField(t, reg, durationDoc{V: 90 * time.Minute})
	require.Equal(t, bson.TypeInt32, rv.Type)
	assert.Equal(t, int32(90), rv.Int32())

	got, err := decodeDuration(t, c, bson.D{{Key: "v", Value: int32(90)}})
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, got)
}

func TestDurationCodec_stringRepresentation(t *testing.T) {
	c, err := NewDurationCodec(bsontype.String, UnitTicks)
	require.NoError(t, err)
	reg := registryWith(tDuration, c, c)

	cases := []struct {
		d time.Duration
		s string
	}{
		{0, "00:00:00"},
		{90 * time.Minute, "01:30:00"},
		{26*time.Hour + 3*time.Second, "1.02:00:03"},
		{-(time.Hour + 2*time.Minute + 3*time.Second + 400*time.Nanosecond), "-01:02:03.0000004"},
	}
	for _, cs := range cases {
		rv := rawField(t, reg, durationDoc{V: cs.d})
		require.Equal(t, bson.TypeString, rv.Type, cs.s)
		assert.Equal(t, cs.s, rv.StringValue())

		got, err := decodeDuration(t, c, bson.D{{Key: "v", Value: cs.s}})
		require.NoError(t, err, cs.s)
		assert.Equal(t, cs.d, got, cs.s)
	}
}

// Durations ride the 100 ns tick scale: finer precision truncates on
// encode.
func TestDurationCodec_subTickTruncation(t *testing.T) {
	c, err := NewDurationCodec(bsontype.Int64, UnitTicks)
	require.NoError(t, err)
	reg := registryWith(tDuration, c, c)

	rv := rawField(t, reg, durationDoc{V: time.Second + 99*time.Nanosecond})
	assert.Equal(t, int64(ticksPerSecond), rv.Int64())
}

func TestDurationCodec_crossRepresentationDecode(t *testing.T) {
	c, err := NewDurationCodec(bsontype.Int64, UnitSeconds)
	require.NoError(t, err)

	for i, doc := range []bson.D{
		{{Key: "v", Value: int64(3600)}},
		{{Key: "v", Value: int32(3600)}},
		{{Key: "v", Value: 3600.0}},
		{{Key: "v", Value: "01:00:00"}},
	} {
		got, err := decodeDuration(t, c, doc)
		require.NoError(t, err, "case %d", i)
		assert.Equal(t, time.Hour, got, "case %d", i)
	}

	var mismatch DecodeTypeMismatchError
	_, err = decodeDuration(t, c, bson.D{{Key: "v", Value: bson.D{}}})
	require.Error(t, err)
	assert.True(t, errors.As(err, &mismatch))
}

func TestDurationCodec_decodeOverflow(t *testing.T) {
	c, err := NewDurationCodec(bsontype.Int64, UnitTicks)
	require.NoError(t, err)

	var dve DecodeValueError
	_, err = decodeDuration(t, c, bson.D{{Key: "v", Value: int64(1) << 60}})
	require.Error(t, err)
	assert.True(t, errors.As(err, &dve))

	// a day count whose tick total cannot fit int64 is rejected rather
	// than wrapped
	for _, s := range []string{"21350410.00:00:00", "10675200.00:00:00"} {
		_, err = decodeDuration(t, c, bson.D{{Key: "v", Value: s}})
		require.Error(t, err, s)
		assert.True(t, errors.As(err, &dve), s)
	}
}

func TestDurationCodec_roundTripAllPairs(t *testing.T) {
	values := []time.Duration{
		0,
		time.Hour,
		-90 * time.Minute,
		26*time.Hour + 30*time.Minute,
	}
	reps := []bsontype.Type{bsontype.Double, bsontype.Int64, bsontype.String}
	units := []TimeUnit{UnitTicks, UnitMinutes, UnitMilliseconds, UnitNanoseconds}

	for _, rep := range reps {
		for _, u := range units {
			c, err := NewDurationCodec(rep, u)
			require.NoError(t, err)
			reg := registryWith(tDuration, c, c)
			for _, v := range values {
				if tpu, _ := ticksPerUnit(u); u != UnitNanoseconds && tpu > 1 && (v.Nanoseconds()/nanosecondsPerTick)%tpu != 0 {
					continue
				}
				raw, err := bson.MarshalWithRegistry(reg, durationDoc{V: v})
				require.NoError(t, err, "%s %s %s", rep, u, v)
				var out durationDoc
				require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out), "%s %s %s", rep, u, v)
				assert.Equal(t, v, out.V, "%s %s %s", rep, u, v)
			}
		}
	}
}
