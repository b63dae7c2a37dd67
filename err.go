package bsontemporal

/*
err.go contains the error kinds raised throughout this package,
alongside their constructors.
*/

import "go.mongodb.org/mongo-driver/bson/bsontype"

/*
types which implement the error interface.

[ConfigurationError] is raised at codec construction time only, for an
unsupported representation or time unit. [EncodeError] is raised when a
codec's configured representation reaches a switch arm the constructor
should have made unreachable, or when the value itself cannot be
expressed in the configured representation. [DecodeTypeMismatchError]
is raised when the wire type tag encountered during decode is not one
the codec understands for its value type. [DecodeValueError] is raised
when wire data of an understood type is semantically invalid.
*/
type (
	ConfigurationError      struct{ e error }
	EncodeError             struct{ e error }
	DecodeTypeMismatchError struct{ e error }
	DecodeValueError        struct{ e error }
)

func (r ConfigurationError) Error() string      { return `CONFIGURATION ERROR: ` + r.e.Error() }
func (r EncodeError) Error() string             { return `ENCODE ERROR: ` + r.e.Error() }
func (r DecodeTypeMismatchError) Error() string { return `DECODE TYPE MISMATCH: ` + r.e.Error() }
func (r DecodeValueError) Error() string        { return `DECODE VALUE ERROR: ` + r.e.Error() }

func (r ConfigurationError) Unwrap() error      { return r.e }
func (r EncodeError) Unwrap() error             { return r.e }
func (r DecodeTypeMismatchError) Unwrap() error { return r.e }
func (r DecodeValueError) Unwrap() error        { return r.e }

func configurationErrorf(m ...any) error      { return ConfigurationError{mkerrf(m...)} }
func encodeErrorf(m ...any) error             { return EncodeError{mkerrf(m...)} }
func decodeTypeMismatchErrorf(m ...any) error { return DecodeTypeMismatchError{mkerrf(m...)} }
func decodeValueErrorf(m ...any) error        { return DecodeValueError{mkerrf(m...)} }

func errorBadRepresentation(kind string, rep bsontype.Type) error {
	return configurationErrorf(kind, ": unsupported representation ", rep)
}

func errorBadUnit(kind string, u TimeUnit) error {
	return configurationErrorf(kind, ": unsupported time unit ", u)
}

func errorWireTypeMismatch(kind string, tag bsontype.Type) error {
	return decodeTypeMismatchErrorf(kind, ": cannot decode a BSON ", tag, " value")
}
