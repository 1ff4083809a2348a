// Package field decodes, encodes and validates the values carried by GFA
// records.
//
// # Overview
//
// Every positional field and every tag of a GFA line has a [Datatype]. The
// datatype decides how a token is turned into a Go value ([Decode]), how a
// value is rendered back into its canonical token ([Encode]), and which Go
// values are acceptable for it ([Validate]). Datatypes are entries of a static
// table; nothing in this package holds state.
//
// Tag datatypes use their single-letter code:
//
//	A  single printable character      string
//	i  signed integer                  int64
//	f  floating point number           float64
//	Z  printable string                string
//	J  single-line JSON                any (decoded with goccy/go-json)
//	H  byte array in hex               ByteArray
//	B  numeric array                   NumericArray
//
// Positional datatypes such as [SegmentName1], [Alignment1] or [Position2]
// decode into the small value types of this package: [Orientation],
// [OrientedRef], [CIGAR], [Trace], [Position] and [Placeholder] for "*".
//
// # Round Trip
//
// For every canonical token t of datatype dt, Encode(dt, Decode(dt, t)) == t.
// Canonical means no leading "+" or zeros on integers, shortest float form and
// upper-case hex.
//
//	v, _ := field.Decode(field.OrientedList1, "1+,2-")
//	// v == []field.OrientedRef{{"1", '+'}, {"2", '-'}}
//	tok, _ := field.Encode(field.OrientedList1, v)
//	// tok == "1+,2-"
//
// # Arrays
//
// An [Array] collects the values of a tag that appears on several grouped
// header lines. All elements share one datatype; appending a value asserted to
// be of another datatype fails with an INCONSISTENCY error and leaves the
// array untouched.
package field
