package field

import "slices"

// Datatype identifies how a field value is decoded, encoded and validated.
// Tag datatypes use their single-letter GFA code; positional datatypes use a
// descriptive name. Datatypes are looked up in a static table and never
// instantiated per record.
type Datatype string

// Tag datatypes.
const (
	Char    Datatype = "A" // single printable character
	Int     Datatype = "i" // signed integer
	Float   Datatype = "f" // floating point number
	String  Datatype = "Z" // printable string, spaces allowed
	JSON    Datatype = "J" // single-line JSON
	Bytes   Datatype = "H" // hex byte array
	Numbers Datatype = "B" // typed numeric array
)

// Positional datatypes.
const (
	Comment             Datatype = "comment"
	Generic             Datatype = "generic"
	CustomType          Datatype = "custom_record_type"
	SegmentName1        Datatype = "segment_name_gfa1"
	PathName1           Datatype = "path_name_gfa1"
	Orient              Datatype = "orientation"
	OrientedList1       Datatype = "oriented_identifier_list_gfa1"
	Alignment1          Datatype = "alignment_gfa1"
	AlignmentList1      Datatype = "alignment_list_gfa1"
	Sequence1           Datatype = "sequence_gfa1"
	Position1           Datatype = "position_gfa1"
	Identifier2         Datatype = "identifier_gfa2"
	OptionalIdentifier2 Datatype = "optional_identifier_gfa2"
	OrientedIdentifier2 Datatype = "oriented_identifier_gfa2"
	IdentifierList2     Datatype = "identifier_list_gfa2"
	OrientedList2       Datatype = "oriented_identifier_list_gfa2"
	Position2           Datatype = "position_gfa2"
	Sequence2           Datatype = "sequence_gfa2"
	Alignment2          Datatype = "alignment_gfa2"
	OptionalInt         Datatype = "optional_integer"
)

var tagDatatypes = []Datatype{Char, Int, Float, String, JSON, Bytes, Numbers}

// TagDatatypes returns the datatypes allowed in the type slot of a tag.
func TagDatatypes() []Datatype { return slices.Clone(tagDatatypes) }

// IsTag reports whether dt may be used as the type code of a tag.
func (dt Datatype) IsTag() bool { return slices.Contains(tagDatatypes, dt) }

// Known reports whether dt is registered in the codec table.
func (dt Datatype) Known() bool {
	_, ok := codecs[dt]
	return ok
}

// AllowsPlaceholder reports whether "*" is a valid token for dt.
func (dt Datatype) AllowsPlaceholder() bool {
	switch dt {
	case Alignment1, AlignmentList1, Sequence1, OptionalIdentifier2,
		Sequence2, Alignment2, OptionalInt:
		return true
	}
	return false
}

func (dt Datatype) String() string { return string(dt) }
