package schema

import (
	"maps"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
)

var segmentTags = map[string]field.Datatype{
	"RC": field.Int,
	"FC": field.Int,
	"KC": field.Int,
	"SH": field.Bytes,
	"UR": field.String,
}

var (
	Header = &Schema{
		Marker:         "H",
		Kind:           KindHeader,
		PredefinedTags: map[string]field.Datatype{"VN": field.String, "TS": field.Int},
		RepeatableTags: true,
	}

	Comment = &Schema{
		Marker: "#",
		Kind:   KindComment,
		Fields: []FieldDef{
			{"content", field.Comment},
			{"spacer", field.Comment},
		},
		TagsForbidden: true,
	}

	SegmentV1 = &Schema{
		Marker:  "S",
		Kind:    KindSegmentV1,
		Version: GFA1,
		Fields: []FieldDef{
			{"name", field.SegmentName1},
			{"sequence", field.Sequence1},
		},
		Aliases:        map[string]string{"sid": "name"},
		PredefinedTags: withTags(segmentTags, map[string]field.Datatype{"LN": field.Int}),
		NameField:      "name",
		DependentCategories: []Category{
			DovetailsL, DovetailsR, EdgesToContained, EdgesToContainers, Paths,
		},
	}

	SegmentV2 = &Schema{
		Marker:  "S",
		Kind:    KindSegmentV2,
		Version: GFA2,
		Fields: []FieldDef{
			{"sid", field.Identifier2},
			{"slen", field.Int},
			{"sequence", field.Sequence2},
		},
		Aliases:             map[string]string{"name": "sid", "length": "slen", "LN": "slen"},
		PredefinedTags:      withTags(segmentTags, nil),
		NameField:           "sid",
		DependentCategories: AllCategories(),
	}

	Link = &Schema{
		Marker:  "L",
		Kind:    KindLink,
		Version: GFA1,
		Fields: []FieldDef{
			{"from", field.SegmentName1},
			{"from_orient", field.Orient},
			{"to", field.SegmentName1},
			{"to_orient", field.Orient},
			{"overlap", field.Alignment1},
		},
		Aliases: map[string]string{"from_segment": "from", "to_segment": "to"},
		PredefinedTags: map[string]field.Datatype{
			"MQ": field.Int, "NM": field.Int, "RC": field.Int,
			"FC": field.Int, "KC": field.Int, "ID": field.String,
		},
		ReferenceFields:     []string{"from", "to"},
		DependentCategories: []Category{Paths},
	}

	Containment = &Schema{
		Marker:  "C",
		Kind:    KindContainment,
		Version: GFA1,
		Fields: []FieldDef{
			{"from", field.SegmentName1},
			{"from_orient", field.Orient},
			{"to", field.SegmentName1},
			{"to_orient", field.Orient},
			{"pos", field.Position1},
			{"overlap", field.Alignment1},
		},
		Aliases: map[string]string{"container": "from", "contained": "to"},
		PredefinedTags: map[string]field.Datatype{
			"MQ": field.Int, "NM": field.Int, "ID": field.String,
		},
		ReferenceFields: []string{"from", "to"},
	}

	Path = &Schema{
		Marker:  "P",
		Kind:    KindPath,
		Version: GFA1,
		Fields: []FieldDef{
			{"path_name", field.PathName1},
			{"segment_names", field.OrientedList1},
			{"overlaps", field.AlignmentList1},
		},
		Aliases:         map[string]string{"name": "path_name"},
		NameField:       "path_name",
		OtherReferences: []string{"segment_names"},
	}

	Edge = &Schema{
		Marker:  "E",
		Kind:    KindEdge,
		Version: GFA2,
		Fields: []FieldDef{
			{"eid", field.OptionalIdentifier2},
			{"sid1", field.OrientedIdentifier2},
			{"sid2", field.OrientedIdentifier2},
			{"beg1", field.Position2},
			{"end1", field.Position2},
			{"beg2", field.Position2},
			{"end2", field.Position2},
			{"alignment", field.Alignment2},
		},
		Aliases:             map[string]string{"name": "eid"},
		PredefinedTags:      map[string]field.Datatype{"TS": field.Int},
		NameField:           "eid",
		ReferenceFields:     []string{"sid1", "sid2"},
		DependentCategories: []Category{Paths, Sets},
	}

	Fragment = &Schema{
		Marker:  "F",
		Kind:    KindFragment,
		Version: GFA2,
		Fields: []FieldDef{
			{"sid", field.Identifier2},
			{"external", field.OrientedIdentifier2},
			{"s_beg", field.Position2},
			{"s_end", field.Position2},
			{"f_beg", field.Position2},
			{"f_end", field.Position2},
			{"alignment", field.Alignment2},
		},
		PredefinedTags:  map[string]field.Datatype{"TS": field.Int},
		ReferenceFields: []string{"sid"},
	}

	Gap = &Schema{
		Marker:  "G",
		Kind:    KindGap,
		Version: GFA2,
		Fields: []FieldDef{
			{"gid", field.OptionalIdentifier2},
			{"sid1", field.OrientedIdentifier2},
			{"sid2", field.OrientedIdentifier2},
			{"disp", field.Int},
			{"var", field.OptionalInt},
		},
		Aliases:             map[string]string{"name": "gid"},
		NameField:           "gid",
		ReferenceFields:     []string{"sid1", "sid2"},
		DependentCategories: []Category{Paths, Sets},
	}

	OrderedGroup = &Schema{
		Marker:  "O",
		Kind:    KindOrderedGroup,
		Version: GFA2,
		Fields: []FieldDef{
			{"pid", field.OptionalIdentifier2},
			{"items", field.OrientedList2},
		},
		Aliases:             map[string]string{"name": "pid"},
		NameField:           "pid",
		OtherReferences:     []string{"items"},
		DependentCategories: []Category{Paths, Sets},
	}

	UnorderedGroup = &Schema{
		Marker:  "U",
		Kind:    KindUnorderedGroup,
		Version: GFA2,
		Fields: []FieldDef{
			{"pid", field.OptionalIdentifier2},
			{"items", field.IdentifierList2},
		},
		Aliases:             map[string]string{"name": "pid"},
		NameField:           "pid",
		OtherReferences:     []string{"items"},
		DependentCategories: []Category{Sets},
	}

	// Custom holds GFA2 lines with an unrecognized marker. The marker is kept
	// in record_type and every further non-tag token is a generic field.
	Custom = &Schema{
		Kind:     KindCustom,
		Version:  GFA2,
		Fields:   []FieldDef{{"record_type", field.CustomType}},
		Variadic: true,
	}

	// Placeholder stands in for a record that is referenced but not yet
	// defined. It accepts every category because the kind of the missing
	// record is unknown until it appears.
	Placeholder = &Schema{
		Kind:                KindPlaceholder,
		Fields:              []FieldDef{{"name", field.Identifier2}},
		NameField:           "name",
		DependentCategories: AllCategories(),
		AlwaysVirtual:       true,
	}
)

var byMarker = map[string][]*Schema{
	"H": {Header},
	"#": {Comment},
	"S": {SegmentV1, SegmentV2},
	"L": {Link},
	"C": {Containment},
	"P": {Path},
	"E": {Edge},
	"F": {Fragment},
	"G": {Gap},
	"O": {OrderedGroup},
	"U": {UnorderedGroup},
}

var byKind = map[Kind]*Schema{}

func init() {
	for _, list := range byMarker {
		for _, s := range list {
			byKind[s.Kind] = s
		}
	}
	byKind[KindCustom] = Custom
	byKind[KindPlaceholder] = Placeholder
}

// Lookup returns the schema for a record-type marker in the given dialect.
//
// "S" resolves to the GFA1 segment for GFA1 and AnyVersion, and to the GFA2
// segment for GFA2. A marker that belongs to the other dialect, or that is
// not recognized at all, yields the Custom schema under GFA2 and an
// UNKNOWN_RECORD_TYPE error otherwise.
func Lookup(marker string, version Version) (*Schema, error) {
	for _, s := range byMarker[marker] {
		if s.Version == AnyVersion || version == AnyVersion || s.Version == version {
			return s, nil
		}
	}
	if version == GFA2 && marker != "" && marker != "#" {
		return Custom, nil
	}
	return nil, gfaerrors.New(gfaerrors.ErrCodeUnknownRecordType, "unknown record type %q", marker)
}

// ByKind returns the schema of a record variant.
func ByKind(k Kind) (*Schema, bool) {
	s, ok := byKind[k]
	return s, ok
}

// Markers returns the known record-type markers.
func Markers() []string {
	return []string{"H", "#", "S", "L", "C", "P", "E", "F", "G", "O", "U"}
}

func withTags(base, extra map[string]field.Datatype) map[string]field.Datatype {
	out := make(map[string]field.Datatype, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}
