package schema

import (
	"slices"

	"github.com/matzehuels/gfagraph/pkg/field"
)

// Kind identifies a record variant.
type Kind string

const (
	KindHeader         Kind = "header"
	KindComment        Kind = "comment"
	KindSegmentV1      Kind = "segment_gfa1"
	KindSegmentV2      Kind = "segment_gfa2"
	KindLink           Kind = "link"
	KindContainment    Kind = "containment"
	KindPath           Kind = "path"
	KindEdge           Kind = "edge"
	KindFragment       Kind = "fragment"
	KindGap            Kind = "gap"
	KindOrderedGroup   Kind = "ordered_group"
	KindUnorderedGroup Kind = "unordered_group"
	KindCustom         Kind = "custom"
	KindPlaceholder    Kind = "placeholder"
)

// IsSegment reports whether k is one of the two segment variants.
func (k Kind) IsSegment() bool { return k == KindSegmentV1 || k == KindSegmentV2 }

// Version is the format dialect a schema belongs to.
type Version string

const (
	GFA1 Version = "gfa1"
	GFA2 Version = "gfa2"

	// AnyVersion marks schemas shared by both dialects, and callers that have
	// not determined the dialect yet.
	AnyVersion Version = ""
)

// Category is a named bucket in which records that reference a target record
// register themselves on that target.
type Category string

const (
	DovetailsL        Category = "dovetails_L"
	DovetailsR        Category = "dovetails_R"
	GapsL             Category = "gaps_L"
	GapsR             Category = "gaps_R"
	EdgesToContained  Category = "edges_to_contained"
	EdgesToContainers Category = "edges_to_containers"
	Fragments         Category = "fragments"
	Internals         Category = "internals"
	Paths             Category = "paths"
	Sets              Category = "sets"
)

// AllCategories lists every dependent category in a stable order.
func AllCategories() []Category {
	return []Category{
		DovetailsL, DovetailsR, GapsL, GapsR,
		EdgesToContained, EdgesToContainers,
		Fragments, Internals, Paths, Sets,
	}
}

// FieldDef is a positional field declaration.
type FieldDef struct {
	Name     string
	Datatype field.Datatype
}

// Schema is the immutable declaration of a record variant. Schemas are built
// once at package initialization and shared by every record of the variant.
type Schema struct {
	// Marker is the record-type character, e.g. "S". Empty for the
	// placeholder variant, which is never parsed from text.
	Marker  string
	Kind    Kind
	Version Version

	// Fields lists the positional fields in line order.
	Fields []FieldDef

	// Aliases maps alternative names to canonical field names.
	Aliases map[string]string

	// PredefinedTags maps tag names to their fixed datatype.
	PredefinedTags map[string]field.Datatype

	// NameField is the positional field holding the record name, or "" for
	// anonymous variants.
	NameField string

	// ReferenceFields hold the name of a single other record.
	ReferenceFields []string

	// OtherReferences are list-typed fields whose elements name other records.
	OtherReferences []string

	// DependentCategories are the buckets other records may register in.
	DependentCategories []Category

	TagsForbidden  bool // Comment lines carry no tags
	RepeatableTags bool // duplicate tags are promoted to arrays (Header)
	Variadic       bool // trailing positional fields are accepted (custom records)
	AlwaysVirtual  bool // records of this variant only stand in for missing ones
}

// FieldIndex returns the position of the named field, resolving aliases.
// It returns -1 when the schema has no such positional field.
func (s *Schema) FieldIndex(name string) int {
	name = s.Canonical(name)
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Canonical resolves an alias to its canonical field name. Names that are not
// aliases are returned unchanged.
func (s *Schema) Canonical(name string) string {
	if c, ok := s.Aliases[name]; ok {
		return c
	}
	return name
}

// FieldNames returns the positional field names in line order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// TagDatatype returns the predefined datatype of a tag.
func (s *Schema) TagDatatype(name string) (field.Datatype, bool) {
	dt, ok := s.PredefinedTags[name]
	return dt, ok
}

// IsReference reports whether the named field holds references to other
// records, either directly or as list elements.
func (s *Schema) IsReference(name string) bool {
	name = s.Canonical(name)
	return slices.Contains(s.ReferenceFields, name) || slices.Contains(s.OtherReferences, name)
}

// Accepts reports whether other records may depend on this variant under c.
func (s *Schema) Accepts(c Category) bool {
	return slices.Contains(s.DependentCategories, c)
}

// Named reports whether records of this variant carry a name.
func (s *Schema) Named() bool { return s.NameField != "" }
