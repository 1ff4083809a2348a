package record

import (
	"slices"
	"strconv"
	"strings"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Resolver is the lookup handle a graph hands to the records it owns. It is a
// non-owning association: a record uses it only to turn names into records.
type Resolver interface {
	Lookup(name string) (*Record, bool)
	DependentsOf(r *Record, c schema.Category) []*Record
}

// Record is one parsed GFA line typed by its schema.
//
// Records are not safe for concurrent use. A record bound to a graph must be
// mutated through the graph for its name and reference fields.
type Record struct {
	schema   *schema.Schema
	fields   []value
	tags     []tagEntry
	tagIndex map[string]int
	virtual  bool
	resolver Resolver
}

// value is a positional field or tag value. In permissive mode raw tokens are
// kept undecoded until first access.
type value struct {
	dt      field.Datatype
	raw     string
	val     any
	decoded bool
}

type tagEntry struct {
	name string
	value
}

func (v *value) get(name string) (any, error) {
	if !v.decoded {
		x, err := field.Decode(v.dt, v.raw)
		if err != nil {
			return nil, gfaerrors.Wrap(gfaerrors.GetCode(err), err, "field %s", name)
		}
		v.val, v.decoded = x, true
	}
	return v.val, nil
}

func (v *value) token() (string, error) {
	if !v.decoded {
		return v.raw, nil
	}
	return field.Encode(v.dt, v.val)
}

// New builds a record of the given kind from positional values in schema
// order. Values are coerced and validated. A Comment may omit its spacer,
// which then defaults to a single space.
func New(kind schema.Kind, fields ...any) (*Record, error) {
	s, ok := schema.ByKind(kind)
	if !ok {
		return nil, gfaerrors.New(gfaerrors.ErrCodeUnknownRecordType, "unknown record kind %q", kind)
	}
	if kind == schema.KindPlaceholder {
		return nil, gfaerrors.New(gfaerrors.ErrCodeUnsupported, "placeholders are created with NewPlaceholder")
	}
	if kind == schema.KindComment && len(fields) == 1 {
		fields = append(fields, " ")
	}
	if len(fields) < len(s.Fields) || (!s.Variadic && len(fields) > len(s.Fields)) {
		return nil, gfaerrors.New(gfaerrors.ErrCodeFieldCount,
			"%s record needs %d positional fields, got %d", kind, len(s.Fields), len(fields))
	}
	r := newRecord(s, len(fields))
	for i, v := range fields {
		dt := r.fieldDatatype(i)
		x, err := field.Coerce(dt, v)
		if err != nil {
			return nil, gfaerrors.Wrap(gfaerrors.GetCode(err), err, "field %s", r.fieldName(i))
		}
		if err := field.Validate(dt, x, r.fieldName(i)); err != nil {
			return nil, err
		}
		r.fields[i] = value{dt: dt, val: x, decoded: true}
	}
	return r, nil
}

// NewPlaceholder returns a virtual record standing in for name.
func NewPlaceholder(name string) *Record {
	r := newRecord(schema.Placeholder, 1)
	r.fields[0] = value{dt: field.Identifier2, val: name, decoded: true}
	r.virtual = true
	return r
}

func newRecord(s *schema.Schema, n int) *Record {
	return &Record{
		schema:   s,
		fields:   make([]value, n),
		tagIndex: make(map[string]int),
	}
}

// Schema returns the schema of the record variant.
func (r *Record) Schema() *schema.Schema { return r.schema }

// Kind returns the record variant.
func (r *Record) Kind() schema.Kind { return r.schema.Kind }

// Virtual reports whether r is a placeholder for a missing record.
func (r *Record) Virtual() bool { return r.virtual || r.schema.AlwaysVirtual }

// Name returns the value of the name field, or "" for anonymous records.
func (r *Record) Name() string {
	if !r.schema.Named() {
		return ""
	}
	v := &r.fields[r.schema.FieldIndex(r.schema.NameField)]
	if !v.decoded {
		if v.raw == "*" {
			return ""
		}
		return v.raw
	}
	if s, ok := v.val.(string); ok {
		return s
	}
	return ""
}

// NumFields returns the number of positional fields.
func (r *Record) NumFields() int { return len(r.fields) }

// FieldNames returns the positional field names in line order. Custom records
// name their trailing fields field1, field2 and so on.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.fields))
	for i := range r.fields {
		names[i] = r.fieldName(i)
	}
	return names
}

func (r *Record) fieldName(i int) string {
	if i < len(r.schema.Fields) {
		return r.schema.Fields[i].Name
	}
	return "field" + strconv.Itoa(i)
}

func (r *Record) fieldDatatype(i int) field.Datatype {
	if i < len(r.schema.Fields) {
		return r.schema.Fields[i].Datatype
	}
	return field.Generic
}

func (r *Record) fieldIndex(name string) int {
	if i := r.schema.FieldIndex(name); i >= 0 {
		return i
	}
	if r.schema.Variadic {
		if n, ok := strings.CutPrefix(name, "field"); ok {
			if i, err := strconv.Atoi(n); err == nil && i >= len(r.schema.Fields) && i < len(r.fields) {
				return i
			}
		}
	}
	return -1
}

// Get returns the value of a positional field or tag. Aliases are resolved
// first. Missing tags yield nil without error. On a Comment any name other
// than content and spacer fails with UNSUPPORTED.
func (r *Record) Get(name string) (any, error) {
	if i := r.fieldIndex(name); i >= 0 {
		return r.fields[i].get(r.fieldName(i))
	}
	return r.Tag(name)
}

// Set assigns a positional field or tag. Aliases are resolved first and the
// value is coerced and validated against the field datatype. While the record
// is bound to a graph its name and reference fields can only be changed
// through the graph.
func (r *Record) Set(name string, v any) error {
	i := r.fieldIndex(name)
	if i < 0 {
		return r.SetTag(name, v, "")
	}
	fname := r.fieldName(i)
	if r.resolver != nil && (fname == r.schema.NameField || r.schema.IsReference(fname)) {
		return gfaerrors.New(gfaerrors.ErrCodeUnsupported,
			"field %s of a connected %s record is managed by its graph", fname, r.Kind())
	}
	dt := r.fieldDatatype(i)
	x, err := field.Coerce(dt, v)
	if err != nil {
		return gfaerrors.Wrap(gfaerrors.GetCode(err), err, "field %s", fname)
	}
	if err := field.Validate(dt, x, fname); err != nil {
		return err
	}
	r.fields[i] = value{dt: dt, val: x, decoded: true}
	return nil
}

// Clone returns an unbound deep copy of r. Decoded values are copied by
// re-decoding their canonical token, so the copy shares no mutable state.
func (r *Record) Clone() (*Record, error) {
	c := &Record{
		schema:   r.schema,
		fields:   make([]value, len(r.fields)),
		tags:     make([]tagEntry, 0, len(r.tags)),
		tagIndex: make(map[string]int, len(r.tags)),
		virtual:  r.virtual,
	}
	for i := range r.fields {
		v, err := cloneValue(r.fields[i])
		if err != nil {
			return nil, err
		}
		c.fields[i] = v
	}
	for _, t := range r.tags {
		v, err := cloneValue(t.value)
		if err != nil {
			return nil, err
		}
		c.tagIndex[t.name] = len(c.tags)
		c.tags = append(c.tags, tagEntry{name: t.name, value: v})
	}
	return c, nil
}

func cloneValue(v value) (value, error) {
	if !v.decoded {
		return v, nil
	}
	if a, ok := v.val.(*field.Array); ok {
		cp, err := field.NewArray(a.Datatype(), a.Values()...)
		if err != nil {
			return value{}, err
		}
		v.val = cp.WithName(a.Name())
		return v, nil
	}
	tok, err := field.Encode(v.dt, v.val)
	if err != nil {
		return value{}, err
	}
	x, err := field.Decode(v.dt, tok)
	if err != nil {
		return value{}, err
	}
	v.val = x
	return v, nil
}

// Bind attaches the record to the resolver of its owning graph. It is called
// by the graph on registration.
func (r *Record) Bind(res Resolver) { r.resolver = res }

// Unbind detaches the record from its graph.
func (r *Record) Unbind() { r.resolver = nil }

// Bound reports whether the record belongs to a graph.
func (r *Record) Bound() bool { return r.resolver != nil }

// Dependents returns the records registered on r under c. Unbound records
// have no dependents.
func (r *Record) Dependents(c schema.Category) []*Record {
	if r.resolver == nil {
		return nil
	}
	return slices.Clone(r.resolver.DependentsOf(r, c))
}
