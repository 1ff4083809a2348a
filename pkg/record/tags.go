package record

import (
	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
)

// TagEntry is a tag name with its datatype and decoded value. Value is a
// *field.Array for tags merged from several header lines.
type TagEntry struct {
	Name     string
	Datatype field.Datatype
	Value    any
}

func (r *Record) checkTagsAllowed(name string) error {
	if r.schema.TagsForbidden {
		return gfaerrors.New(gfaerrors.ErrCodeUnsupported, "%s records have no tags: cannot access %s", r.Kind(), name)
	}
	return nil
}

// Tag returns the decoded value of a tag, or nil when it is not set.
func (r *Record) Tag(name string) (any, error) {
	if err := r.checkTagsAllowed(name); err != nil {
		return nil, err
	}
	i, ok := r.tagIndex[name]
	if !ok {
		return nil, nil
	}
	return r.tags[i].get(name)
}

// TagDatatype returns the datatype of a set tag.
func (r *Record) TagDatatype(name string) (field.Datatype, bool) {
	i, ok := r.tagIndex[name]
	if !ok {
		return "", false
	}
	return r.tags[i].dt, true
}

// TagNames returns the names of the set tags in insertion order.
func (r *Record) TagNames() []string {
	names := make([]string, len(r.tags))
	for i, t := range r.tags {
		names[i] = t.name
	}
	return names
}

// Tags returns every set tag in insertion order, decoding lazily kept values.
func (r *Record) Tags() ([]TagEntry, error) {
	out := make([]TagEntry, 0, len(r.tags))
	for i := range r.tags {
		t := &r.tags[i]
		v, err := t.get(t.name)
		if err != nil {
			return nil, err
		}
		out = append(out, TagEntry{Name: t.name, Datatype: t.dt, Value: v})
	}
	return out, nil
}

// SetTag assigns a tag. The datatype is the predefined one for the tag name,
// else dt, else the datatype of the existing user tag, else the one inferred
// from v. An explicit dt that contradicts a predefined tag is a type
// mismatch. A *field.Array value is stored as a multi-valued tag.
func (r *Record) SetTag(name string, v any, dt field.Datatype) error {
	if err := r.checkTagsAllowed(name); err != nil {
		return err
	}
	if !reTagName.MatchString(name) {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "invalid tag name %q", name)
	}
	if dt != "" && !dt.IsTag() {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "%s is not a tag datatype", dt)
	}
	dt, err := r.resolveTagDatatype(name, v, dt)
	if err != nil {
		return err
	}

	var x any
	if a, ok := v.(*field.Array); ok {
		arr, err := field.AsArray(a, dt)
		if err != nil {
			return err
		}
		x = arr.WithName(name)
	} else {
		if x, err = field.Coerce(dt, v); err != nil {
			return gfaerrors.Wrap(gfaerrors.GetCode(err), err, "tag %s", name)
		}
		if err := field.Validate(dt, x, name); err != nil {
			return err
		}
	}

	entry := tagEntry{name: name, value: value{dt: dt, val: x, decoded: true}}
	if i, ok := r.tagIndex[name]; ok {
		r.tags[i] = entry
		return nil
	}
	r.tagIndex[name] = len(r.tags)
	r.tags = append(r.tags, entry)
	return nil
}

func (r *Record) resolveTagDatatype(name string, v any, dt field.Datatype) (field.Datatype, error) {
	if want, ok := r.schema.TagDatatype(name); ok {
		if dt != "" && dt != want {
			return "", &gfaerrors.TypeMismatchError{Field: name, Expected: string(want), Actual: "type code " + string(dt)}
		}
		return want, nil
	}
	if dt != "" {
		return dt, nil
	}
	if i, ok := r.tagIndex[name]; ok {
		return r.tags[i].dt, nil
	}
	return field.DefaultTagDatatype(v), nil
}

// DeleteTag removes a tag and reports whether it was set.
func (r *Record) DeleteTag(name string) (bool, error) {
	if err := r.checkTagsAllowed(name); err != nil {
		return false, err
	}
	i, ok := r.tagIndex[name]
	if !ok {
		return false, nil
	}
	r.tags = append(r.tags[:i], r.tags[i+1:]...)
	delete(r.tagIndex, name)
	for j := i; j < len(r.tags); j++ {
		r.tagIndex[r.tags[j].name] = j
	}
	return true, nil
}

// MergeTag adds v to a tag, promoting an existing scalar value to an array.
// A dt that differs from the datatype already stored for the tag fails with
// INCONSISTENCY and leaves the tag unchanged.
func (r *Record) MergeTag(name string, v any, dt field.Datatype) error {
	if err := r.checkTagsAllowed(name); err != nil {
		return err
	}
	i, ok := r.tagIndex[name]
	if !ok {
		return r.SetTag(name, v, dt)
	}
	t := &r.tags[i]
	cur, err := t.get(name)
	if err != nil {
		return err
	}
	if a, ok := cur.(*field.Array); ok {
		return a.Append(v, dt)
	}
	arr, err := field.NewArray(t.dt, cur)
	if err != nil {
		return err
	}
	arr.WithName(name)
	if err := arr.Append(v, dt); err != nil {
		return err
	}
	t.val = arr
	return nil
}
