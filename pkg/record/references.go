package record

import (
	"fmt"
	"slices"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Reference is one name referenced by a record, together with the field that
// holds it and the category under which the record depends on the target.
type Reference struct {
	Name     string
	Field    string
	Category schema.Category
}

func (ref Reference) String() string {
	return fmt.Sprintf("%s->%s (%s)", ref.Field, ref.Name, ref.Category)
}

// References lists every record name r refers to, in field order. A list
// field that names the same record twice yields two references.
//
// Categories follow the position of the target in the relation: a link
// leaving the right end of its from segment is a right dovetail of that
// segment, a containment is an edge to the contained segment of its
// container, and so on.
func (r *Record) References() ([]Reference, error) {
	switch r.Kind() {
	case schema.KindLink:
		return r.linkReferences()
	case schema.KindContainment:
		from, err := r.stringField("from")
		if err != nil {
			return nil, err
		}
		to, err := r.stringField("to")
		if err != nil {
			return nil, err
		}
		return []Reference{
			{from, "from", schema.EdgesToContained},
			{to, "to", schema.EdgesToContainers},
		}, nil
	case schema.KindPath:
		return r.listReferences("segment_names", schema.Paths)
	case schema.KindEdge:
		return r.edgeReferences()
	case schema.KindFragment:
		sid, err := r.stringField("sid")
		if err != nil {
			return nil, err
		}
		return []Reference{{sid, "sid", schema.Fragments}}, nil
	case schema.KindGap:
		return r.gapReferences()
	case schema.KindOrderedGroup:
		return r.listReferences("items", schema.Paths)
	case schema.KindUnorderedGroup:
		return r.listReferences("items", schema.Sets)
	}
	return nil, nil
}

func (r *Record) linkReferences() ([]Reference, error) {
	from, err := r.stringField("from")
	if err != nil {
		return nil, err
	}
	fromOrient, err := r.orientField("from_orient")
	if err != nil {
		return nil, err
	}
	to, err := r.stringField("to")
	if err != nil {
		return nil, err
	}
	toOrient, err := r.orientField("to_orient")
	if err != nil {
		return nil, err
	}
	return []Reference{
		{from, "from", side(fromOrient, schema.DovetailsR, schema.DovetailsL)},
		{to, "to", side(toOrient, schema.DovetailsL, schema.DovetailsR)},
	}, nil
}

func (r *Record) gapReferences() ([]Reference, error) {
	s1, err := r.orientedField("sid1")
	if err != nil {
		return nil, err
	}
	s2, err := r.orientedField("sid2")
	if err != nil {
		return nil, err
	}
	return []Reference{
		{s1.Name, "sid1", side(s1.Orient, schema.GapsR, schema.GapsL)},
		{s2.Name, "sid2", side(s2.Orient, schema.GapsL, schema.GapsR)},
	}, nil
}

// edgeReferences classifies a GFA2 edge by where its alignment sits on the
// two segments: covering a whole segment makes it a containment, touching
// the end of one and the start of the other makes it a dovetail, anything
// else is internal.
func (r *Record) edgeReferences() ([]Reference, error) {
	s1, err := r.orientedField("sid1")
	if err != nil {
		return nil, err
	}
	s2, err := r.orientedField("sid2")
	if err != nil {
		return nil, err
	}
	var pos [4]field.Position
	for i, name := range []string{"beg1", "end1", "beg2", "end2"} {
		if pos[i], err = r.positionField(name); err != nil {
			return nil, err
		}
	}
	beg1, end1, beg2, end2 := pos[0], pos[1], pos[2], pos[3]

	c1, c2 := schema.Internals, schema.Internals
	switch {
	case beg1.IsFirst() && end1.Last:
		c1, c2 = schema.EdgesToContainers, schema.EdgesToContained
	case beg2.IsFirst() && end2.Last:
		c1, c2 = schema.EdgesToContained, schema.EdgesToContainers
	case end1.Last && beg2.IsFirst():
		c1 = side(s1.Orient, schema.DovetailsR, schema.DovetailsL)
		c2 = side(s2.Orient, schema.DovetailsL, schema.DovetailsR)
	case beg1.IsFirst() && end2.Last:
		c1 = side(s1.Orient, schema.DovetailsL, schema.DovetailsR)
		c2 = side(s2.Orient, schema.DovetailsR, schema.DovetailsL)
	}
	return []Reference{{s1.Name, "sid1", c1}, {s2.Name, "sid2", c2}}, nil
}

func side(o field.Orientation, forward, reverse schema.Category) schema.Category {
	if o == field.Reverse {
		return reverse
	}
	return forward
}

func (r *Record) listReferences(name string, c schema.Category) ([]Reference, error) {
	names, err := r.ReferencedNames(name)
	if err != nil {
		return nil, err
	}
	refs := make([]Reference, len(names))
	for i, n := range names {
		refs[i] = Reference{n, name, c}
	}
	return refs, nil
}

// ReferencedNames returns the record names held by a reference field.
func (r *Record) ReferencedNames(fieldName string) ([]string, error) {
	i := r.fieldIndex(fieldName)
	if i < 0 || !r.schema.IsReference(r.fieldName(i)) {
		return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "%s is not a reference field of %s records", fieldName, r.Kind())
	}
	v, err := r.fields[i].get(r.fieldName(i))
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case field.OrientedRef:
		return []string{x.Name}, nil
	case []field.OrientedRef:
		names := make([]string, len(x))
		for j, ref := range x {
			names[j] = ref.Name
		}
		return names, nil
	case []string:
		return slices.Clone(x), nil
	}
	return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "field %s holds %T, not a reference", fieldName, v)
}

// Targets dereferences a reference field through the owning graph. Because
// references are held by name, a placeholder target is observed as the real
// record as soon as the graph registers it.
func (r *Record) Targets(fieldName string) ([]*Record, error) {
	if r.resolver == nil {
		return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "%s record is not connected to a graph", r.Kind())
	}
	names, err := r.ReferencedNames(fieldName)
	if err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(names))
	for _, n := range names {
		t, ok := r.resolver.Lookup(n)
		if !ok {
			return nil, gfaerrors.New(gfaerrors.ErrCodeNotFound, "record %q referenced by %s is not in the graph", n, fieldName)
		}
		out = append(out, t)
	}
	return out, nil
}

// RenameReference replaces oldName by newName in every reference field and
// returns the number of replaced occurrences. The graph calls it on the
// dependents of a renamed record. If any rewritten field fails validation the
// record is left unchanged.
func (r *Record) RenameReference(oldName, newName string) (int, error) {
	updates, count, err := r.renamedReferences(oldName, newName)
	if err != nil {
		return 0, err
	}
	for i, v := range updates {
		r.fields[i].val = v
	}
	return count, nil
}

// CheckRenameReference reports the error RenameReference would return,
// without changing the record.
func (r *Record) CheckRenameReference(oldName, newName string) error {
	_, _, err := r.renamedReferences(oldName, newName)
	return err
}

func (r *Record) renamedReferences(oldName, newName string) (map[int]any, int, error) {
	updates := map[int]any{}
	count := 0
	for i := range r.fields {
		fname := r.fieldName(i)
		if !r.schema.IsReference(fname) {
			continue
		}
		v, err := r.fields[i].get(fname)
		if err != nil {
			return nil, 0, err
		}
		n := 0
		switch x := v.(type) {
		case string:
			if x == oldName {
				v = newName
				n++
			}
		case field.OrientedRef:
			if x.Name == oldName {
				x.Name = newName
				v = x
				n++
			}
		case []field.OrientedRef:
			x = slices.Clone(x)
			for j := range x {
				if x[j].Name == oldName {
					x[j].Name = newName
					n++
				}
			}
			v = x
		case []string:
			x = slices.Clone(x)
			for j := range x {
				if x[j] == oldName {
					x[j] = newName
					n++
				}
			}
			v = x
		}
		if n == 0 {
			continue
		}
		if err := field.Validate(r.fields[i].dt, v, fname); err != nil {
			return nil, 0, err
		}
		updates[i] = v
		count += n
	}
	return updates, count, nil
}

func (r *Record) stringField(name string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &gfaerrors.TypeMismatchError{Field: name, Expected: "name", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

func (r *Record) orientField(name string) (field.Orientation, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	o, ok := v.(field.Orientation)
	if !ok {
		return 0, &gfaerrors.TypeMismatchError{Field: name, Expected: string(field.Orient), Actual: fmt.Sprintf("%T", v)}
	}
	return o, nil
}

func (r *Record) orientedField(name string) (field.OrientedRef, error) {
	v, err := r.Get(name)
	if err != nil {
		return field.OrientedRef{}, err
	}
	ref, ok := v.(field.OrientedRef)
	if !ok {
		return field.OrientedRef{}, &gfaerrors.TypeMismatchError{Field: name, Expected: string(field.OrientedIdentifier2), Actual: fmt.Sprintf("%T", v)}
	}
	return ref, nil
}

func (r *Record) positionField(name string) (field.Position, error) {
	v, err := r.Get(name)
	if err != nil {
		return field.Position{}, err
	}
	p, ok := v.(field.Position)
	if !ok {
		return field.Position{}, &gfaerrors.TypeMismatchError{Field: name, Expected: string(field.Position2), Actual: fmt.Sprintf("%T", v)}
	}
	return p, nil
}
