package field

import (
	"slices"
	"strings"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
)

// Array is an ordered, homogeneous collection of decoded values sharing one
// datatype. It holds the values of a tag that occurs on several grouped
// header lines. Every element validates against the stored datatype; the
// array only grows.
type Array struct {
	name     string
	datatype Datatype
	values   []any
}

// NewArray creates an array of dt holding initial. Each element is coerced
// and validated; the first invalid element fails the whole construction.
func NewArray(dt Datatype, initial ...any) (*Array, error) {
	if !dt.Known() {
		return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "unknown datatype %q", dt)
	}
	a := &Array{datatype: dt, values: make([]any, 0, len(initial))}
	for _, v := range initial {
		if err := a.Append(v, ""); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// WithName sets the tag name reported in errors and used by SerializeTags.
func (a *Array) WithName(name string) *Array {
	a.name = name
	return a
}

// Name returns the tag name of the array, or "" when unnamed.
func (a *Array) Name() string { return a.name }

// Datatype returns the datatype shared by all elements.
func (a *Array) Datatype() Datatype { return a.datatype }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.values) }

// Values returns a copy of the elements.
func (a *Array) Values() []any { return slices.Clone(a.values) }

// Append validates value against the array datatype and appends it. When
// asserted is non-empty and differs from the array datatype, Append fails
// with an INCONSISTENCY error and leaves the array unchanged.
func (a *Array) Append(value any, asserted Datatype) error {
	if asserted != "" && asserted != a.datatype {
		return gfaerrors.New(gfaerrors.ErrCodeInconsistency,
			"field %s: cannot append %v of datatype %s to array of datatype %s",
			a.fieldName(), value, asserted, a.datatype)
	}
	v, err := Coerce(a.datatype, value)
	if err != nil {
		return err
	}
	if err := Validate(a.datatype, v, a.fieldName()); err != nil {
		return err
	}
	a.values = append(a.values, v)
	return nil
}

// Validate re-validates every element against the stored datatype.
func (a *Array) Validate() error {
	for _, v := range a.values {
		if err := Validate(a.datatype, v, a.fieldName()); err != nil {
			return err
		}
	}
	return nil
}

// Serialize encodes every element with override, or with the stored datatype
// when override is empty, and joins the tokens with tabs.
func (a *Array) Serialize(override Datatype) (string, error) {
	dt := a.effective(override)
	parts := make([]string, len(a.values))
	for i, v := range a.values {
		tok, err := Encode(dt, v)
		if err != nil {
			return "", err
		}
		parts[i] = tok
	}
	return strings.Join(parts, "\t"), nil
}

// SerializeTags renders one name:type:value tag per element, tab-joined.
func (a *Array) SerializeTags(override Datatype) (string, error) {
	if a.name == "" {
		return "", gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "array has no tag name")
	}
	dt := a.effective(override)
	parts := make([]string, len(a.values))
	for i, v := range a.values {
		tok, err := Encode(dt, v)
		if err != nil {
			return "", err
		}
		parts[i] = a.name + ":" + string(dt) + ":" + tok
	}
	return strings.Join(parts, "\t"), nil
}

// AsArray converts v into an Array. An explicit dt always wins: an existing
// *Array is re-validated against dt and any element that fails is reported
// as a FORMAT_ERROR. With an empty dt an *Array is returned as is and a
// slice of values is rejected because there is nothing to infer from.
func AsArray(v any, dt Datatype) (*Array, error) {
	switch x := v.(type) {
	case *Array:
		if dt == "" || dt == x.datatype {
			return x, nil
		}
		for _, e := range x.values {
			if err := Validate(dt, e, x.fieldName()); err != nil {
				return nil, gfaerrors.Wrap(gfaerrors.ErrCodeFormat, err,
					"array of %s does not re-validate as %s", x.datatype, dt)
			}
		}
		return &Array{name: x.name, datatype: dt, values: slices.Clone(x.values)}, nil
	case []any:
		if dt == "" {
			return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "datatype required to build an array from a list")
		}
		return NewArray(dt, x...)
	}
	return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "cannot convert %T to an array", v)
}

func (a *Array) effective(override Datatype) Datatype {
	if override != "" {
		return override
	}
	return a.datatype
}

func (a *Array) fieldName() string {
	if a.name == "" {
		return "<array>"
	}
	return a.name
}
