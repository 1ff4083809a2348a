package record

import (
	"strings"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// VirtualTrailer is the tag appended to the diagnostic line of a placeholder.
const VirtualTrailer = "co:Z:line_created_by_gfagraph"

// Serialize renders the record as one canonical GFA line without a trailing
// newline. Tokens kept raw by a permissive parse are written back verbatim.
//
// A placeholder renders as a diagnostic line naming the missing record,
// which no parser accepts as data.
func (r *Record) Serialize() (string, error) {
	if r.Virtual() {
		return "?record_type?\t" + r.Name() + "\t" + VirtualTrailer, nil
	}
	if r.schema.Kind == schema.KindComment {
		content, err := r.fields[0].token()
		if err != nil {
			return "", err
		}
		spacer, err := r.fields[1].token()
		if err != nil {
			return "", err
		}
		return "#" + spacer + content, nil
	}

	parts := make([]string, 0, 1+len(r.fields)+len(r.tags))
	if r.schema.Marker != "" {
		parts = append(parts, r.schema.Marker)
	}
	for i := range r.fields {
		tok, err := r.fieldToken(i)
		if err != nil {
			return "", err
		}
		parts = append(parts, tok)
	}
	for i := range r.tags {
		tok, err := r.tags[i].tagToken()
		if err != nil {
			return "", err
		}
		parts = append(parts, tok)
	}
	return strings.Join(parts, "\t"), nil
}

func (r *Record) fieldToken(i int) (string, error) {
	v := &r.fields[i]
	if a, ok := v.val.(*field.Array); ok && v.decoded {
		return a.Serialize(v.dt)
	}
	tok, err := v.token()
	if err != nil {
		return "", gfaerrors.Wrap(gfaerrors.GetCode(err), err, "field %s", r.fieldName(i))
	}
	return tok, nil
}

func (t *tagEntry) tagToken() (string, error) {
	if a, ok := t.val.(*field.Array); ok && t.decoded {
		return a.SerializeTags(t.dt)
	}
	tok, err := t.token()
	if err != nil {
		return "", gfaerrors.Wrap(gfaerrors.GetCode(err), err, "tag %s", t.name)
	}
	return t.name + ":" + string(t.dt) + ":" + tok, nil
}

// String returns the serialized line. Values that cannot be encoded are
// reported inline; use Serialize to get the error.
func (r *Record) String() string {
	s, err := r.Serialize()
	if err != nil {
		return "<invalid " + string(r.Kind()) + " record: " + err.Error() + ">"
	}
	return s
}

// Validate decodes every deferred token and re-validates every value,
// returning the first failure. After a strict parse or programmatic
// construction it only fails if a value was corrupted.
func (r *Record) Validate() error {
	for i := range r.fields {
		name := r.fieldName(i)
		v, err := r.fields[i].get(name)
		if err != nil {
			return err
		}
		if err := field.Validate(r.fields[i].dt, v, name); err != nil {
			return err
		}
	}
	for i := range r.tags {
		t := &r.tags[i]
		if err := r.checkPredefined(t.name, t.dt); err != nil {
			return err
		}
		v, err := t.get(t.name)
		if err != nil {
			return err
		}
		if a, ok := v.(*field.Array); ok {
			if err := a.Validate(); err != nil {
				return err
			}
			continue
		}
		if err := field.Validate(t.dt, v, t.name); err != nil {
			return err
		}
	}
	return nil
}
