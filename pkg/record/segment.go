package record

import (
	"slices"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Length returns the sequence length of a segment: slen for GFA2, the LN tag
// or else the sequence length for GFA1. ok is false for other records and for
// GFA1 segments without LN and sequence.
func (r *Record) Length() (n int64, ok bool) {
	switch r.Kind() {
	case schema.KindSegmentV2:
		v, err := r.Get("slen")
		if err != nil {
			return 0, false
		}
		n, ok = v.(int64)
		return n, ok
	case schema.KindSegmentV1:
		if v, err := r.Tag("LN"); err == nil && v != nil {
			if n, ok := v.(int64); ok {
				return n, true
			}
		}
		v, err := r.Get("sequence")
		if err != nil || field.IsPlaceholder(v) {
			return 0, false
		}
		s, ok := v.(string)
		return int64(len(s)), ok
	}
	return 0, false
}

// Coverage computes count*unitLength/length from a count tag such as RC, FC
// or KC. ok is false when the tag or the length is missing or zero.
func (r *Record) Coverage(countTag string, unitLength int64) (float64, bool) {
	if !r.Kind().IsSegment() {
		return 0, false
	}
	length, ok := r.Length()
	if !ok || length == 0 {
		return 0, false
	}
	v, err := r.Tag(countTag)
	if err != nil {
		return 0, false
	}
	count, ok := v.(int64)
	if !ok {
		return 0, false
	}
	return float64(count) * float64(unitLength) / float64(length), true
}

// Extremity selects one end of a segment.
type Extremity byte

const (
	Left  Extremity = 'L'
	Right Extremity = 'R'
)

// Dovetails returns the links and edges overlapping the given ends of a
// segment, both ends when none is given.
func (r *Record) Dovetails(ends ...Extremity) []*Record {
	return r.byExtremity(schema.DovetailsL, schema.DovetailsR, ends)
}

// Gaps returns the gaps attached to the given ends of a segment, both ends
// when none is given.
func (r *Record) Gaps(ends ...Extremity) []*Record {
	return r.byExtremity(schema.GapsL, schema.GapsR, ends)
}

// Containments returns the containments and edges in which the segment is
// either the container or the contained one.
func (r *Record) Containments() []*Record {
	return r.dependentsIn(schema.EdgesToContained, schema.EdgesToContainers)
}

// Connectivity returns the number of dovetail overlaps on the left and right
// end of a segment. The record must be bound to a graph.
func (r *Record) Connectivity() (left, right int, err error) {
	if !r.Kind().IsSegment() {
		return 0, 0, gfaerrors.New(gfaerrors.ErrCodeUnsupported, "connectivity of a %s record", r.Kind())
	}
	if !r.Bound() {
		return 0, 0, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "segment %q is not connected to a graph", r.Name())
	}
	return len(r.Dependents(schema.DovetailsL)), len(r.Dependents(schema.DovetailsR)), nil
}

func (r *Record) byExtremity(left, right schema.Category, ends []Extremity) []*Record {
	if len(ends) == 0 {
		return r.dependentsIn(left, right)
	}
	var cats []schema.Category
	for _, e := range ends {
		switch e {
		case Left:
			cats = append(cats, left)
		case Right:
			cats = append(cats, right)
		}
	}
	return r.dependentsIn(cats...)
}

// dependentsIn concatenates the buckets of cats, dropping repeats. A link
// from a segment to itself sits in both dovetail buckets.
func (r *Record) dependentsIn(cats ...schema.Category) []*Record {
	var out []*Record
	for _, c := range cats {
		for _, d := range r.Dependents(c) {
			if !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	return out
}
