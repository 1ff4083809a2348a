package record

import (
	"regexp"
	"strings"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Validation selects when field tokens are decoded and checked.
type Validation int

const (
	// Strict decodes and validates every token during construction.
	Strict Validation = iota
	// Permissive keeps raw tokens and decodes them on first access.
	// Validate surfaces the errors a strict parse would have reported.
	Permissive
)

func (v Validation) String() string {
	if v == Permissive {
		return "permissive"
	}
	return "strict"
}

// Options controls record construction.
type Options struct {
	Validation Validation
	// Version is the dialect of the input. With AnyVersion the dialect of an
	// S line is guessed from its tokens.
	Version schema.Version
}

var (
	reTagToken = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]):([AifZJHB]):(.*)$`)
	reTagName  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]$`)
	reIntToken = regexp.MustCompile(`^[-+]?[0-9]+$`)
)

// IsTagToken reports whether tok has the name:type:value tag shape.
func IsTagToken(tok string) bool { return reTagToken.MatchString(tok) }

// SplitLine splits a line into tokens. Ordinary lines are split on tabs.
// Comment lines yield exactly three tokens: the marker, the content and the
// spacer, where the spacer is the run of spaces and tabs after the marker.
func SplitLine(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if rest, ok := strings.CutPrefix(line, "#"); ok {
		content := strings.TrimLeft(rest, " \t")
		return []string{"#", content, rest[:len(rest)-len(content)]}
	}
	return strings.Split(line, "\t")
}

// Parse splits line and builds a record from its tokens.
func Parse(line string, opts Options) (*Record, error) {
	return FromTokens(SplitLine(line), opts)
}

// FromTokens builds a record from the tokens of one line. The first token
// selects the schema; the following tokens fill the positional fields in
// order and the rest are tags.
func FromTokens(tokens []string, opts Options) (*Record, error) {
	if len(tokens) == 0 || tokens[0] == "" {
		return nil, gfaerrors.New(gfaerrors.ErrCodeFormat, "empty line")
	}
	version := opts.Version
	if tokens[0] == "S" && version == schema.AnyVersion {
		version = segmentVersion(tokens)
	}
	s, err := schema.Lookup(tokens[0], version)
	if err != nil {
		return nil, err
	}
	switch {
	case s.Kind == schema.KindComment:
		return commentFromTokens(tokens, opts)
	case s.Variadic:
		return customFromTokens(s, tokens, opts)
	}

	n := len(s.Fields)
	if len(tokens)-1 < n {
		return nil, gfaerrors.New(gfaerrors.ErrCodeFieldCount,
			"%s record needs %d positional fields, got %d", tokens[0], n, len(tokens)-1)
	}
	r := newRecord(s, n)
	for i, tok := range tokens[1 : n+1] {
		if err := r.initField(i, tok, opts); err != nil {
			return nil, err
		}
	}
	if err := r.initTags(tokens[n+1:], opts); err != nil {
		return nil, err
	}
	return r, nil
}

// segmentVersion tells the two segment layouts apart: a GFA2 segment has an
// integer length in its third token followed by a non-tag sequence token.
func segmentVersion(tokens []string) schema.Version {
	if len(tokens) >= 4 && reIntToken.MatchString(tokens[2]) && !IsTagToken(tokens[3]) {
		return schema.GFA2
	}
	return schema.GFA1
}

func commentFromTokens(tokens []string, opts Options) (*Record, error) {
	if len(tokens) > 3 {
		return nil, gfaerrors.New(gfaerrors.ErrCodeFormat,
			"comment lines carry no tags: %d extra tokens", len(tokens)-3)
	}
	content, spacer := "", " "
	if len(tokens) > 1 {
		content = tokens[1]
	}
	if len(tokens) > 2 {
		spacer = tokens[2]
	}
	r := newRecord(schema.Comment, 2)
	if err := r.initField(0, content, opts); err != nil {
		return nil, err
	}
	if err := r.initField(1, spacer, opts); err != nil {
		return nil, err
	}
	return r, nil
}

func customFromTokens(s *schema.Schema, tokens []string, opts Options) (*Record, error) {
	n := 1
	for n < len(tokens) && !IsTagToken(tokens[n]) {
		n++
	}
	r := newRecord(s, n)
	for i, tok := range tokens[:n] {
		if err := r.initField(i, tok, opts); err != nil {
			return nil, err
		}
	}
	if err := r.initTags(tokens[n:], opts); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) initField(i int, tok string, opts Options) error {
	v := value{dt: r.fieldDatatype(i), raw: tok}
	if opts.Validation == Strict {
		if _, err := v.get(r.fieldName(i)); err != nil {
			return err
		}
	}
	r.fields[i] = v
	return nil
}

func (r *Record) initTags(tokens []string, opts Options) error {
	for _, tok := range tokens {
		m := reTagToken.FindStringSubmatch(tok)
		if m == nil {
			return gfaerrors.New(gfaerrors.ErrCodeFormat, "invalid tag %q", tok)
		}
		name, dt, raw := m[1], field.Datatype(m[2]), m[3]
		if opts.Validation == Strict {
			if err := r.checkPredefined(name, dt); err != nil {
				return err
			}
		}
		if _, dup := r.tagIndex[name]; dup {
			if !r.schema.RepeatableTags {
				return gfaerrors.New(gfaerrors.ErrCodeFormat, "duplicate tag %s", name)
			}
			x, err := field.Decode(dt, raw)
			if err != nil {
				return gfaerrors.Wrap(gfaerrors.GetCode(err), err, "tag %s", name)
			}
			if err := r.MergeTag(name, x, dt); err != nil {
				return err
			}
			continue
		}
		v := value{dt: dt, raw: raw}
		if opts.Validation == Strict {
			if _, err := v.get(name); err != nil {
				return err
			}
		}
		r.tagIndex[name] = len(r.tags)
		r.tags = append(r.tags, tagEntry{name: name, value: v})
	}
	return nil
}

func (r *Record) checkPredefined(name string, dt field.Datatype) error {
	want, ok := r.schema.TagDatatype(name)
	if ok && want != dt {
		return &gfaerrors.TypeMismatchError{
			Field:    name,
			Expected: string(want),
			Actual:   "type code " + string(dt),
		}
	}
	return nil
}
