package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

func mustParse(t *testing.T, line string, opts Options) *Record {
	t.Helper()
	r, err := Parse(line, opts)
	require.NoError(t, err)
	return r
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		line string
		opts Options
		kind schema.Kind
	}{
		{"segment gfa2", "S\t1\t10\tACGTACGTAC", Options{}, schema.KindSegmentV2},
		{"segment gfa1", "S\t1\tACGT\tLN:i:4\tRC:i:20", Options{}, schema.KindSegmentV1},
		{"segment gfa1 no sequence", "S\ts1\t*", Options{}, schema.KindSegmentV1},
		{"link", "L\t1\t+\t2\t-\t4M\tID:Z:l1", Options{}, schema.KindLink},
		{"containment", "C\t1\t+\t2\t+\t12\t*", Options{}, schema.KindContainment},
		{"path", "P\tp1\t1+,2-\t4M", Options{}, schema.KindPath},
		{"edge", "E\te1\t1+\t2+\t90\t100$\t0\t10\t10M", Options{}, schema.KindEdge},
		{"fragment", "F\t1\tread1-\t0\t20\t5\t25$\t20M", Options{}, schema.KindFragment},
		{"gap", "G\tg1\t1+\t2-\t100\t*", Options{}, schema.KindGap},
		{"ordered group", "O\to1\t1+ e1+ 2+", Options{}, schema.KindOrderedGroup},
		{"unordered group", "U\tu1\t1 2 e1", Options{}, schema.KindUnorderedGroup},
		{"header", "H\tVN:Z:2.0\txx:J:{\"a\":[1,2]}", Options{}, schema.KindHeader},
		{"custom", "X\tfoo\tbar\txx:Z:yes", Options{Version: schema.GFA2}, schema.KindCustom},
		{"comment", "# hello world", Options{}, schema.KindComment},
		{"comment tab spacer", "#\thello\tS:i:1", Options{}, schema.KindComment},
		{"comment empty", "#", Options{}, schema.KindComment},
		{"tags", "S\t1\t*\tab:A:x\tcd:f:0.5\tef:H:0A1B\tgh:B:c,1,-2", Options{}, schema.KindSegmentV1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.line, tt.opts)
			require.Equal(t, tt.kind, r.Kind())
			out, err := r.Serialize()
			require.NoError(t, err)
			require.Equal(t, tt.line, out)

			again := mustParse(t, out, tt.opts)
			require.Equal(t, r.FieldNames(), again.FieldNames())
			for _, name := range r.FieldNames() {
				want, err := r.Get(name)
				require.NoError(t, err)
				got, err := again.Get(name)
				require.NoError(t, err)
				require.Equal(t, want, got, name)
			}
		})
	}
}

func TestSegmentFields(t *testing.T) {
	r := mustParse(t, "S\t1\t10\tACGTACGTAC", Options{})

	sid, err := r.Get("sid")
	require.NoError(t, err)
	require.Equal(t, "1", sid)

	slen, err := r.Get("length")
	require.NoError(t, err)
	require.Equal(t, int64(10), slen)

	require.Empty(t, r.TagNames())
	require.Equal(t, "1", r.Name())
}

func TestFromTokensErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		opts   Options
		code   gfaerrors.Code
	}{
		{"empty", nil, Options{}, gfaerrors.ErrCodeFormat},
		{"short link", []string{"L", "1", "+", "2"}, Options{}, gfaerrors.ErrCodeFieldCount},
		{"short segment", []string{"S", "1"}, Options{}, gfaerrors.ErrCodeFieldCount},
		{"short edge", []string{"E", "e1", "1+"}, Options{Version: schema.GFA2}, gfaerrors.ErrCodeFieldCount},
		{"unknown marker", []string{"X", "a"}, Options{}, gfaerrors.ErrCodeUnknownRecordType},
		{"gfa2 marker in gfa1", []string{"E", "*", "1+", "2+", "0", "1", "0", "1", "*"}, Options{Version: schema.GFA1}, gfaerrors.ErrCodeUnknownRecordType},
		{"bad orientation", []string{"L", "1", "x", "2", "+", "*"}, Options{}, gfaerrors.ErrCodeFormat},
		{"bad tag", []string{"S", "1", "*", "notatag"}, Options{}, gfaerrors.ErrCodeFormat},
		{"duplicate tag", []string{"S", "1", "*", "xx:i:1", "xx:i:2"}, Options{}, gfaerrors.ErrCodeFormat},
		{"predefined type", []string{"S", "1", "*", "LN:Z:x"}, Options{}, gfaerrors.ErrCodeTypeMismatch},
		{"header mixed types", []string{"H", "xx:i:1", "xx:Z:a"}, Options{}, gfaerrors.ErrCodeInconsistency},
		{"comment tokens", []string{"#", "a", " ", "b"}, Options{}, gfaerrors.ErrCodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTokens(tt.tokens, tt.opts)
			require.Error(t, err)
			require.True(t, gfaerrors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestFieldCountProperty(t *testing.T) {
	for _, marker := range []string{"L", "C", "P"} {
		s, err := schema.Lookup(marker, schema.GFA1)
		require.NoError(t, err)
		for n := 0; n < len(s.Fields); n++ {
			tokens := []string{marker}
			for range n {
				tokens = append(tokens, "1")
			}
			_, err := FromTokens(tokens, Options{Validation: Permissive})
			require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeFieldCount), "%s with %d fields", marker, n)
		}
	}
}

func TestPermissive(t *testing.T) {
	line := "L\t1\tx\t2\t-\t4M\tab:i:notanint"
	_, err := Parse(line, Options{})
	require.Error(t, err)

	r := mustParse(t, line, Options{Validation: Permissive})
	require.Equal(t, line, r.String())

	_, err = r.Get("from_orient")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeFormat))
	require.True(t, gfaerrors.Is(r.Validate(), gfaerrors.ErrCodeFormat))

	require.NoError(t, r.Set("from_orient", "+"))
	_, err = r.Tag("ab")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeFormat))
	require.NoError(t, r.SetTag("ab", 3, ""))
	require.NoError(t, r.Validate())
	require.Equal(t, "L\t1\t+\t2\t-\t4M\tab:i:3", r.String())
}

func TestPermissivePredefinedMismatch(t *testing.T) {
	r := mustParse(t, "S\t1\t*\tLN:Z:x", Options{Validation: Permissive})
	require.True(t, gfaerrors.Is(r.Validate(), gfaerrors.ErrCodeTypeMismatch))
}

func TestComment(t *testing.T) {
	r := mustParse(t, "#  free text xx:Z:not a tag", Options{})

	content, err := r.Get("content")
	require.NoError(t, err)
	require.Equal(t, "free text xx:Z:not a tag", content)
	spacer, err := r.Get("spacer")
	require.NoError(t, err)
	require.Equal(t, "  ", spacer)

	for _, op := range []func() error{
		func() error { _, err := r.Get("xx"); return err },
		func() error { return r.Set("xx", "value") },
		func() error { _, err := r.Tag("VN"); return err },
		func() error { return r.SetTag("VN", "1.0", field.String) },
		func() error { _, err := r.DeleteTag("xx"); return err },
		func() error { return r.MergeTag("xx", 1, "") },
	} {
		err := op()
		require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeUnsupported), "got %v", err)
		require.Contains(t, err.Error(), "comment")
	}

	require.NoError(t, r.Set("content", "i:1:2"))
	require.NoError(t, r.Set("spacer", ""))
	require.Equal(t, "#i:1:2", r.String())

	c, err := New(schema.KindComment, "hallo")
	require.NoError(t, err)
	require.Equal(t, "# hallo", c.String())
}

func TestHeaderMerge(t *testing.T) {
	r := mustParse(t, "H\tVN:Z:1.0\tTS:i:10\tTS:i:20", Options{})

	ts, err := r.Tag("TS")
	require.NoError(t, err)
	arr, ok := ts.(*field.Array)
	require.True(t, ok)
	require.Equal(t, []any{int64(10), int64(20)}, arr.Values())
	require.Equal(t, "H\tVN:Z:1.0\tTS:i:10\tTS:i:20", r.String())

	require.NoError(t, r.MergeTag("TS", 30, ""))
	require.Equal(t, 3, arr.Len())

	err = r.MergeTag("TS", "x", field.String)
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInconsistency))
	require.Equal(t, 3, arr.Len())

	require.NoError(t, r.MergeTag("xx", "a", ""))
	require.NoError(t, r.MergeTag("xx", "b", field.String))
	require.Equal(t, "H\tVN:Z:1.0\tTS:i:10\tTS:i:20\tTS:i:30\txx:Z:a\txx:Z:b", r.String())
}

func TestSetField(t *testing.T) {
	r, err := New(schema.KindSegmentV2, "s1", 4, "ACGT")
	require.NoError(t, err)
	require.Equal(t, "S\ts1\t4\tACGT", r.String())

	require.NoError(t, r.Set("length", int64(8)))
	require.NoError(t, r.Set("sequence", "*"))
	require.Equal(t, "S\ts1\t8\t*", r.String())

	err = r.Set("slen", "eight")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeFormat))

	err = r.Set("sid", 12)
	var tm *gfaerrors.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	require.Equal(t, "sid", tm.Field)

	_, err = New(schema.KindSegmentV2, "s1")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeFieldCount))
	_, err = New(schema.KindPlaceholder, "x")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeUnsupported))
}

func TestSetTag(t *testing.T) {
	r, err := New(schema.KindSegmentV1, "1", "ACGT")
	require.NoError(t, err)

	require.NoError(t, r.SetTag("LN", 4, ""))
	require.NoError(t, r.SetTag("xx", 1.5, ""))
	require.NoError(t, r.SetTag("zz", map[string]any{"k": "v"}, ""))
	require.NoError(t, r.Set("yy", "text"))

	dt, ok := r.TagDatatype("xx")
	require.True(t, ok)
	require.Equal(t, field.Float, dt)
	require.Equal(t, "S\t1\tACGT\tLN:i:4\txx:f:1.5\tzz:J:{\"k\":\"v\"}\tyy:Z:text", r.String())

	// The datatype of a user tag is fixed by its first assignment.
	err = r.SetTag("xx", "abc", "")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeFormat))

	err = r.SetTag("LN", 4, field.String)
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeTypeMismatch))

	err = r.SetTag("toolong", 1, "")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInvalidInput))

	deleted, err := r.DeleteTag("xx")
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, []string{"LN", "zz", "yy"}, r.TagNames())

	v, err := r.Tag("xx")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestReferences(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Reference
	}{
		{
			name: "link",
			line: "L\t1\t+\t2\t-\t4M",
			want: []Reference{{"1", "from", schema.DovetailsR}, {"2", "to", schema.DovetailsR}},
		},
		{
			name: "link reversed",
			line: "L\t1\t-\t2\t+\t4M",
			want: []Reference{{"1", "from", schema.DovetailsL}, {"2", "to", schema.DovetailsL}},
		},
		{
			name: "containment",
			line: "C\t1\t+\t2\t+\t12\t*",
			want: []Reference{{"1", "from", schema.EdgesToContained}, {"2", "to", schema.EdgesToContainers}},
		},
		{
			name: "path",
			line: "P\tp1\t1+,2-,1+\t*",
			want: []Reference{
				{"1", "segment_names", schema.Paths},
				{"2", "segment_names", schema.Paths},
				{"1", "segment_names", schema.Paths},
			},
		},
		{
			name: "edge dovetail",
			line: "E\te1\t1+\t2+\t90\t100$\t0\t10\t10M",
			want: []Reference{{"1", "sid1", schema.DovetailsR}, {"2", "sid2", schema.DovetailsL}},
		},
		{
			name: "edge dovetail reverse",
			line: "E\te1\t1-\t2-\t0\t10\t90\t100$\t10M",
			want: []Reference{{"1", "sid1", schema.DovetailsR}, {"2", "sid2", schema.DovetailsL}},
		},
		{
			name: "edge containment",
			line: "E\te2\t1+\t2+\t0\t100$\t10\t110\t*",
			want: []Reference{{"1", "sid1", schema.EdgesToContainers}, {"2", "sid2", schema.EdgesToContained}},
		},
		{
			name: "edge internal",
			line: "E\t*\t1+\t2-\t10\t20\t30\t40\t*",
			want: []Reference{{"1", "sid1", schema.Internals}, {"2", "sid2", schema.Internals}},
		},
		{
			name: "fragment",
			line: "F\t1\tread1-\t0\t20\t5\t25$\t*",
			want: []Reference{{"1", "sid", schema.Fragments}},
		},
		{
			name: "gap",
			line: "G\tg1\t1+\t2-\t100\t*",
			want: []Reference{{"1", "sid1", schema.GapsR}, {"2", "sid2", schema.GapsR}},
		},
		{
			name: "ordered group",
			line: "O\to1\t1+ e1-",
			want: []Reference{{"1", "items", schema.Paths}, {"e1", "items", schema.Paths}},
		},
		{
			name: "unordered group",
			line: "U\tu1\t1 g1",
			want: []Reference{{"1", "items", schema.Sets}, {"g1", "items", schema.Sets}},
		},
		{
			name: "segment",
			line: "S\t1\t*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.line, Options{})
			got, err := r.References()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRenameReference(t *testing.T) {
	r := mustParse(t, "P\tp1\t1+,2-,1+\t*", Options{})
	n, err := r.RenameReference("1", "s1")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "P\tp1\ts1+,2-,s1+\t*", r.String())

	e := mustParse(t, "E\te1\t1+\t2+\t90\t100$\t0\t10\t10M", Options{})
	n, err = e.RenameReference("2", "x")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "E\te1\t1+\tx+\t90\t100$\t0\t10\t10M", e.String())

	p := mustParse(t, "P\tp2\t1+,2-\t*", Options{})
	require.Error(t, p.CheckRenameReference("1", "x+,y"))
	n, err = p.RenameReference("1", "x+,y")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeTypeMismatch), "got %v", err)
	require.Zero(t, n)
	require.Equal(t, "P\tp2\t1+,2-\t*", p.String())

	require.NoError(t, p.CheckRenameReference("2", "a,b"))
	n, err = p.RenameReference("2", "a,b")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "P\tp2\t1+,a,b-\t*", p.String())
}

type mapResolver map[string]*Record

func (m mapResolver) Lookup(name string) (*Record, bool) {
	r, ok := m[name]
	return r, ok
}

func (m mapResolver) DependentsOf(*Record, schema.Category) []*Record { return nil }

func TestTargets(t *testing.T) {
	s1 := mustParse(t, "S\t1\t*", Options{})
	s2 := mustParse(t, "S\t2\t*", Options{})
	l := mustParse(t, "L\t1\t+\t2\t-\t*", Options{})

	_, err := l.Targets("from")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInvalidInput))

	res := mapResolver{"1": s1, "2": s2}
	l.Bind(res)
	require.True(t, l.Bound())

	got, err := l.Targets("to_segment")
	require.NoError(t, err)
	require.Equal(t, []*Record{s2}, got)

	_, err = l.Targets("overlap")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInvalidInput))

	// Name and reference fields belong to the graph while bound.
	require.True(t, gfaerrors.Is(l.Set("from", "3"), gfaerrors.ErrCodeUnsupported))
	require.NoError(t, l.Set("overlap", "3M"))

	delete(res, "2")
	_, err = l.Targets("to")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeNotFound))

	l.Unbind()
	require.NoError(t, l.Set("from", "3"))
}

func TestPlaceholder(t *testing.T) {
	p := NewPlaceholder("7")
	require.True(t, p.Virtual())
	require.Equal(t, "7", p.Name())
	require.Equal(t, schema.KindPlaceholder, p.Kind())
	require.Equal(t, "?record_type?\t7\t"+VirtualTrailer, p.String())
}

func TestClone(t *testing.T) {
	r := mustParse(t, "H\tVN:Z:1.0\tTS:i:1\tTS:i:2", Options{})
	c, err := r.Clone()
	require.NoError(t, err)
	require.Equal(t, r.String(), c.String())
	require.False(t, c.Bound())

	require.NoError(t, c.MergeTag("TS", 3, ""))
	require.NotEqual(t, r.String(), c.String())

	s := mustParse(t, "S\t1\t*\tRC:i:5", Options{})
	cs, err := s.Clone()
	require.NoError(t, err)
	require.NoError(t, cs.SetTag("RC", 6, ""))
	rc, err := s.Tag("RC")
	require.NoError(t, err)
	require.Equal(t, int64(5), rc)
}

func TestCustomRecord(t *testing.T) {
	r := mustParse(t, "X\tfoo\tbar\txx:Z:yes", Options{Version: schema.GFA2})
	require.Equal(t, []string{"record_type", "field1", "field2"}, r.FieldNames())

	v, err := r.Get("field2")
	require.NoError(t, err)
	require.Equal(t, "bar", v)

	require.NoError(t, r.Set("field1", "baz"))
	require.Equal(t, "X\tbaz\tbar\txx:Z:yes", r.String())
}

func TestLengthAndCoverage(t *testing.T) {
	v1 := mustParse(t, "S\t1\tACGTACGT\tRC:i:80", Options{})
	n, ok := v1.Length()
	require.True(t, ok)
	require.Equal(t, int64(8), n)
	cov, ok := v1.Coverage("RC", 1)
	require.True(t, ok)
	require.InDelta(t, 10.0, cov, 1e-9)

	ln := mustParse(t, "S\t1\t*\tLN:i:100\tKC:i:50", Options{})
	n, ok = ln.Length()
	require.True(t, ok)
	require.Equal(t, int64(100), n)
	cov, ok = ln.Coverage("KC", 4)
	require.True(t, ok)
	require.InDelta(t, 2.0, cov, 1e-9)

	v2 := mustParse(t, "S\t1\t10\t*", Options{})
	n, ok = v2.Length()
	require.True(t, ok)
	require.Equal(t, int64(10), n)
	_, ok = v2.Coverage("RC", 1)
	require.False(t, ok)

	noLen := mustParse(t, "S\t1\t*", Options{})
	_, ok = noLen.Length()
	require.False(t, ok)

	l := mustParse(t, "L\t1\t+\t2\t-\t*", Options{})
	_, ok = l.Length()
	require.False(t, ok)
}
