package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/record"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

func parse(t *testing.T, line string) *record.Record {
	t.Helper()
	r, err := record.Parse(line, record.Options{})
	require.NoError(t, err)
	return r
}

func build(t *testing.T, lines ...string) (*Graph, []*record.Record) {
	t.Helper()
	g := New()
	var rs []*record.Record
	for _, line := range lines {
		r := parse(t, line)
		require.NoError(t, g.Register(r), line)
		rs = append(rs, r)
	}
	return g, rs
}

func names(rs []*record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

type recordingHooks struct {
	created  []string
	resolved []string
	removed  []string
}

func (h *recordingHooks) OnPlaceholderCreated(name string) { h.created = append(h.created, name) }
func (h *recordingHooks) OnPlaceholderResolved(name, _ string, _ int) {
	h.resolved = append(h.resolved, name)
}
func (h *recordingHooks) OnDisconnect(name, _ string) { h.removed = append(h.removed, name) }

func TestRegisterCreatesPlaceholders(t *testing.T) {
	hooks := &recordingHooks{}
	g := New(WithHooks(hooks))
	l := parse(t, "L\t1\t+\t2\t-\t4M")
	require.NoError(t, g.Register(l))

	require.True(t, l.Bound())
	require.Equal(t, []string{"1", "2"}, names(g.Placeholders()))
	require.Equal(t, []string{"1", "2"}, hooks.created)
	require.Equal(t, 1, g.Len())

	p1, ok := g.Lookup("1")
	require.True(t, ok)
	require.True(t, p1.Virtual())
	require.Equal(t, []*record.Record{l}, p1.Dependents(schema.DovetailsR))

	p2, _ := g.Lookup("2")
	require.Equal(t, []*record.Record{l}, p2.Dependents(schema.DovetailsR))
	require.Empty(t, p2.Dependents(schema.DovetailsL))

	_, ok = g.Get("1")
	require.False(t, ok)
	require.True(t, gfaerrors.Is(g.Validate(), gfaerrors.ErrCodeDanglingReference))
}

func TestRegisterResolvesPlaceholder(t *testing.T) {
	hooks := &recordingHooks{}
	g := New(WithHooks(hooks))
	l := parse(t, "L\t1\t+\t2\t-\t4M")
	require.NoError(t, g.Register(l))

	s1 := parse(t, "S\t1\tACGT")
	s2 := parse(t, "S\t2\t*")
	require.NoError(t, g.Register(s1))
	require.NoError(t, g.Register(s2))

	require.Empty(t, g.Placeholders())
	require.NoError(t, g.Validate())
	require.Equal(t, []string{"1", "2"}, hooks.resolved)

	got, ok := g.Get("1")
	require.True(t, ok)
	require.Same(t, s1, got)
	require.Equal(t, []*record.Record{l}, s1.Dependents(schema.DovetailsR))
	require.Equal(t, []*record.Record{l}, s2.Dependents(schema.DovetailsR))

	targets, err := l.Targets("from")
	require.NoError(t, err)
	require.Equal(t, []*record.Record{s1}, targets)
}

func TestRegisterOrderIndependent(t *testing.T) {
	lines := []string{
		"S\t1\t*",
		"S\t2\t*",
		"S\t3\t*",
		"L\t1\t+\t2\t+\t*",
		"L\t2\t-\t3\t+\t*",
		"C\t1\t+\t3\t+\t5\t*",
		"P\tp1\t1+,2+\t*",
	}
	forward, _ := build(t, lines...)
	reversed := make([]string, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}
	backward, _ := build(t, reversed...)

	for _, g := range []*Graph{forward, backward} {
		require.Empty(t, g.Placeholders())
		s2, _ := g.Get("2")
		require.Len(t, s2.Dependents(schema.DovetailsL), 2)
		require.Len(t, s2.Dependents(schema.Paths), 1)
		s1, _ := g.Get("1")
		require.Len(t, s1.Dependents(schema.EdgesToContained), 1)
		s3, _ := g.Get("3")
		require.Len(t, s3.Dependents(schema.EdgesToContainers), 1)
		require.Len(t, s3.Dependents(schema.DovetailsL), 1)
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	g, rs := build(t, "S\t1\tACGT")
	err := g.Register(parse(t, "S\t1\tTTTT"))
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeDuplicateName))

	got, _ := g.Get("1")
	require.Same(t, rs[0], got)
	require.Equal(t, 1, g.Len())

	require.True(t, gfaerrors.Is(g.Register(rs[0]), gfaerrors.ErrCodeInvalidInput))
	require.True(t, gfaerrors.Is(g.Register(nil), gfaerrors.ErrCodeInvalidInput))
	require.True(t, gfaerrors.Is(g.Register(record.NewPlaceholder("x")), gfaerrors.ErrCodeUnsupported))
}

func TestRegisterIncompatibleCategory(t *testing.T) {
	g, _ := build(t, "L\tp1\t+\t2\t+\t*")

	// A path cannot stand at the end of a link.
	err := g.Register(parse(t, "P\tp1\t2+\t*"))
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInconsistency))
	p, _ := g.Lookup("p1")
	require.True(t, p.Virtual())

	g2, _ := build(t, "P\tp1\t2+\t*")
	err = g2.Register(parse(t, "L\tp1\t+\t2\t+\t*"))
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInconsistency))
	require.Equal(t, 1, g2.Len())
}

func TestAnonymousRecords(t *testing.T) {
	g, rs := build(t,
		"H\tVN:Z:2.0",
		"S\t1\t100\t*",
		"S\t2\t100\t*",
		"E\t*\t1+\t2-\t10\t20\t30\t40\t*",
		"F\t1\tread1-\t0\t20\t5\t25$\t*",
		"E\t*\t1+\t2+\t90\t100$\t0\t10\t*",
	)
	require.Equal(t, 6, g.Len())
	require.Len(t, g.RecordsOf(schema.KindEdge), 2)
	require.Equal(t, rs, g.Records())

	s1, _ := g.Get("1")
	require.Equal(t, []*record.Record{rs[3]}, s1.Dependents(schema.Internals))
	require.Equal(t, []*record.Record{rs[4]}, s1.Dependents(schema.Fragments))
	require.Equal(t, []*record.Record{rs[5]}, s1.Dependents(schema.DovetailsR))
}

func TestHeaderMerge(t *testing.T) {
	g, _ := build(t,
		"H\tVN:Z:1.0",
		"H\tTS:i:100",
		"H\tVN:Z:1.0",
		"H\txx:Z:a",
		"S\t1\t*",
		"H\txx:Z:b",
	)
	h := g.Header()
	require.NotNil(t, h)
	require.Equal(t, h, g.Records()[0])

	vn, err := h.Tag("VN")
	require.NoError(t, err)
	require.Equal(t, "1.0", vn)

	ts, err := h.Tag("TS")
	require.NoError(t, err)
	require.Equal(t, int64(100), ts)

	xx, err := h.Tag("xx")
	require.NoError(t, err)
	arr, ok := xx.(*field.Array)
	require.True(t, ok)
	require.Equal(t, []any{"a", "b"}, arr.Values())
	require.Equal(t, "H\tVN:Z:1.0\tTS:i:100\txx:Z:a\txx:Z:b", h.String())

	err = g.Register(parse(t, "H\txx:i:5"))
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInconsistency))
	require.Equal(t, "H\tVN:Z:1.0\tTS:i:100\txx:Z:a\txx:Z:b", g.Header().String())
}

func TestResolveReference(t *testing.T) {
	g, rs := build(t, "P\tp1\t1+\t*")

	r, err := g.ResolveReference("p1")
	require.NoError(t, err)
	require.Same(t, rs[0], r)

	_, err = g.ResolveReference("p1", schema.DovetailsL)
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInconsistency))

	p, err := g.ResolveReference("9", schema.DovetailsL)
	require.NoError(t, err)
	require.True(t, p.Virtual())
	require.Equal(t, "9", p.Name())

	again, err := g.ResolveReference("9")
	require.NoError(t, err)
	require.Same(t, p, again)

	_, err = g.ResolveReference("")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInvalidInput))
}

func TestDisconnect(t *testing.T) {
	g, rs := build(t, "S\t1\t*", "L\t1\t+\t2\t+\t*")
	s1, l := rs[0], rs[1]

	require.NoError(t, g.Disconnect(l))
	require.False(t, l.Bound())
	require.Empty(t, s1.Dependents(schema.DovetailsR))
	// The placeholder for "2" had no other dependent.
	require.Empty(t, g.Placeholders())
	require.Equal(t, []*record.Record{s1}, g.Records())

	require.True(t, gfaerrors.Is(g.Disconnect(l), gfaerrors.ErrCodeNotFound))

	// Edit and register again.
	require.NoError(t, l.Set("to", "1"))
	require.NoError(t, g.Register(l))
	require.Len(t, s1.Dependents(schema.DovetailsR), 1)
	require.Len(t, s1.Dependents(schema.DovetailsL), 1)
}

func TestDisconnectReferencedRecord(t *testing.T) {
	hooks := &recordingHooks{}
	g := New(WithHooks(hooks))
	s1 := parse(t, "S\t1\t*")
	l := parse(t, "L\t1\t+\t1\t-\t*")
	require.NoError(t, g.Register(s1))
	require.NoError(t, g.Register(l))

	require.NoError(t, g.Disconnect(s1))
	require.Equal(t, []string{"1"}, hooks.removed)

	p, ok := g.Lookup("1")
	require.True(t, ok)
	require.True(t, p.Virtual())
	require.Equal(t, []*record.Record{l}, p.Dependents(schema.DovetailsR))

	targets, err := l.Targets("to")
	require.NoError(t, err)
	require.Equal(t, []*record.Record{p}, targets)

	require.True(t, gfaerrors.Is(g.Disconnect(p), gfaerrors.ErrCodeUnsupported))

	s1b := parse(t, "S\t1\tACGT")
	require.NoError(t, g.Register(s1b))
	require.Empty(t, g.Placeholders())
	require.Equal(t, []*record.Record{l}, s1b.Dependents(schema.DovetailsR))
}

func TestRename(t *testing.T) {
	g, rs := build(t,
		"S\t1\t*",
		"S\t2\t*",
		"L\t1\t+\t2\t+\t*",
		"P\tp1\t1+,2+,1-\t*",
	)
	s1, l, p := rs[0], rs[2], rs[3]

	require.NoError(t, g.Rename(s1, "a"))
	require.Equal(t, "a", s1.Name())
	_, ok := g.Lookup("1")
	require.False(t, ok)
	got, ok := g.Get("a")
	require.True(t, ok)
	require.Same(t, s1, got)

	require.Equal(t, "L\ta\t+\t2\t+\t*", l.String())
	require.Equal(t, "P\tp1\ta+,2+,a-\t*", p.String())
	require.Equal(t, []*record.Record{l}, s1.Dependents(schema.DovetailsR))

	require.True(t, gfaerrors.Is(g.Rename(s1, "2"), gfaerrors.ErrCodeDuplicateName))

	// Disconnecting the link after a rename still finds its targets.
	require.NoError(t, g.Disconnect(l))
	require.Empty(t, s1.Dependents(schema.DovetailsR))
}

func TestRenameOntoPlaceholder(t *testing.T) {
	g, rs := build(t, "S\t1\t*", "L\t1\t+\t9\t+\t*")
	s1, l := rs[0], rs[1]
	require.Len(t, g.Placeholders(), 1)

	require.NoError(t, g.Rename(s1, "9"))
	require.Empty(t, g.Placeholders())
	require.Equal(t, "L\t9\t+\t9\t+\t*", l.String())
	require.Equal(t, []*record.Record{l}, s1.Dependents(schema.DovetailsR))
	require.Equal(t, []*record.Record{l}, s1.Dependents(schema.DovetailsL))
}

func TestRenameCommaName(t *testing.T) {
	g, rs := build(t, "S\t1\t*", "S\t2\t*", "P\tp1\t1+,2-\t*")
	s1, p := rs[0], rs[2]

	require.NoError(t, g.Rename(s1, "a,b"))
	require.Equal(t, "P\tp1\ta,b+,2-\t*", p.String())

	back := parse(t, p.String())
	got, err := back.Get("segment_names")
	require.NoError(t, err)
	require.Equal(t, []field.OrientedRef{{Name: "a,b", Orient: field.Forward}, {Name: "2", Orient: field.Reverse}}, got)

	err = g.Rename(s1, "a+,b")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeTypeMismatch), "got %v", err)
	require.Equal(t, "a,b", s1.Name())
}

func TestRenameLeavesGraphUnchangedOnFailure(t *testing.T) {
	// A GFA2 segment name may contain "+," but a GFA1 path cannot list it.
	g, rs := build(t, "S\ts1\t4\tACGT", "S\t2\t*", "P\tp1\ts1+,2-\t*")
	s1, p := rs[0], rs[2]
	require.Equal(t, schema.KindSegmentV2, s1.Kind())

	err := g.Rename(s1, "x+,y")
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeTypeMismatch), "got %v", err)

	require.Equal(t, "s1", s1.Name())
	got, ok := g.Get("s1")
	require.True(t, ok)
	require.Same(t, s1, got)
	_, ok = g.Lookup("x+,y")
	require.False(t, ok)
	require.Equal(t, "P\tp1\ts1+,2-\t*", p.String())
	require.Equal(t, []*record.Record{p}, s1.Dependents(schema.Paths))

	require.NoError(t, g.Rename(s1, "s9"))
	require.Equal(t, "P\tp1\ts9+,2-\t*", p.String())
}

func TestRenameErrors(t *testing.T) {
	g, rs := build(t, "E\t*\t1+\t2+\t0\t10\t0\t10\t*")
	require.True(t, gfaerrors.Is(g.Rename(rs[0], "e"), gfaerrors.ErrCodeUnsupported))

	p, _ := g.Lookup("1")
	require.True(t, gfaerrors.Is(g.Rename(p, "x"), gfaerrors.ErrCodeNotFound))
	require.True(t, gfaerrors.Is(g.Rename(parse(t, "S\tz\t*"), "x"), gfaerrors.ErrCodeNotFound))
}

func TestBoundRecordRefusesReferenceEdit(t *testing.T) {
	g, rs := build(t, "S\t1\t*", "L\t1\t+\t2\t+\t*")
	require.True(t, gfaerrors.Is(rs[0].Set("name", "x"), gfaerrors.ErrCodeUnsupported))
	require.True(t, gfaerrors.Is(rs[1].Set("to", "x"), gfaerrors.ErrCodeUnsupported))
	require.NoError(t, rs[1].Set("overlap", "5M"))
	require.NoError(t, rs[0].Set("LN", int64(4)))
	require.Equal(t, 2, g.Len())
}

func TestGroupsAndGaps(t *testing.T) {
	g, rs := build(t,
		"S\t1\t100\t*",
		"S\t2\t100\t*",
		"E\te1\t1+\t2+\t90\t100$\t0\t10\t*",
		"G\tg1\t1+\t2-\t100\t*",
		"O\to1\t1+ e1+ 2+",
		"U\tu1\t1 g1 o1",
	)
	s1, s2, e1, g1, o1, u1 := rs[0], rs[1], rs[2], rs[3], rs[4], rs[5]
	require.Empty(t, g.Placeholders())

	require.Equal(t, []*record.Record{g1}, s1.Dependents(schema.GapsR))
	require.Equal(t, []*record.Record{g1}, s2.Dependents(schema.GapsR))
	require.Equal(t, []*record.Record{o1}, e1.Dependents(schema.Paths))
	require.Equal(t, []*record.Record{u1}, g1.Dependents(schema.Sets))
	require.Equal(t, []*record.Record{u1}, o1.Dependents(schema.Sets))
	require.Equal(t, []*record.Record{e1, g1, o1, u1}, g.Dependents(s1))
}

func TestSegmentAccessors(t *testing.T) {
	g, rs := build(t,
		"S\t1\t*",
		"S\t2\t*",
		"S\t3\t*",
		"L\t1\t+\t2\t+\t*",
		"L\t3\t+\t1\t+\t*",
		"C\t1\t+\t3\t+\t0\t*",
	)
	s1, s2, s3, l12, l31, c := rs[0], rs[1], rs[2], rs[3], rs[4], rs[5]

	require.Equal(t, []*record.Record{l12}, s1.Dovetails(record.Right))
	require.Equal(t, []*record.Record{l31}, s1.Dovetails(record.Left))
	require.Equal(t, []*record.Record{l31, l12}, s1.Dovetails())
	require.Equal(t, []*record.Record{l12}, s2.Dovetails())
	require.Equal(t, []*record.Record{c}, s1.Containments())
	require.Equal(t, []*record.Record{c}, s3.Containments())
	require.Empty(t, s2.Containments())

	left, right, err := s1.Connectivity()
	require.NoError(t, err)
	require.Equal(t, 1, left)
	require.Equal(t, 1, right)

	_, _, err = l12.Connectivity()
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeUnsupported))
	_, _, err = parse(t, "S\tz\t*").Connectivity()
	require.True(t, gfaerrors.Is(err, gfaerrors.ErrCodeInvalidInput))

	require.NoError(t, g.Disconnect(l12))
	require.Empty(t, s1.Dovetails(record.Right))
}

func TestSegmentGaps(t *testing.T) {
	_, rs := build(t,
		"S\t1\t100\t*",
		"S\t2\t100\t*",
		"G\tg1\t1+\t2-\t100\t*",
	)
	s1, s2, g1 := rs[0], rs[1], rs[2]
	require.Equal(t, []*record.Record{g1}, s1.Gaps(record.Right))
	require.Empty(t, s1.Gaps(record.Left))
	require.Equal(t, []*record.Record{g1}, s2.Gaps())
}

func TestSelfLinkListedOnce(t *testing.T) {
	_, rs := build(t, "S\t1\t*", "L\t1\t+\t1\t+\t*")
	require.Equal(t, []*record.Record{rs[1]}, rs[0].Dovetails())
}
