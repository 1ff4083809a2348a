package graph

import (
	"io"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/field"
	"github.com/matzehuels/gfagraph/pkg/observability"
	"github.com/matzehuels/gfagraph/pkg/record"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Graph owns a set of records and keeps their cross references consistent.
//
// Named records are indexed by name, anonymous ones (edges or groups with a
// "*" identifier, fragments, custom records) by a generated UUID. Names that
// are referenced before they are defined resolve to placeholder records,
// which the real record replaces when it is registered.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use: callers that parse in parallel must serialize Register, Disconnect,
// ResolveReference and Rename.
type Graph struct {
	records   map[string]*record.Record
	anonymous map[uuid.UUID]*record.Record
	keys      map[*record.Record]uuid.UUID
	seq       map[*record.Record]uint64
	next      uint64
	deps      map[*record.Record]map[schema.Category][]*record.Record
	refs      map[*record.Record][]record.Reference
	header    *record.Record

	logger *log.Logger
	hooks  observability.GraphHooks
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug output about placeholders.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithHooks overrides the globally registered graph hooks.
func WithHooks(h observability.GraphHooks) Option {
	return func(g *Graph) {
		if h != nil {
			g.hooks = h
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		records:   make(map[string]*record.Record),
		anonymous: make(map[uuid.UUID]*record.Record),
		keys:      make(map[*record.Record]uuid.UUID),
		seq:       make(map[*record.Record]uint64),
		deps:      make(map[*record.Record]map[schema.Category][]*record.Record),
		refs:      make(map[*record.Record][]record.Reference),
		logger:    log.New(io.Discard),
		hooks:     observability.Graph(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds r to the graph and connects its references.
//
// A name held by a placeholder is taken over: every record that depended on
// the placeholder now depends on r, and the placeholder is dropped. The
// categories those dependents registered under must all be accepted by the
// schema of r, otherwise Register fails with INCONSISTENCY. A name already
// held by a real record fails with DUPLICATE_NAME and leaves the graph
// unchanged.
//
// Header records are merged into the single aggregate header returned by
// Header; repeated tags with distinct values become arrays.
func (g *Graph) Register(r *record.Record) error {
	if r == nil {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "nil record")
	}
	if r.Bound() {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "%s record %q is already registered", r.Kind(), r.Name())
	}
	if r.Virtual() {
		return gfaerrors.New(gfaerrors.ErrCodeUnsupported, "placeholders are created by reference resolution")
	}
	if r.Kind() == schema.KindHeader {
		return g.mergeHeader(r)
	}

	refs, err := r.References()
	if err != nil {
		return err
	}
	name := r.Name()
	var replaced *record.Record
	if name != "" {
		if existing, ok := g.records[name]; ok {
			if !existing.Virtual() {
				return gfaerrors.New(gfaerrors.ErrCodeDuplicateName, "name %q is already used by a %s record", name, existing.Kind())
			}
			if err := g.checkAccepts(r, g.deps[existing]); err != nil {
				return err
			}
			replaced = existing
		}
	}
	for _, ref := range refs {
		if ref.Name == name {
			continue
		}
		if t, ok := g.records[ref.Name]; ok && !t.Schema().Accepts(ref.Category) {
			return gfaerrors.New(gfaerrors.ErrCodeInconsistency,
				"%s record cannot reference %s record %q as %s", r.Kind(), t.Kind(), ref.Name, ref.Category)
		}
	}

	switch {
	case replaced != nil:
		g.deps[r] = g.deps[replaced]
		g.forget(replaced)
		g.records[name] = r
		n := g.countDependents(r)
		g.logger.Debug("placeholder resolved", "name", name, "kind", r.Kind(), "dependents", n)
		g.hooks.OnPlaceholderResolved(name, string(r.Kind()), n)
	case name != "":
		g.records[name] = r
	default:
		key := uuid.New()
		g.anonymous[key] = r
		g.keys[r] = key
	}
	g.adopt(r)

	for _, ref := range refs {
		target := g.resolve(ref.Name)
		g.addDependent(target, ref.Category, r)
	}
	g.refs[r] = refs
	return nil
}

func (g *Graph) mergeHeader(h *record.Record) error {
	if g.header == nil {
		g.header = h
		g.adopt(h)
		return nil
	}
	merged, err := g.header.Clone()
	if err != nil {
		return err
	}
	tags, err := h.Tags()
	if err != nil {
		return err
	}
	for _, t := range tags {
		values := []any{t.Value}
		if a, ok := t.Value.(*field.Array); ok {
			values = a.Values()
		}
		for _, v := range values {
			if headerHas(merged, t.Name, v) {
				continue
			}
			if err := merged.MergeTag(t.Name, v, t.Datatype); err != nil {
				return err
			}
		}
	}
	seq := g.seq[g.header]
	g.header.Unbind()
	delete(g.seq, g.header)
	g.header = merged
	merged.Bind(g)
	g.seq[merged] = seq
	return nil
}

func headerHas(h *record.Record, name string, v any) bool {
	cur, err := h.Tag(name)
	if err != nil || cur == nil {
		return false
	}
	if a, ok := cur.(*field.Array); ok {
		return slices.ContainsFunc(a.Values(), func(x any) bool { return reflect.DeepEqual(x, v) })
	}
	return reflect.DeepEqual(cur, v)
}

func (g *Graph) checkAccepts(r *record.Record, buckets map[schema.Category][]*record.Record) error {
	for c, list := range buckets {
		if len(list) > 0 && !r.Schema().Accepts(c) {
			return gfaerrors.New(gfaerrors.ErrCodeInconsistency,
				"%s record %q cannot replace a placeholder referenced as %s", r.Kind(), r.Name(), c)
		}
	}
	return nil
}

// adopt binds r and gives it the next sequence number.
func (g *Graph) adopt(r *record.Record) {
	r.Bind(g)
	g.seq[r] = g.next
	g.next++
}

// forget drops every trace of r from the graph bookkeeping except the
// dependents of others on it, which callers move or clear themselves.
func (g *Graph) forget(r *record.Record) {
	if key, ok := g.keys[r]; ok {
		delete(g.anonymous, key)
		delete(g.keys, r)
	} else if name := r.Name(); name != "" && g.records[name] == r {
		delete(g.records, name)
	}
	delete(g.deps, r)
	delete(g.refs, r)
	delete(g.seq, r)
	r.Unbind()
}

func (g *Graph) addDependent(target *record.Record, c schema.Category, dep *record.Record) {
	buckets := g.deps[target]
	if buckets == nil {
		buckets = make(map[schema.Category][]*record.Record)
		g.deps[target] = buckets
	}
	if !slices.Contains(buckets[c], dep) {
		buckets[c] = append(buckets[c], dep)
	}
}

func (g *Graph) removeDependent(target *record.Record, c schema.Category, dep *record.Record) {
	buckets := g.deps[target]
	if buckets == nil {
		return
	}
	buckets[c] = slices.DeleteFunc(buckets[c], func(x *record.Record) bool { return x == dep })
	if len(buckets[c]) == 0 {
		delete(buckets, c)
	}
	if len(buckets) == 0 {
		delete(g.deps, target)
	}
}

func (g *Graph) countDependents(r *record.Record) int {
	n := 0
	for _, list := range g.deps[r] {
		n += len(list)
	}
	return n
}

// resolve returns the record named name, creating a placeholder if needed.
func (g *Graph) resolve(name string) *record.Record {
	if r, ok := g.records[name]; ok {
		return r
	}
	p := record.NewPlaceholder(name)
	g.records[name] = p
	g.adopt(p)
	g.logger.Debug("placeholder created", "name", name)
	g.hooks.OnPlaceholderCreated(name)
	return p
}

// ResolveReference returns the record named name, registering a placeholder
// when the name is not known yet. A real record that does not accept every
// one of cats fails with INCONSISTENCY.
func (g *Graph) ResolveReference(name string, cats ...schema.Category) (*record.Record, error) {
	if name == "" || name == "*" {
		return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "cannot resolve the empty name")
	}
	if r, ok := g.records[name]; ok {
		for _, c := range cats {
			if !r.Schema().Accepts(c) {
				return nil, gfaerrors.New(gfaerrors.ErrCodeInconsistency, "%s record %q cannot be referenced as %s", r.Kind(), name, c)
			}
		}
		return r, nil
	}
	return g.resolve(name), nil
}

// Disconnect removes r from the graph. r leaves the dependent buckets of
// every record it referenced; placeholders left without dependents are
// dropped. When other records still depend on r, a placeholder takes over
// its name so that their references keep resolving.
func (g *Graph) Disconnect(r *record.Record) error {
	if !g.owns(r) {
		return gfaerrors.New(gfaerrors.ErrCodeNotFound, "%s record %q is not in the graph", r.Kind(), r.Name())
	}
	if r == g.header {
		g.header = nil
		delete(g.seq, r)
		r.Unbind()
		g.hooks.OnDisconnect("", string(r.Kind()))
		return nil
	}
	if r.Virtual() && g.countDependents(r) > 0 {
		return gfaerrors.New(gfaerrors.ErrCodeUnsupported, "placeholder %q still has dependents", r.Name())
	}

	for _, ref := range g.refs[r] {
		target, ok := g.records[ref.Name]
		if !ok || target == r {
			continue
		}
		g.removeDependent(target, ref.Category, r)
		if target.Virtual() && g.countDependents(target) == 0 {
			g.logger.Debug("placeholder dropped", "name", ref.Name)
			g.forget(target)
		}
	}

	name := r.Name()
	buckets := g.deps[r]
	g.forget(r)
	if name != "" && len(buckets) > 0 {
		p := record.NewPlaceholder(name)
		g.records[name] = p
		g.adopt(p)
		g.deps[p] = buckets
		g.logger.Debug("placeholder created for removed record", "name", name)
		g.hooks.OnPlaceholderCreated(name)
	}
	g.hooks.OnDisconnect(name, string(r.Kind()))
	return nil
}

func (g *Graph) owns(r *record.Record) bool {
	if r == nil {
		return false
	}
	_, ok := g.seq[r]
	return ok
}

// DependentsOf returns the records that registered on r under c.
func (g *Graph) DependentsOf(r *record.Record, c schema.Category) []*record.Record {
	return slices.Clone(g.deps[r][c])
}

// Dependents returns every record depending on r, in registration order and
// without duplicates.
func (g *Graph) Dependents(r *record.Record) []*record.Record {
	var out []*record.Record
	for _, list := range g.deps[r] {
		for _, d := range list {
			if !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	g.sortBySeq(out)
	return out
}

// Rename changes the name of a registered record and rewrites the reference
// fields of its dependents. Renaming onto a placeholder resolves it.
func (g *Graph) Rename(r *record.Record, newName string) error {
	if !g.owns(r) || r.Virtual() {
		return gfaerrors.New(gfaerrors.ErrCodeNotFound, "%s record %q is not a registered record", r.Kind(), r.Name())
	}
	oldName := r.Name()
	if oldName == "" {
		return gfaerrors.New(gfaerrors.ErrCodeUnsupported, "anonymous %s records cannot be renamed", r.Kind())
	}
	if newName == oldName {
		return nil
	}
	placeholder, taken := g.records[newName]
	if taken && !placeholder.Virtual() {
		return gfaerrors.New(gfaerrors.ErrCodeDuplicateName, "name %q is already used by a %s record", newName, placeholder.Kind())
	}
	if taken {
		if err := g.checkAccepts(r, g.deps[placeholder]); err != nil {
			return err
		}
	}

	dependents := g.Dependents(r)
	for _, d := range dependents {
		if err := d.CheckRenameReference(oldName, newName); err != nil {
			return gfaerrors.Wrap(gfaerrors.GetCode(err), err, "cannot rename %q to %q", oldName, newName)
		}
	}

	r.Unbind()
	err := r.Set(r.Schema().NameField, newName)
	r.Bind(g)
	if err != nil {
		return err
	}

	for _, d := range dependents {
		d.Unbind()
		_, err := d.RenameReference(oldName, newName)
		d.Bind(g)
		if err != nil {
			return err
		}
		for i := range g.refs[d] {
			if g.refs[d][i].Name == oldName {
				g.refs[d][i].Name = newName
			}
		}
	}

	delete(g.records, oldName)
	if taken {
		for c, list := range g.deps[placeholder] {
			for _, d := range list {
				g.addDependent(r, c, d)
			}
		}
		g.forget(placeholder)
		g.hooks.OnPlaceholderResolved(newName, string(r.Kind()), g.countDependents(r))
	}
	g.records[newName] = r
	return nil
}

// Lookup returns the record named name, placeholders included.
func (g *Graph) Lookup(name string) (*record.Record, bool) {
	r, ok := g.records[name]
	return r, ok
}

// Get returns the real record named name.
func (g *Graph) Get(name string) (*record.Record, bool) {
	r, ok := g.records[name]
	if !ok || r.Virtual() {
		return nil, false
	}
	return r, true
}

// Header returns the aggregate header, or nil when no H line was registered.
func (g *Graph) Header() *record.Record { return g.header }

// Records returns every real record, the header first if present, in
// registration order.
func (g *Graph) Records() []*record.Record {
	out := make([]*record.Record, 0, len(g.seq))
	for r := range g.seq {
		if !r.Virtual() {
			out = append(out, r)
		}
	}
	g.sortBySeq(out)
	if g.header != nil {
		i := slices.Index(out, g.header)
		copy(out[1:i+1], out[:i])
		out[0] = g.header
	}
	return out
}

// RecordsOf returns the real records of one kind in registration order.
func (g *Graph) RecordsOf(kind schema.Kind) []*record.Record {
	return slices.DeleteFunc(g.Records(), func(r *record.Record) bool { return r.Kind() != kind })
}

// Placeholders returns the unresolved placeholders in creation order.
func (g *Graph) Placeholders() []*record.Record {
	var out []*record.Record
	for _, r := range g.records {
		if r.Virtual() {
			out = append(out, r)
		}
	}
	g.sortBySeq(out)
	return out
}

// Len returns the number of real records.
func (g *Graph) Len() int {
	n := 0
	for r := range g.seq {
		if !r.Virtual() {
			n++
		}
	}
	return n
}

// Validate reports placeholders that are still unresolved. Call it once the
// whole dataset has been registered.
func (g *Graph) Validate() error {
	ph := g.Placeholders()
	if len(ph) == 0 {
		return nil
	}
	names := make([]string, len(ph))
	for i, p := range ph {
		names[i] = p.Name()
	}
	sort.Strings(names)
	return gfaerrors.New(gfaerrors.ErrCodeDanglingReference,
		"%d unresolved reference(s): %s", len(names), strings.Join(names, ", "))
}

func (g *Graph) sortBySeq(rs []*record.Record) {
	sort.Slice(rs, func(i, j int) bool { return g.seq[rs[i]] < g.seq[rs[j]] })
}
