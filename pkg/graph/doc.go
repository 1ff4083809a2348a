// Package graph keeps a set of GFA records and the references between them.
//
// # Overview
//
// Reference fields of a record hold names. A [Graph] resolves those names to
// records and, for every target, remembers which records depend on it and in
// which [schema.Category]: a link leaving the right end of segment "1" is in
// the right dovetails of "1", a path visiting it is in its paths, and so on.
//
//	g := graph.New()
//	l, _ := record.Parse("L\t1\t+\t2\t-\t4M", record.Options{})
//	_ = g.Register(l)           // "1" and "2" become placeholders
//	s, _ := record.Parse("S\t1\tACGT", record.Options{})
//	_ = g.Register(s)           // s takes over the placeholder "1"
//	s.Dependents(schema.DovetailsR) // [l]
//
// # Placeholders
//
// A name that is referenced before it is defined resolves to a placeholder
// record. Registering a real record under that name replaces the placeholder
// and moves its dependents over, so records may be registered in any order.
// Placeholders left at the end of the input are reported by [Graph.Validate].
//
// # Ownership
//
// The graph owns its records. A registered record is bound to the graph and
// refuses direct edits of its name and reference fields; use [Graph.Rename] to
// rename it, or [Graph.Disconnect] it, edit, and register it again.
package graph
