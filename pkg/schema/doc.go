// Package schema declares the record variants of the GFA1 and GFA2 formats.
//
// A [Schema] is static metadata: the record-type marker, the ordered
// positional fields with their datatypes, field aliases, predefined tags,
// which fields reference other records, and the dependent categories under
// which referencing records register themselves. Schemas carry no behavior;
// package record and package graph read them at call time.
//
// Use [Lookup] to select a schema by marker and dialect:
//
//	s, err := schema.Lookup("S", schema.GFA2)
//	// s == schema.SegmentV2, s.Fields == sid, slen, sequence
//
// Unknown markers are custom records in GFA2 and an UNKNOWN_RECORD_TYPE
// error in GFA1. The [Placeholder] schema has no marker; it is only used by
// the graph for names that are referenced before they are defined.
package schema
