// Package record models one line of a GFA file as a typed record.
//
// # Construction
//
// A [Record] is built from the tokens of a line with [FromTokens] (or
// [Parse], which splits the line first), or programmatically with [New].
// The first token selects the [schema.Schema]; the next tokens fill the
// positional fields in schema order and every remaining token is a
// name:type:value tag:
//
//	r, err := record.Parse("S\t1\t10\tACGTACGTAC", record.Options{})
//	r.Kind()           // schema.KindSegmentV2
//	r.Get("length")    // int64(10), through the slen alias
//	r.String()         // "S\t1\t10\tACGTACGTAC"
//
// # Validation
//
// With [Strict] validation every token is decoded during construction and the
// first malformed token fails the call. With [Permissive] validation raw
// tokens are kept and decoded on first access; [Record.Validate] reports what
// a strict parse would have reported, and serialization writes undecoded
// tokens back unchanged.
//
// # Tags
//
// Predefined tags use the datatype declared by the schema, user tags the
// datatype of their first assignment. Header records may repeat a tag: the
// values are merged into a [field.Array]. Comment records have no tags at all
// and every tag access on them fails with UNSUPPORTED.
//
// # References
//
// Reference fields hold record names, never pointers. [Record.References]
// lists the names together with the dependent category under which the
// record registers on each target, and [Record.Targets] resolves them through
// the graph the record is bound to. A record only keeps a non-owning
// [Resolver] handle to that graph.
package record
