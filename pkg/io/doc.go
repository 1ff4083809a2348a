// Package io reads and writes GFA files.
//
// # Reading
//
// [ReadGFA] reads one record per line and registers each into a new
// [graph.Graph]. Records may reference names that appear later in the input;
// those resolve to placeholders until the defining line is read:
//
//	g, err := io.ImportGFA(ctx, "assembly.gfa", io.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := g.Validate(); err != nil {
//	    // some names were referenced but never defined
//	}
//
// The GFA version comes from [Options.Version] when set, otherwise from the
// VN tag of the header. Before a header is seen, segment lines are told apart
// by their shape: a GFA2 segment has an integer length as its second field.
//
// Errors are prefixed with the line number and keep the underlying error
// code. With [Options.KeepGoing] every bad line is reported and the graph
// holds the rest.
//
// # Writing
//
// [WriteGFA] writes records in canonical form: the merged header first, then
// the others in the order they were registered. Reading a file and writing
// it back reproduces the input up to tag formatting and header merging.
//
// [WriteJSON] writes the same records as a JSON document that also lists
// each reference with its category:
//
//	{
//	  "records": [
//	    {
//	      "kind": "link",
//	      "fields": [{"name": "from", "value": "1"}, ...],
//	      "references": [{"field": "from", "target": "1", "category": "dovetails_R"}, ...]
//	    }
//	  ],
//	  "placeholders": ["2"]
//	}
package io
