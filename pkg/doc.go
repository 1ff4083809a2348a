// Package pkg provides the core libraries of gfagraph, a codec and reference
// model for GFA (Graphical Fragment Assembly) files.
//
// # Overview
//
// A GFA file is a list of tab-separated lines. Each line is a record whose
// first character selects its kind: header, segment, link, containment,
// path, edge, fragment, gap, group or comment. Records refer to each other by
// name, and a record may be referenced before it is defined. The packages
// under pkg are layered leaves first:
//
//  1. [field] - Datatype codec: decode, encode and validate single field values
//  2. [schema] - Static per-kind metadata: fields, aliases, tags, references
//  3. [record] - One typed line, built from tokens and serialized back
//  4. [graph] - Name index with placeholders for forward references
//  5. [io] - Reading and writing whole GFA streams (and a JSON view)
//  6. [render] - DOT, SVG, PDF and PNG output of the segment graph
//
// # Architecture
//
// The typical data flow:
//
//	GFA text
//	    ↓
//	[io] package (split lines, detect version)
//	    ↓
//	[record] package (schema lookup + field decoding)
//	    ↓
//	[graph] package (register, resolve or create placeholders)
//	    ↓
//	GFA / JSON / DOT / SVG output
//
// # Quick Start
//
//	g, err := io.ImportGFA(ctx, "assembly.gfa", io.Options{})
//	if err != nil {
//	    return err
//	}
//	if err := g.Validate(); err != nil {
//	    // some referenced names were never defined
//	}
//	if seg, ok := g.Get("1"); ok {
//	    seq, _ := seg.Get("sequence")
//	    fmt.Println(seq)
//	}
//
// # Supporting Packages
//
// [errors] - Coded errors shared by all packages (FORMAT_ERROR, FIELD_COUNT,
// DUPLICATE_NAME, DANGLING_REFERENCE and friends).
//
// [config] - TOML or YAML configuration for the command line tool.
//
// [observability] - Optional hooks for parse, graph and render events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/record/...   # Specific package
//	go test -run Example       # Examples only
//
// [field]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/field
// [schema]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/schema
// [record]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/record
// [graph]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gfagraph/pkg/buildinfo
package pkg
