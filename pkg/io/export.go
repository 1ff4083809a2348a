package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/record"
)

// WriteOptions configures writing.
type WriteOptions struct {
	// Placeholders appends a line for every unresolved placeholder. Those
	// lines are marked with a co:Z tag and do not parse back.
	Placeholders bool
}

// WriteGFA writes every record of g in canonical form, one per line, in
// registration order with the merged header first.
func WriteGFA(g *graph.Graph, w io.Writer, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	records := g.Records()
	if opts.Placeholders {
		records = append(records, g.Placeholders()...)
	}
	for _, r := range records {
		line, err := r.Serialize()
		if err != nil {
			return fmt.Errorf("serialize %s %q: %w", r.Kind(), r.Name(), err)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return bw.Flush()
}

// ExportGFA writes g to a GFA file at path.
func ExportGFA(g *graph.Graph, path string, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGFA(g, f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type document struct {
	Records      []jsonRecord `json:"records"`
	Placeholders []string     `json:"placeholders,omitempty"`
}

type jsonRecord struct {
	Kind       string          `json:"kind"`
	Name       string          `json:"name,omitempty"`
	Fields     []jsonField     `json:"fields,omitempty"`
	Tags       []jsonTag       `json:"tags,omitempty"`
	References []jsonReference `json:"references,omitempty"`
}

type jsonField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type jsonTag struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type jsonReference struct {
	Field    string `json:"field"`
	Target   string `json:"target"`
	Category string `json:"category"`
}

// WriteJSON writes g as a JSON document. Field and tag values are the
// canonical GFA tokens, so the document carries exactly what WriteGFA would
// write plus the reference structure.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	doc := document{Records: make([]jsonRecord, 0, g.Len())}
	for _, r := range g.Records() {
		jr, err := toJSON(r)
		if err != nil {
			return fmt.Errorf("record %s %q: %w", r.Kind(), r.Name(), err)
		}
		doc.Records = append(doc.Records, jr)
	}
	for _, p := range g.Placeholders() {
		doc.Placeholders = append(doc.Placeholders, p.Name())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toJSON(r *record.Record) (jsonRecord, error) {
	line, err := r.Serialize()
	if err != nil {
		return jsonRecord{}, err
	}
	tokens := record.SplitLine(line)
	if r.Schema().Marker != "" {
		tokens = tokens[1:]
	}

	jr := jsonRecord{Kind: string(r.Kind()), Name: r.Name()}
	names := r.FieldNames()
	for i, name := range names {
		if i < len(tokens) {
			jr.Fields = append(jr.Fields, jsonField{Name: name, Value: tokens[i]})
		}
	}
	if len(tokens) > len(names) {
		for _, tok := range tokens[len(names):] {
			parts := strings.SplitN(tok, ":", 3)
			if len(parts) != 3 {
				continue
			}
			jr.Tags = append(jr.Tags, jsonTag{Name: parts[0], Type: parts[1], Value: parts[2]})
		}
	}

	refs, err := r.References()
	if err != nil {
		return jsonRecord{}, err
	}
	for _, ref := range refs {
		jr.References = append(jr.References, jsonReference{
			Field:    ref.Field,
			Target:   ref.Name,
			Category: string(ref.Category),
		})
	}
	return jr, nil
}
