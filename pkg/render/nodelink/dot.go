package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/observability"
	"github.com/matzehuels/gfagraph/pkg/record"
	"github.com/matzehuels/gfagraph/pkg/render"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the segment length and tags to node labels and the
	// overlap or position to edge labels. When false, only names are shown.
	Detailed bool

	// Scale is the PNG resolution factor used by [Render]. Zero means 2.
	Scale float64
}

// Kinds drawn as arrows between the first two names they reference.
var edgeKinds = map[schema.Kind]string{
	schema.KindLink:        "solid",
	schema.KindContainment: "bold",
	schema.KindEdge:        "solid",
	schema.KindGap:         "dotted",
}

// ToDOT converts a graph to Graphviz DOT format for node-link visualization.
// Segments and unresolved placeholders become nodes; links, containments,
// edges and gaps become arrows. Placeholders are drawn dashed on grey so
// missing segments stand out.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, r := range nodes(g) {
		label := fmtLabel(r, opts.Detailed)
		attrs := fmtAttrs(r, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", r.Name(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range g.Records() {
		style, ok := edgeKinds[r.Kind()]
		if !ok {
			continue
		}
		refs, err := r.References()
		if err != nil || len(refs) < 2 {
			continue
		}
		attrs := []string{fmt.Sprintf("style=%s", style)}
		if label := edgeLabel(r, opts.Detailed); label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", label))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", refs[0].Name, refs[1].Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodes returns the segments and placeholders of g in registration order.
func nodes(g *graph.Graph) []*record.Record {
	var out []*record.Record
	for _, r := range g.Records() {
		if r.Kind().IsSegment() {
			out = append(out, r)
		}
	}
	return append(out, g.Placeholders()...)
}

func fmtLabel(r *record.Record, detailed bool) string {
	if !detailed || r.Virtual() {
		return r.Name()
	}

	var parts []string
	if n, ok := r.Length(); ok {
		parts = append(parts, fmt.Sprintf("length: %d", n))
	}
	if tags, err := r.Tags(); err == nil {
		for _, t := range tags {
			if t.Name == "LN" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %v", t.Name, t.Value))
		}
	}
	if len(parts) == 0 {
		return r.Name()
	}
	return r.Name() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(r *record.Record, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if r.Virtual() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func edgeLabel(r *record.Record, detailed bool) string {
	switch r.Kind() {
	case schema.KindLink, schema.KindContainment:
		from, _ := r.Get("from_orient")
		to, _ := r.Get("to_orient")
		label := fmt.Sprintf("%v%v", from, to)
		if detailed {
			if pos, err := r.Get("pos"); err == nil && pos != nil {
				label += fmt.Sprintf(" @%v", pos)
			}
			if ov, err := r.Get("overlap"); err == nil {
				label += fmt.Sprintf(" %v", ov)
			}
		}
		return label
	case schema.KindGap:
		if detailed {
			if d, err := r.Get("disp"); err == nil {
				return fmt.Sprintf("gap %v", d)
			}
		}
		return "gap"
	case schema.KindEdge:
		if detailed {
			if name := r.Name(); name != "" {
				return name
			}
		}
	}
	return ""
}

// Render draws g in the given format: DOT source, SVG, PDF or PNG.
// Render hooks from pkg/observability observe every call.
func Render(ctx context.Context, g *graph.Graph, format string, opts Options) (out []byte, err error) {
	if !render.ValidFormat(format) {
		return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput,
			"unknown format %q (want one of %s)", format, strings.Join(render.Formats(), ", "))
	}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, len(nodes(g)))
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, time.Since(start), err) }()

	dot := ToDOT(g, opts)
	if format == render.FormatDOT {
		return []byte(dot), nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	case render.FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2
		}
		return render.ToPNG(ctx, svg, scale)
	}
	return svg, nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
