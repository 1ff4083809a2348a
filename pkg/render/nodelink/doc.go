// Package nodelink renders GFA graphs as node-link diagrams.
//
// # Overview
//
// Segments become boxes and links, containments, edges and gaps become
// arrows between them, laid out left to right by Graphviz. Names that are
// referenced but never defined are drawn as dashed grey boxes.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Render] does both and also produces PDF and PNG:
//
//	png, err := nodelink.Render(ctx, g, render.FormatPNG, nodelink.Options{Scale: 2})
//
// # Options
//
//   - Detailed: node labels list the segment length and tags, edge labels
//     the overlap
//   - Scale: PNG resolution factor
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
