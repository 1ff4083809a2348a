// Package render turns a GFA graph into pictures.
//
// The [nodelink] subpackage draws segments as boxes and links, containments,
// edges and gaps as arrows between them, through Graphviz. This package holds
// the output format names and the SVG to PDF or PNG conversion shared by
// renderers:
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// PDF and PNG conversion shells out to rsvg-convert from librsvg.
//
// [nodelink]: github.com/matzehuels/gfagraph/pkg/render/nodelink
package render
