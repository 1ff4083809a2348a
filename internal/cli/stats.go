package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// kindOrder is the display order of record kinds.
var kindOrder = []schema.Kind{
	schema.KindHeader,
	schema.KindComment,
	schema.KindSegmentV1,
	schema.KindSegmentV2,
	schema.KindLink,
	schema.KindContainment,
	schema.KindPath,
	schema.KindEdge,
	schema.KindFragment,
	schema.KindGap,
	schema.KindOrderedGroup,
	schema.KindUnorderedGroup,
	schema.KindCustom,
}

type kindCount struct {
	Kind  schema.Kind
	Count int
}

type categoryCount struct {
	Category schema.Category
	Count    int
}

// graphStats summarizes a graph.
type graphStats struct {
	Version       string
	Records       int
	Kinds         []kindCount
	Categories    []categoryCount
	Placeholders  int
	Segments      int
	SegmentLength int64
	NoLength      int
}

func collectStats(g *graph.Graph) graphStats {
	s := graphStats{Records: g.Len(), Placeholders: len(g.Placeholders())}
	if h := g.Header(); h != nil {
		if vn, err := h.Tag("VN"); err == nil && vn != nil {
			s.Version = fmt.Sprint(vn)
		}
	}

	counts := make(map[schema.Kind]int)
	refs := make(map[schema.Category]int)
	for _, r := range g.Records() {
		counts[r.Kind()]++
		if r.Kind().IsSegment() {
			s.Segments++
			if n, ok := r.Length(); ok {
				s.SegmentLength += n
			} else {
				s.NoLength++
			}
		}
		if list, err := r.References(); err == nil {
			for _, ref := range list {
				refs[ref.Category]++
			}
		}
	}
	for _, k := range kindOrder {
		if counts[k] > 0 {
			s.Kinds = append(s.Kinds, kindCount{k, counts[k]})
		}
	}
	for _, c := range schema.AllCategories() {
		if refs[c] > 0 {
			s.Categories = append(s.Categories, categoryCount{c, refs[c]})
		}
	}
	return s
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "stats FILE",
		Short:             "Summarize the records and references of a GFA file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGFAFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), args[0], collectStats(g))
			return nil
		},
	}
	return cmd
}

func printStats(w io.Writer, path string, s graphStats) {
	title := path
	if s.Version != "" {
		title += " (GFA " + s.Version + ")"
	}
	fmt.Fprintln(w, StyleTitle.Render(title))

	kinds := newTable("Record", "Count")
	for _, k := range s.Kinds {
		kinds.Row(kindStyle(k.Kind).Render(string(k.Kind)), strconv.Itoa(k.Count))
	}
	kinds.Row("total", strconv.Itoa(s.Records))
	fmt.Fprintln(w, kinds.Render())

	if len(s.Categories) > 0 {
		cats := newTable("Reference", "Count")
		for _, c := range s.Categories {
			cats.Row(string(c.Category), strconv.Itoa(c.Count))
		}
		fmt.Fprintln(w, cats.Render())
	}

	if s.Segments > 0 {
		printInfo(w, "%s bp in %d segment(s)", StyleNumber.Render(strconv.FormatInt(s.SegmentLength, 10)), s.Segments)
		if s.NoLength > 0 {
			printDetail(w, "%d segment(s) without sequence or length", s.NoLength)
		}
	}
	if s.Placeholders > 0 {
		printWarning(w, "%d unresolved reference(s)", s.Placeholders)
	}
}
