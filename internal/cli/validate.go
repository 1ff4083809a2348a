package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/graph"
)

// errInvalid is returned once every problem has been printed.
var errInvalid = errors.New("validation failed")

type validateOpts struct {
	allowDangling bool
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check GFA files for malformed lines and unresolved references",
		Long: `Parse every line of each file and report all problems at once: malformed
fields and tags, duplicate names, and names that are referenced but never
defined. Use "-" to read standard input.`,
		Example: `  gfagraph validate assembly.gfa
  gfagraph validate --permissive --allow-dangling part1.gfa part2.gfa`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeGFAFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				ok, err := c.runValidate(cmd, path, opts)
				if err != nil {
					return err
				}
				failed = failed || !ok
			}
			if failed {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.allowDangling, "allow-dangling", false, "do not fail on unresolved references")

	return cmd
}

// runValidate prints the problems of one file and reports whether it is valid.
func (c *CLI) runValidate(cmd *cobra.Command, path string, opts validateOpts) (bool, error) {
	w := cmd.OutOrStdout()
	g, readErr := c.loadGraph(cmd.Context(), path, true)
	if g == nil {
		return false, readErr
	}

	problems := splitJoined(readErr)
	problems = append(problems, deferredErrors(g)...)

	dangling := g.Validate()
	if len(problems) == 0 && (dangling == nil || opts.allowDangling) {
		printSuccess(w, "%s: %d records", path, g.Len())
		if dangling != nil {
			printWarning(w, "%d unresolved reference(s)", len(g.Placeholders()))
		}
		return true, nil
	}

	printError(w, "%s: %d problem(s)", path, len(problems))
	for _, p := range problems {
		printDetail(w, "%s", p)
	}
	if dangling != nil {
		reportDangling(w, g, opts.allowDangling)
	}
	return false, nil
}

// deferredErrors collects what permissive parsing postponed.
func deferredErrors(g *graph.Graph) []error {
	var errs []error
	for _, r := range g.Records() {
		if err := r.Validate(); err != nil {
			label := string(r.Kind())
			if name := r.Name(); name != "" {
				label += " " + name
			}
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
	}
	return errs
}

func reportDangling(w io.Writer, g *graph.Graph, warnOnly bool) {
	report := printError
	if warnOnly {
		report = printWarning
	}
	placeholders := g.Placeholders()
	report(w, "%d unresolved reference(s)", len(placeholders))
	for _, p := range placeholders {
		var users []string
		for _, d := range g.Dependents(p) {
			users = append(users, truncate(d.String(), 2*maxLabel))
		}
		printDetail(w, "%s %s %s", p.Name(), iconArrow, strings.Join(users, "; "))
	}
}

// splitJoined flattens an errors.Join result.
func splitJoined(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// ExitCode maps an error to a process exit status: 2 for usage and config
// problems, 1 for everything else.
func ExitCode(err error) int {
	if gfaerrors.Is(err, gfaerrors.ErrCodeInvalidInput) {
		return 2
	}
	return 1
}
