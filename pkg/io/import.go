package io

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/observability"
	"github.com/matzehuels/gfagraph/pkg/record"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// maxLineSize bounds a single GFA line. Segment sequences of whole
// chromosomes fit comfortably.
const maxLineSize = 1 << 30

// Options configures reading.
type Options struct {
	// Validation selects strict or permissive record parsing.
	Validation record.Validation

	// Version forces a GFA version. When empty the version is taken from the
	// VN tag of the first header that has one, and guessed per segment line
	// before that.
	Version schema.Version

	// KeepGoing collects record errors instead of stopping at the first one.
	// The returned graph then holds every record that could be registered.
	KeepGoing bool

	// Source names the input in log messages and hooks.
	Source string

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// ReadGFA reads GFA lines from r and registers them into a new graph.
//
// Empty lines are skipped. Errors carry the 1-based line number and keep
// the error code of the record or graph failure underneath, so
// gfaerrors.Is(err, gfaerrors.ErrCodeDuplicateName) works on the result.
// Unresolved references are not an error here; call [graph.Graph.Validate]
// once the input is complete.
//
// ReadGFA does not close r. It stops early when ctx is cancelled.
func ReadGFA(ctx context.Context, r io.Reader, opts Options) (g *graph.Graph, err error) {
	logger := opts.logger()
	source := opts.Source
	if source == "" {
		source = "<input>"
	}

	hooks := observability.Parse()
	hooks.OnParseStart(ctx, source)
	start := time.Now()
	lineNo := 0
	defer func() {
		hooks.OnParseComplete(ctx, source, lineNo, time.Since(start), err)
	}()

	g = graph.New(graph.WithLogger(logger))
	version := opts.Version
	var errs []error

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}

		rec, err := record.Parse(line, record.Options{Validation: opts.Validation, Version: version})
		if err == nil {
			err = g.Register(rec)
		}
		if err != nil {
			err = fmt.Errorf("line %d: %w", lineNo, err)
			if !opts.KeepGoing {
				return nil, err
			}
			logger.Debug("skipping line", "line", lineNo, "err", err)
			errs = append(errs, err)
			continue
		}

		if version == schema.AnyVersion && rec.Kind() == schema.KindHeader {
			version = headerVersion(rec)
			if version != schema.AnyVersion {
				logger.Debug("detected GFA version", "version", version, "line", lineNo)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, gfaerrors.Wrap(gfaerrors.ErrCodeFormat, err, "read %s", source)
	}

	logger.Debug("read GFA", "source", source, "lines", lineNo, "records", g.Len(), "placeholders", len(g.Placeholders()))
	if len(errs) > 0 {
		return g, errors.Join(errs...)
	}
	return g, nil
}

// headerVersion maps the VN tag of a header to a version.
func headerVersion(h *record.Record) schema.Version {
	v, err := h.Tag("VN")
	if err != nil {
		return schema.AnyVersion
	}
	s, _ := v.(string)
	switch {
	case strings.HasPrefix(s, "1."):
		return schema.GFA1
	case strings.HasPrefix(s, "2."):
		return schema.GFA2
	}
	return schema.AnyVersion
}

// ImportGFA reads the GFA file at path. The path is used as the source name
// when opts.Source is empty.
func ImportGFA(ctx context.Context, path string, opts Options) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if opts.Source == "" {
		opts.Source = path
	}
	return ReadGFA(ctx, f, opts)
}
