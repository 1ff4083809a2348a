package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/record"
)

func TestSpinQuietWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	ran := false
	err := spin(context.Background(), &buf, "Rendering svg...", func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
	require.Empty(t, buf.String())
}

func TestSpinReturnsStepError(t *testing.T) {
	boom := errors.New("graphviz failed")
	err := spin(context.Background(), &bytes.Buffer{}, "Rendering png...", func() error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Rendering svg...")
	s.interactive = true
	s.start(context.Background())
	time.Sleep(200 * time.Millisecond)
	s.stop()
	s.stop()

	out := buf.String()
	require.Contains(t, out, "Rendering svg...")
	require.True(t, strings.HasSuffix(out, "\r"), "line should be cleared, got %q", out)
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(&buf, "Rendering dot...")
	s.interactive = true
	s.start(ctx)
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}
	s.stop()
}

func TestRenderToWritesFile(t *testing.T) {
	g := graph.New()
	for _, line := range []string{"S\t1\t*", "S\t2\t*", "L\t1\t+\t2\t-\t*"} {
		r, err := record.Parse(line, record.Options{})
		require.NoError(t, err)
		require.NoError(t, g.Register(r))
	}

	var status bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "graph.dot")
	err := renderTo(context.Background(), g, "dot", path, &renderOpts{status: &status})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"1" -> "2"`)
	require.Empty(t, status.String())
}
