package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"balloonsim/geom"
	"balloonsim/sim"
)

func TestNewProvider_NoneIsNoop(t *testing.T) {
	for _, exporter := range []string{"", "none"} {
		p, err := NewProvider(Config{Exporter: exporter})
		require.NoError(t, err)
		require.False(t, p.Enabled())

		_, span := p.Tracer().Start(context.Background(), "noop")
		require.False(t, span.SpanContext().IsValid())
		span.End()
		require.NoError(t, p.Shutdown(context.Background()))
	}
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(Config{Exporter: "otlp"})
	require.ErrorContains(t, err, "unsupported exporter type")

	_, err = NewProvider(Config{Exporter: "file"})
	require.ErrorContains(t, err, "file_path required")
}

type stillElement struct{ box geom.Rect }

func (e *stillElement) Bounds() geom.Rect      { return e.box }
func (e *stillElement) SetOffset(_, _ float64) {}
func (e *stillElement) SetRotation(float64)    {}

func TestNewProvider_FileExportsClusterSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "spans.jsonl")
	p, err := NewProvider(Config{Exporter: "file", FilePath: path})
	require.NoError(t, err)
	require.True(t, p.Enabled())
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	c := sim.NewCluster("hero", nil, sim.DefaultOptions())
	c.Mount(context.Background(), []sim.Element{&stillElement{box: geom.Rect{W: 110, H: 150}}}, nil)
	c.Teardown()

	require.NoError(t, p.Shutdown(context.Background()))
	require.NoError(t, p.Shutdown(context.Background()), "shutdown is idempotent")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var span struct{ Name string }
		require.NoError(t, json.Unmarshal(sc.Bytes(), &span))
		names = append(names, span.Name)
	}
	require.NoError(t, sc.Err())
	require.Contains(t, names, "cluster.lifetime")
}
