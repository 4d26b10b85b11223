package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.AddEdge("FF:0000102", "FF:10001-101A1")
	g.AddEdge("FF:0000102", "FF:10002-101A2")
	g.SetAttribute("FF:10001-101A1", "name", "hepatocyte, donor1")
	return g
}

func TestAnnotate_CopiesFirstRow(t *testing.T) {
	g := sampleGraph()
	rows := []Row{
		{"obo_id": "FF:10001-101A1", "name": "from table", "tpm": 12.5, "donor": int64(1)},
		{"obo_id": "FF:10001-101A1", "name": "replicate", "tpm": 13.0, "donor": int64(2)},
		{"obo_id": "FF:99999-999Z9", "tpm": 1.0},
	}

	_, err := Annotate(g, rows, "")
	require.NoError(t, err)

	attrs := g.Attributes("FF:10001-101A1")
	assert.Equal(t, "hepatocyte, donor1", attrs["name"], "name must not be overwritten")
	assert.Equal(t, 12.5, attrs["tpm"])
	assert.Equal(t, int64(1), attrs["donor"])
	assert.Equal(t, "FF:10001-101A1", attrs["obo_id"])

	assert.Empty(t, g.Attributes("FF:0000102"))
	assert.False(t, g.HasNode("FF:99999-999Z9"), "rows never add nodes")
}

func TestAnnotate_NameNotAddedEither(t *testing.T) {
	g := sampleGraph()
	_, err := Annotate(g, []Row{{"obo_id": "FF:10002-101A2", "name": "x"}}, "")
	require.NoError(t, err)

	_, ok := g.Attribute("FF:10002-101A2", "name")
	assert.False(t, ok)
}

func TestAnnotate_TooManyMatches(t *testing.T) {
	g := sampleGraph()
	before := g.Clone()
	rows := []Row{
		{"obo_id": "FF:10002-101A2", "tpm": 1.0},
		{"obo_id": "FF:10001-101A1", "tpm": 2.0},
		{"obo_id": "FF:10001-101A1", "tpm": 3.0},
		{"obo_id": "FF:10001-101A1", "tpm": 4.0},
	}

	_, err := Annotate(g, rows, "obo_id")
	require.Error(t, err)
	assert.True(t, graph.IsInvariantViolation(err))

	for _, id := range before.Nodes() {
		assert.Equal(t, before.Attributes(id), g.Attributes(id), "node %s was modified", id)
	}
}

func TestAnnotate_UnsupportedValueLeavesGraphUntouched(t *testing.T) {
	g := sampleGraph()
	rows := []Row{
		{"obo_id": "FF:10001-101A1", "tpm": 1.0},
		{"obo_id": "FF:10002-101A2", "bad": []string{"a"}},
	}

	_, err := Annotate(g, rows, "")
	require.Error(t, err)
	assert.True(t, graph.IsInvariantViolation(err))
	_, ok := g.Attribute("FF:10001-101A1", "tpm")
	assert.False(t, ok)
}

func TestAnnotate_CustomJoinColumn(t *testing.T) {
	g := sampleGraph()
	rows := []Row{
		{"sample": "FF:10002-101A2", "library": "CNhs11234"},
		{"obo_id": "FF:10001-101A1", "library": "ignored"},
	}

	_, err := Annotate(g, rows, "sample")
	require.NoError(t, err)

	v, _ := g.Attribute("FF:10002-101A2", "library")
	assert.Equal(t, "CNhs11234", v)
	_, ok := g.Attribute("FF:10001-101A1", "library")
	assert.False(t, ok)
}

func TestAnnotate_IntegerKeys(t *testing.T) {
	g := graph.New()
	g.AddEdge("42", "43")

	_, err := Annotate(g, []Row{{"id": int64(42), "flag": true}}, "id")
	require.NoError(t, err)
	v, _ := g.Attribute("42", "flag")
	assert.Equal(t, true, v)
}

func TestAnnotate_NormalizesValues(t *testing.T) {
	g := sampleGraph()
	count := uint16(7)
	rows := []Row{{
		"obo_id": "FF:10001-101A1",
		"count":  &count,
		"ratio":  float32(0.5),
		"empty":  (*int)(nil),
	}}

	_, err := Annotate(g, rows, "")
	require.NoError(t, err)

	attrs := g.Attributes("FF:10001-101A1")
	assert.Equal(t, int64(7), attrs["count"])
	assert.Equal(t, 0.5, attrs["ratio"])
	assert.Contains(t, attrs, "empty")
	assert.Nil(t, attrs["empty"])
}

func TestAnnotate_NilGraph(t *testing.T) {
	_, err := Annotate(nil, nil, "")
	assert.True(t, graph.IsInvariantViolation(err))
}

func TestAnnotatedNodes(t *testing.T) {
	g := sampleGraph()
	rows := []Row{
		{"obo_id": "FF:10001-101A1"},
		{"obo_id": "FF:10001-101A1"},
		{"obo_id": "FF:10002-101A2"},
		{"obo_id": "elsewhere"},
	}
	assert.Equal(t, 2, AnnotatedNodes(g, rows, ""))
}
