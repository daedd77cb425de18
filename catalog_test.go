package schematic_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/reoring/schematic"
	js "github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newCatalog(t *testing.T) *schematic.Catalog {
	t.Helper()
	c := schematic.NewCatalog()
	require.NoError(t, schematic.Register[AppConfig](c, "app-config", "Application Config"))
	require.NoError(t, schematic.Register[definitions](c, "definitions", "Definitions"))
	require.NoError(t, schematic.Register[treeNode](c, "tree", "Tree"))
	require.NoError(t, schematic.Register[HashMapProperty](c, "hashmap", "HashMap Property"))
	return c
}

func TestCatalog_RegisterAndSelect(t *testing.T) {
	c := newCatalog(t)

	err := schematic.Register[Data](c, "tree", "Dup")
	require.Error(t, err)
	require.Error(t, c.Add(schematic.Entry{Name: "neither"}))
	require.Error(t, c.Add(schematic.Entry{Title: "no name", Shape: &shape.Primitive{}}))

	var names []string
	for _, e := range c.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"app-config", "definitions", "tree", "hashmap"}, names)

	sel, err := c.Select("tree", "app-config")
	require.NoError(t, err)
	require.Len(t, sel, 2)
	assert.Equal(t, "tree", sel[0].Name)

	_, err = c.Select("missing")
	require.Error(t, err)

	assert.Panics(t, func() { schematic.MustRegister[Data](c, "hashmap", "Again") })
}

func TestGenerateAll_MatchesSequentialOutput(t *testing.T) {
	c := newCatalog(t)
	for _, workers := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			results, err := schematic.GenerateAll(context.Background(), c.Entries(), schematic.WithWorkers(workers))
			require.NoError(t, err)
			require.Len(t, results, 4)
			for i, e := range c.Entries() {
				assert.Equal(t, e.Name, results[i].Entry.Name)
				want, err := e.Generate()
				require.NoError(t, err)
				assert.Equal(t, pretty(t, want), pretty(t, results[i].Document))
			}
		})
	}
}

func TestGenerateAll_ShapeEntry(t *testing.T) {
	c := schematic.NewCatalog()
	obj := &shape.Object{Fields: []shape.Field{{Name: "on", Required: true, Type: &shape.Primitive{Of: shape.Boolean}}}}
	require.NoError(t, c.Add(schematic.Entry{Name: "toggle", Title: "Toggle", Shape: obj}))

	results, err := schematic.GenerateAll(context.Background(), c.Entries())
	require.NoError(t, err)
	b, err := js.Marshal(results[0].Document, js.DialectClassic)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Toggle","type":"object","properties":{"on":{"type":"boolean"}},"required":["on"],"additionalProperties":false}`, string(b))
}

func TestGenerateAll_ReportsFailingEntry(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, schematic.Register[looping](c, "loop", "Loop"))

	_, err := schematic.GenerateAll(context.Background(), c.Entries(), schematic.WithWorkers(2))
	require.Error(t, err)
	var ee *schematic.EntryError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "loop", ee.Name)
	assert.True(t, schematic.HasCode(err, schematic.CodeRecursiveType))
}

func TestGenerateAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := schematic.GenerateAll(ctx, newCatalog(t).Entries())
	require.ErrorIs(t, err, context.Canceled)
}
