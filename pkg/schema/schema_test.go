package schema_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonloc/pkg/schema"
)

const testSchema = `{
    "type": "object",
    "properties": {
        "zeta": {"type": "string", "localizable": true},
        "id": {"type": "string"},
        "alpha": {"type": "string", "localizable": true, "description": "first letter"},
        "count": {"type": "number", "localizable": true},
        "flag": {"type": "boolean", "localizable": "true"},
        "odd": true,
        "list": {"type": "object", "localizable": true}
    },
    "required": ["id"]
}`

func TestParse(t *testing.T) {
	t.Parallel()

	props, err := schema.Parse([]byte(testSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "count", "list"}, props.Names())
	assert.Equal(t, 4, props.Len())

	alpha, ok := props.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "string", alpha.Type)
	assert.Equal(t, "first letter", alpha.Description)
	assert.True(t, alpha.Localizable)

	_, ok = props.Get("id")
	assert.False(t, ok)
	_, ok = props.Get("flag")
	assert.False(t, ok, "localizable must be the boolean true")
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"empty":     ``,
		"array":     `[]`,
		"bad props": `{"properties": []}`,
		"truncated": `{"properties": {"a": {"type": "string"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := schema.Parse([]byte(doc))
			assert.ErrorIs(t, err, schema.ErrInvalidSchema)
		})
	}
}

func TestParseWithoutProperties(t *testing.T) {
	t.Parallel()

	props, err := schema.Parse([]byte(`{"type": "object", "properties": null}`))
	require.NoError(t, err)
	assert.Zero(t, props.Len())
}

func TestPropertyMatches(t *testing.T) {
	t.Parallel()

	str := schema.Property{Name: "title", Type: "string"}
	num := schema.Property{Name: "rev", Type: "number"}
	obj := schema.Property{Name: "menu", Type: "object"}
	untyped := schema.Property{Name: "x"}

	tests := []struct {
		name  string
		prop  schema.Property
		value any
		want  bool
	}{
		{"string", str, "Photo", true},
		{"empty string is absent", str, "", false},
		{"array is not a string", str, []any{"a"}, false},
		{"number is not a string", str, float64(3), false},
		{"nil", str, nil, false},
		{"number", num, float64(2), true},
		{"zero is absent", num, float64(0), false},
		{"json number", num, json.Number("1.5"), true},
		{"array is an object", obj, []any{"a"}, true},
		{"map is an object", obj, map[string]any{"a": "b"}, true},
		{"untyped never matches", untyped, "text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prop.Matches(tt.value))
		})
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", schema.TypeOf("x"))
	assert.Equal(t, "boolean", schema.TypeOf(true))
	assert.Equal(t, "number", schema.TypeOf(float64(1)))
	assert.Equal(t, "object", schema.TypeOf(nil))
	assert.Equal(t, "object", schema.TypeOf([]any{}))
	assert.Equal(t, "object", schema.TypeOf(map[string]any{}))
}

func TestDefaultSchema(t *testing.T) {
	t.Parallel()

	props, err := schema.Parse(schema.DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"title", "title@oled", "subject", "displayName", "appmenu", "appDescription"},
		props.Names(),
	)
}

func TestRegistryLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"schema/custom.json": {Data: []byte(testSchema)},
	}

	t.Run("default schema", func(t *testing.T) {
		reg := schema.NewRegistry()
		props := reg.Load("")
		assert.Equal(t, 6, props.Len())
	})

	t.Run("override path", func(t *testing.T) {
		reg := schema.NewRegistry(schema.WithFS(fsys))
		props := reg.Load("schema/custom.json")
		assert.Equal(t, []string{"zeta", "alpha", "count", "list"}, props.Names())
	})

	t.Run("cached per path", func(t *testing.T) {
		local := fstest.MapFS{"s.json": {Data: []byte(testSchema)}}
		reg := schema.NewRegistry(schema.WithFS(local))
		first := reg.Load("s.json")

		delete(local, "s.json")
		second := reg.Load("s.json")
		assert.Equal(t, first.Names(), second.Names())
	})

	t.Run("missing file warns and yields empty set", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		reg := schema.NewRegistry(schema.WithFS(fsys), schema.WithLogger(log))

		props := reg.Load("schema/missing.json")
		assert.Zero(t, props.Len())
		assert.Contains(t, buf.String(), "could not load schema file")
		assert.Contains(t, buf.String(), "schema/missing.json")
	})

	t.Run("untyped property is logged", func(t *testing.T) {
		local := fstest.MapFS{"s.json": {Data: []byte(`{"properties": {
			"title": {"type": ["string", "null"], "localizable": true},
			"label": {"type": "string", "localizable": true}
		}}`)}}
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		reg := schema.NewRegistry(schema.WithFS(local), schema.WithLogger(log))

		props := reg.Load("s.json")
		assert.Equal(t, []string{"title", "label"}, props.Names())
		assert.Equal(t, []string{"title"}, props.Untyped())
		assert.Contains(t, buf.String(), "unsupported property type")
		assert.Contains(t, buf.String(), "property=title")
		assert.NotContains(t, buf.String(), "property=label")

		title, ok := props.Get("title")
		require.True(t, ok)
		assert.False(t, title.Matches("Live TV"))
	})

	t.Run("load file returns error", func(t *testing.T) {
		reg := schema.NewRegistry(schema.WithFS(fsys))
		_, err := reg.LoadFile("schema/missing.json")
		assert.ErrorIs(t, err, schema.ErrSchemaNotFound)
	})
}
