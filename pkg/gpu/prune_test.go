package gpu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneGrid(t *testing.T) {
	in := map[string]any{
		"name":     "69123",
		"title":    "Lyon",
		"type":     "COM",
		"rnu":      false,
		"geometry": map[string]any{"type": "MultiPolygon", "coordinates": []any{}},
	}

	out := PruneGrid(in)

	assert.NotContains(t, out, "geometry")
	assert.Equal(t, "69123", out["name"])
	assert.Equal(t, "Lyon", out["title"])
	assert.Equal(t, "COM", out["type"])
	assert.Equal(t, false, out["rnu"])

	// Input stays untouched.
	assert.Contains(t, in, "geometry")
}

func TestPruneGridNil(t *testing.T) {
	assert.Nil(t, PruneGrid(nil))
}

func TestPruneGrids(t *testing.T) {
	out := PruneGrids([]map[string]any{
		{"name": "a", "geometry": "big"},
		{"name": "b"},
	})
	require.Len(t, out, 2)
	assert.NotContains(t, out[0], "geometry")
	assert.Equal(t, "a", out[0]["name"])
	assert.Equal(t, "b", out[1]["name"])
}

func TestPruneDocument(t *testing.T) {
	in := map[string]any{
		"id":   "0123456789abcdef0123456789abcdef",
		"bbox": []any{4.7, 45.7, 4.9, 45.8},
		"grid": map[string]any{
			"name":     "69123",
			"geometry": map[string]any{"type": "MultiPolygon"},
		},
		"writingMaterials": map[string]any{
			"reglement.pdf": "https://example.test/reglement.pdf",
		},
	}

	out := PruneDocument(in)

	assert.NotContains(t, out, "bbox")
	grid, ok := out["grid"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, grid, "geometry")
	assert.Equal(t, "69123", grid["name"])

	// Only bbox and nested geometry go; everything else survives.
	assert.Equal(t, in["id"], out["id"])
	assert.Equal(t, in["writingMaterials"], out["writingMaterials"])

	// Siblings in the input stay intact.
	assert.Contains(t, in, "bbox")
	assert.Contains(t, in["grid"].(map[string]any), "geometry")
}

func TestPruneDocumentMissingOptionalFields(t *testing.T) {
	out := PruneDocument(map[string]any{"id": "x"})
	assert.Equal(t, map[string]any{"id": "x"}, out)

	out = PruneDocument(map[string]any{"grid": "not-an-object"})
	assert.Equal(t, "not-an-object", out["grid"])
}

func TestPruneFeatureCollection(t *testing.T) {
	raw := map[string]any{
		"type": "FeatureCollection",
		"features": []any{
			map[string]any{
				"id":         "zone_urba.1",
				"type":       "Feature",
				"geometry":   map[string]any{"type": "Polygon"},
				"properties": map[string]any{"libelle": "UA", "typezone": "U"},
			},
			map[string]any{
				"id":       float64(42),
				"geometry": map[string]any{"type": "Polygon"},
			},
			map[string]any{
				"properties": map[string]any{"libelle": "N"},
			},
		},
	}

	fc := PruneFeatureCollection(raw)

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, 3, fc.TotalFeatures)

	assert.Equal(t, "zone_urba.1", fc.Features[0].ID)
	assert.Equal(t, "Feature", fc.Features[0].Type)
	assert.Equal(t, map[string]any{"libelle": "UA", "typezone": "U"}, fc.Features[0].Properties)

	assert.Equal(t, "42", fc.Features[1].ID)
	assert.Equal(t, map[string]any{}, fc.Features[1].Properties)

	assert.Empty(t, fc.Features[2].ID)
	assert.Equal(t, map[string]any{"libelle": "N"}, fc.Features[2].Properties)

	// No geometry anywhere in the serialized output.
	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "geometry")
}

func TestPruneFeatureCollectionEmpty(t *testing.T) {
	fc := PruneFeatureCollection(map[string]any{"type": "FeatureCollection"})
	assert.Equal(t, 0, fc.TotalFeatures)
	assert.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)
}
