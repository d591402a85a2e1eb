package gpu

import "fmt"

// Raw geometry payloads dwarf everything else in the API's responses and
// carry nothing a text-rendering tool can use, so they are stripped before
// any object leaves this package.

// PruneGrid returns a copy of a raw grid object without its geometry key.
// Every other key passes through unchanged.
func PruneGrid(grid map[string]any) map[string]any {
	if grid == nil {
		return nil
	}
	out := make(map[string]any, len(grid))
	for k, v := range grid {
		if k == "geometry" {
			continue
		}
		out[k] = v
	}
	return out
}

// PruneGrids prunes each grid of a slice, preserving order.
func PruneGrids(grids []map[string]any) []map[string]any {
	out := make([]map[string]any, len(grids))
	for i, g := range grids {
		out[i] = PruneGrid(g)
	}
	return out
}

// PruneDocument returns a copy of a raw document object without its bbox
// key, and with the geometry of a nested grid object removed. Everything
// else, including writingMaterials, passes through unchanged.
func PruneDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch k {
		case "bbox":
			continue
		case "grid":
			if grid, ok := v.(map[string]any); ok {
				out[k] = PruneGrid(grid)
				continue
			}
			out[k] = v
		default:
			out[k] = v
		}
	}
	return out
}

// PruneFeatureCollection reduces a raw GeoJSON feature collection to its
// typed, geometry-free form. TotalFeatures always equals the number of
// features kept, which is every feature of the input.
func PruneFeatureCollection(raw map[string]any) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
	rawFeatures, ok := raw["features"].([]any)
	if !ok {
		return fc
	}
	for _, rf := range rawFeatures {
		obj, ok := rf.(map[string]any)
		if !ok {
			continue
		}
		feat := Feature{Type: "Feature", Properties: map[string]any{}}
		if id, present := obj["id"]; present && id != nil {
			feat.ID = stringifyID(id)
		}
		if props, ok := obj["properties"].(map[string]any); ok {
			feat.Properties = props
		}
		fc.Features = append(fc.Features, feat)
	}
	fc.TotalFeatures = len(fc.Features)
	return fc
}

// stringifyID coerces a GeoJSON feature id (string or number) to text.
func stringifyID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
