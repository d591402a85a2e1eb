package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// truncate hard-cuts rendered text at max characters. Records are never
// dropped whole; the cap is a plain suffix cut on the final render.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

// prettyJSON renders v with two-space indentation.
func prettyJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "tools: marshal result")
	}
	return string(data), nil
}

// field appends a "- **Label**: value" bullet, skipping empty values.
func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s**: %s\n", label, value)
}

// yesNo renders a flag for markdown bullets.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// tableCell makes a value safe inside a markdown table.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// propertyBullets renders a property map as sorted markdown bullets.
func propertyBullets(b *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := props[k]
		if v == nil {
			continue
		}
		fmt.Fprintf(b, "- **%s**: %v\n", k, v)
	}
}
