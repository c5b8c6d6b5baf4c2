// Package codec reads JSON and YAML documents into the ordered container
// model and writes them back out.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goliatone/go-dotpath/engine"
)

// Format names a serialisation.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml" in any case.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("codec: unsupported format %q", value)
	}
}

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses JSON or YAML, keeping mapping key order. Mappings become
// *engine.Map, sequences []any, and integers int when they fit. Empty input
// yields an empty mapping.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return engine.NewMap(), nil
	}
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("codec: decode: %w", err)
	}
	if raw == nil {
		return engine.NewMap(), nil
	}
	return toContainer(raw), nil
}

// Encode renders value in format. JSON output is indented with two spaces
// and ends with a newline.
func Encode(value any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(toYAML(value))
		if err != nil {
			return nil, fmt.Errorf("codec: encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("codec: encode json: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("codec: unsupported format %q", format)
	}
}

// ParseValue reads a command-line value. Scalars and flow collections
// ("[1, 2]", "{a: 1}") are decoded; block mappings and anything that fails
// to parse stay strings.
func ParseValue(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	var raw any
	if err := yaml.UnmarshalWithOptions([]byte(trimmed), &raw, yaml.UseOrderedMap()); err != nil {
		return text
	}
	switch raw.(type) {
	case nil:
		if trimmed != "null" && trimmed != "~" {
			return text
		}
	case yaml.MapSlice:
		if !strings.HasPrefix(trimmed, "{") {
			return text
		}
	}
	return toContainer(raw)
}

func toContainer(value any) any {
	switch v := value.(type) {
	case yaml.MapSlice:
		out := engine.NewMap()
		for _, item := range v {
			out.Set(keyString(item.Key), toContainer(item.Value))
		}
		return out
	case map[string]any:
		out := engine.NewMap()
		for _, key := range sortedKeys(v) {
			out.Set(key, toContainer(v[key]))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toContainer(item)
		}
		return out
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
		return v
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}
		return v
	default:
		return v
	}
}

func toYAML(value any) any {
	switch v := value.(type) {
	case *engine.Map:
		out := make(yaml.MapSlice, 0, v.Len())
		v.Range(func(key string, item any) bool {
			out = append(out, yaml.MapItem{Key: key, Value: toYAML(item)})
			return true
		})
		return out
	case map[string]any:
		out := make(yaml.MapSlice, 0, len(v))
		for _, key := range sortedKeys(v) {
			out = append(out, yaml.MapItem{Key: key, Value: toYAML(v[key])})
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toYAML(item)
		}
		return out
	default:
		return v
	}
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(toContainer(key))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
