// Package convert projects parsed Bring trees into plain Go data and
// textual formats. All functions are pure tree walks over a well-formed
// tree produced by the parser package; none of them re-parse or
// validate their input.
package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Daftyon/bring-go/parser"
)

// PlainValue converts a parsed value into nested plain Go data:
// string, int64, float64, bool, nil, map[string]any, or []any.
// Attributes are metadata and do not appear in the projection.
func PlainValue(v *parser.Value) any {
	switch v.Kind {
	case parser.ValueString:
		return v.Str
	case parser.ValueInt:
		return v.Int
	case parser.ValueFloat:
		return v.Float
	case parser.ValueBool:
		return v.Bool
	case parser.ValueObject:
		m := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			m[f.Key] = PlainValue(f.Value)
		}
		return m
	case parser.ValueArray:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = PlainValue(item)
		}
		return items
	default:
		return nil
	}
}

// PlainDocument converts a document into a plain map. Schema entries
// are declarations, not data, and are dropped.
func PlainDocument(doc *parser.Document) map[string]any {
	m := make(map[string]any, len(doc.Entries))
	for _, e := range doc.Entries {
		if e.Value != nil {
			m[e.Key] = PlainValue(e.Value)
		}
	}
	return m
}

// plain projects a *parser.Document or *parser.Value; anything else is
// a caller bug.
func plain(x any) (any, error) {
	switch v := x.(type) {
	case *parser.Document:
		return PlainDocument(v), nil
	case *parser.Value:
		return PlainValue(v), nil
	default:
		return nil, fmt.Errorf("cannot convert %T, want *parser.Document or *parser.Value", x)
	}
}

// JSONText serializes the plain projection of a document or value as
// JSON. indent > 0 pretty-prints with that many spaces per level.
func JSONText(x any, indent int) (string, error) {
	data, err := plain(x)
	if err != nil {
		return "", err
	}

	var out []byte
	if indent > 0 {
		out, err = json.MarshalIndent(data, "", strings.Repeat(" ", indent))
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(out), nil
}

// YAMLText serializes the plain projection of a document or value as YAML.
func YAMLText(x any) (string, error) {
	data, err := plain(x)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return string(out), nil
}

// TOMLText serializes the plain projection as TOML. TOML requires a
// table at the top level, so x must be a document or an object value,
// and the tree must not contain nulls.
func TOMLText(x any) (string, error) {
	data, err := plain(x)
	if err != nil {
		return "", err
	}
	if _, ok := data.(map[string]any); !ok {
		return "", fmt.Errorf("toml requires a document or object value, got %T", data)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return "", fmt.Errorf("encoding toml: %w", err)
	}
	return buf.String(), nil
}

// ExtractAttributes flattens every attribute in the tree into a map
// from path to attribute value. Object traversal appends ".key", array
// traversal appends "[index]", and an attribute contributes
// "<owner-path>.<name>". Identical paths overwrite in traversal order.
func ExtractAttributes(v *parser.Value) map[string]*parser.Value {
	out := make(map[string]*parser.Value)
	collectAttrs(v, "", out)
	return out
}

// DocumentAttributes extracts attributes from every value entry of a
// document, rooting each path at the entry key. Schema entries are
// skipped.
func DocumentAttributes(doc *parser.Document) map[string]*parser.Value {
	out := make(map[string]*parser.Value)
	for _, e := range doc.Entries {
		if e.Value != nil {
			collectAttrs(e.Value, e.Key, out)
		}
	}
	return out
}

func collectAttrs(v *parser.Value, path string, out map[string]*parser.Value) {
	for _, a := range v.Attrs {
		out[joinPath(path, a.Name)] = a.Value
	}

	switch v.Kind {
	case parser.ValueObject:
		for _, f := range v.Fields {
			collectAttrs(f.Value, joinPath(path, f.Key), out)
		}
	case parser.ValueArray:
		for i, item := range v.Items {
			collectAttrs(item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
