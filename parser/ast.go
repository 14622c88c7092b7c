package parser

import (
	"fmt"
	"strconv"
)

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// ValueKind discriminates the Value tagged union.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueInt    ValueKind = "int"
	ValueFloat  ValueKind = "float"
	ValueBool   ValueKind = "bool"
	ValueNull   ValueKind = "null"
	ValueObject ValueKind = "object"
	ValueArray  ValueKind = "array"
)

// Value is a parsed Bring value. Kind determines which typed field is
// populated. Every value may carry attributes collected from the
// @name=scalar clauses around its assignment.
type Value struct {
	Kind   ValueKind
	Str    string   // populated when Kind == ValueString
	Int    int64    // populated when Kind == ValueInt
	Float  float64  // populated when Kind == ValueFloat
	Bool   bool     // populated when Kind == ValueBool
	Fields []Field  // populated when Kind == ValueObject
	Items  []*Value // populated when Kind == ValueArray
	Attrs  []Attr
	Pos    Position
}

// String renders a display form of the value. Scalars render as their
// literal text; containers render as a summary.
func (v *Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueNull:
		return "null"
	case ValueObject:
		return fmt.Sprintf("{%d fields}", len(v.Fields))
	case ValueArray:
		return fmt.Sprintf("[%d items]", len(v.Items))
	}
	return string(v.Kind)
}

// IsScalar reports whether the value is a string, number, or boolean.
// Only scalar values may appear as attribute values.
func (v *Value) IsScalar() bool {
	switch v.Kind {
	case ValueString, ValueInt, ValueFloat, ValueBool:
		return true
	}
	return false
}

// Attr looks up an attribute by name. Returns the value and true if found.
func (v *Value) Attr(name string) (*Value, bool) {
	for i := len(v.Attrs) - 1; i >= 0; i-- {
		if v.Attrs[i].Name == name {
			return v.Attrs[i].Value, true
		}
	}
	return nil, false
}

// Field looks up an object field by key. Returns the value and true if found.
func (v *Value) Field(key string) (*Value, bool) {
	for i := len(v.Fields) - 1; i >= 0; i-- {
		if v.Fields[i].Key == key {
			return v.Fields[i].Value, true
		}
	}
	return nil, false
}

// setField inserts or replaces an object field. A replaced key moves to
// the end of the field list (last write wins, order of the overwritten
// occurrence is not kept).
func (v *Value) setField(key string, val *Value) {
	for i := range v.Fields {
		if v.Fields[i].Key == key {
			v.Fields = append(v.Fields[:i], v.Fields[i+1:]...)
			break
		}
	}
	v.Fields = append(v.Fields, Field{Key: key, Value: val})
}

// Field is a single key=value pair inside an object value.
type Field struct {
	Key   string
	Value *Value
}

// Attr is a @name=scalar annotation attached to a value or schema rule.
type Attr struct {
	Name  string
	Value *Value // scalar kinds only
	Pos   Position
}

// SchemaRule is one `key = typeName` declaration inside a schema block.
// The type name is a free-form identifier; it is recorded, not checked.
type SchemaRule struct {
	Key   string
	Type  string
	Attrs []Attr
	Pos   Position
}

// Attr looks up a rule attribute by name. Returns the value and true if found.
func (r *SchemaRule) Attr(name string) (*Value, bool) {
	for i := len(r.Attrs) - 1; i >= 0; i-- {
		if r.Attrs[i].Name == name {
			return r.Attrs[i].Value, true
		}
	}
	return nil, false
}

// Schema is a named, unenforced declaration of expected fields.
type Schema struct {
	Name  string
	Rules []SchemaRule
	Pos   Position
}

// Rule looks up a schema rule by field key. Returns the rule and true if found.
func (s *Schema) Rule(key string) (*SchemaRule, bool) {
	for i := len(s.Rules) - 1; i >= 0; i-- {
		if s.Rules[i].Key == key {
			return &s.Rules[i], true
		}
	}
	return nil, false
}

// Entry is one top-level document binding. Exactly one of Value and
// Schema is non-nil; schema entries use the synthesized "schema:<Name>" key.
type Entry struct {
	Key    string
	Value  *Value
	Schema *Schema
}

// Document is the complete parse result in declaration order.
type Document struct {
	Entries []Entry
}

// Get returns the entry bound to key, if any.
func (d *Document) Get(key string) (Entry, bool) {
	for i := len(d.Entries) - 1; i >= 0; i-- {
		if d.Entries[i].Key == key {
			return d.Entries[i], true
		}
	}
	return Entry{}, false
}

// Value returns the value bound to key, or nil and false if the key is
// absent or names a schema entry.
func (d *Document) Value(key string) (*Value, bool) {
	e, ok := d.Get(key)
	if !ok || e.Value == nil {
		return nil, false
	}
	return e.Value, true
}

// Schema returns the schema declared with the given name.
func (d *Document) Schema(name string) (*Schema, bool) {
	e, ok := d.Get("schema:" + name)
	if !ok || e.Schema == nil {
		return nil, false
	}
	return e.Schema, true
}

// Keys returns all entry keys in document order, including synthesized
// schema keys.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Schemas returns all declared schemas in document order.
func (d *Document) Schemas() []*Schema {
	var schemas []*Schema
	for _, e := range d.Entries {
		if e.Schema != nil {
			schemas = append(schemas, e.Schema)
		}
	}
	return schemas
}

// set inserts or replaces an entry. A replaced key moves to the end of
// the entry list, matching object field semantics.
func (d *Document) set(e Entry) {
	for i := range d.Entries {
		if d.Entries[i].Key == e.Key {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			break
		}
	}
	d.Entries = append(d.Entries, e)
}
