package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestParseEmptyInput(t *testing.T) {
	doc := mustParse(t, "")
	assert.Empty(t, doc.Entries)

	doc = mustParse(t, "   \n\t\n# only a comment\n")
	assert.Empty(t, doc.Entries)
}

func TestParsePrimitives(t *testing.T) {
	src := `
name = "Bring"
port = 8080
ratio = 0.75
offset = -12
debug = true
cache = false
fallback = null
`
	doc := mustParse(t, src)
	require.Len(t, doc.Entries, 7)

	name, ok := doc.Value("name")
	require.True(t, ok)
	assert.Equal(t, ValueString, name.Kind)
	assert.Equal(t, "Bring", name.Str)

	port, ok := doc.Value("port")
	require.True(t, ok)
	assert.Equal(t, ValueInt, port.Kind)
	assert.Equal(t, int64(8080), port.Int)

	ratio, ok := doc.Value("ratio")
	require.True(t, ok)
	assert.Equal(t, ValueFloat, ratio.Kind)
	assert.Equal(t, 0.75, ratio.Float)

	offset, ok := doc.Value("offset")
	require.True(t, ok)
	assert.Equal(t, int64(-12), offset.Int)

	debug, ok := doc.Value("debug")
	require.True(t, ok)
	assert.Equal(t, ValueBool, debug.Kind)
	assert.True(t, debug.Bool)

	cache, ok := doc.Value("cache")
	require.True(t, ok)
	assert.False(t, cache.Bool)

	fallback, ok := doc.Value("fallback")
	require.True(t, ok)
	assert.Equal(t, ValueNull, fallback.Kind)
}

func TestParseQuotedKeys(t *testing.T) {
	doc := mustParse(t, `"spaced key" = 1
'single key' = 2`)

	v, ok := doc.Value("spaced key")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int)

	v, ok = doc.Value("single key")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int)
}

func TestParseNestedObject(t *testing.T) {
	src := `
server = {
    host = "localhost"
    port = 8080
    tls = {
        enabled = true
    }
}
`
	doc := mustParse(t, src)

	server, ok := doc.Value("server")
	require.True(t, ok)
	require.Equal(t, ValueObject, server.Kind)
	require.Len(t, server.Fields, 3)

	host, ok := server.Field("host")
	require.True(t, ok)
	assert.Equal(t, "localhost", host.Str)

	tls, ok := server.Field("tls")
	require.True(t, ok)
	require.Equal(t, ValueObject, tls.Kind)
	enabled, ok := tls.Field("enabled")
	require.True(t, ok)
	assert.True(t, enabled.Bool)
}

func TestParseEmptyContainers(t *testing.T) {
	doc := mustParse(t, `obj = {}
arr = []`)

	obj, ok := doc.Value("obj")
	require.True(t, ok)
	assert.Equal(t, ValueObject, obj.Kind)
	assert.Empty(t, obj.Fields)

	arr, ok := doc.Value("arr")
	require.True(t, ok)
	assert.Equal(t, ValueArray, arr.Kind)
	assert.Empty(t, arr.Items)
}

func TestParseArrays(t *testing.T) {
	src := `mixed = [1, "two", 3.5, true, null, [4, 5], { six = 6 }]`
	doc := mustParse(t, src)

	mixed, ok := doc.Value("mixed")
	require.True(t, ok)
	require.Len(t, mixed.Items, 7)

	assert.Equal(t, int64(1), mixed.Items[0].Int)
	assert.Equal(t, "two", mixed.Items[1].Str)
	assert.Equal(t, 3.5, mixed.Items[2].Float)
	assert.True(t, mixed.Items[3].Bool)
	assert.Equal(t, ValueNull, mixed.Items[4].Kind)

	inner := mixed.Items[5]
	require.Equal(t, ValueArray, inner.Kind)
	require.Len(t, inner.Items, 2)
	assert.Equal(t, int64(5), inner.Items[1].Int)

	obj := mixed.Items[6]
	require.Equal(t, ValueObject, obj.Kind)
	six, ok := obj.Field("six")
	require.True(t, ok)
	assert.Equal(t, int64(6), six.Int)
}

func TestParseTrailingCommas(t *testing.T) {
	src := `
arr = [1, 2, 3,]
obj = {
    a = 1,
    b = 2,
}
`
	doc := mustParse(t, src)

	arr, ok := doc.Value("arr")
	require.True(t, ok)
	assert.Len(t, arr.Items, 3)

	obj, ok := doc.Value("obj")
	require.True(t, ok)
	assert.Len(t, obj.Fields, 2)
}

func TestParseComments(t *testing.T) {
	src := `
# leading comment
key = "value" # not part of the string
obj = {
    # inside object
    a = 1
}
arr = [
    # inside array
    1,
    2,
]
`
	doc := mustParse(t, src)
	require.Len(t, doc.Entries, 3)

	key, ok := doc.Value("key")
	require.True(t, ok)
	assert.Equal(t, "value", key.Str)

	arr, ok := doc.Value("arr")
	require.True(t, ok)
	assert.Len(t, arr.Items, 2)
}

func TestParseAttributesAfterValue(t *testing.T) {
	doc := mustParse(t, `port = 8080 @min=1024 @max=65535`)

	port, ok := doc.Value("port")
	require.True(t, ok)
	require.Len(t, port.Attrs, 2)

	min, ok := port.Attr("min")
	require.True(t, ok)
	assert.Equal(t, int64(1024), min.Int)

	max, ok := port.Attr("max")
	require.True(t, ok)
	assert.Equal(t, int64(65535), max.Int)
}

func TestParseAttributesBeforeEquals(t *testing.T) {
	doc := mustParse(t, `port @min=1024 = 8080`)

	port, ok := doc.Value("port")
	require.True(t, ok)
	assert.Equal(t, int64(8080), port.Int)

	min, ok := port.Attr("min")
	require.True(t, ok)
	assert.Equal(t, int64(1024), min.Int)
}

func TestParseAttributeScalarKinds(t *testing.T) {
	doc := mustParse(t, `db = "postgres" @url="localhost:5432" @pooled=true @weight=1.5`)

	db, ok := doc.Value("db")
	require.True(t, ok)

	url, ok := db.Attr("url")
	require.True(t, ok)
	assert.Equal(t, "localhost:5432", url.Str)

	pooled, ok := db.Attr("pooled")
	require.True(t, ok)
	assert.True(t, pooled.Bool)

	weight, ok := db.Attr("weight")
	require.True(t, ok)
	assert.Equal(t, 1.5, weight.Float)
}

func TestParseAttributeOnObjectValue(t *testing.T) {
	src := `server = { host = "a" @primary=true } @env="prod"`
	doc := mustParse(t, src)

	server, ok := doc.Value("server")
	require.True(t, ok)
	env, ok := server.Attr("env")
	require.True(t, ok)
	assert.Equal(t, "prod", env.Str)

	host, ok := server.Field("host")
	require.True(t, ok)
	primary, ok := host.Attr("primary")
	require.True(t, ok)
	assert.True(t, primary.Bool)
}

func TestParseDuplicateAttributeLastWins(t *testing.T) {
	doc := mustParse(t, `p = 1 @a=1 @a=2`)

	p, ok := doc.Value("p")
	require.True(t, ok)
	a, ok := p.Attr("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), a.Int)
}

func TestParseAttributeRejectsContainer(t *testing.T) {
	_, err := Parse([]byte(`p = 1 @bad={ a = 1 }`))
	require.Error(t, err)
	perr := asParseError(t, err)
	assert.Equal(t, ErrUnexpectedChar, perr.Kind)
}

func TestParseSchema(t *testing.T) {
	src := `
schema User {
    id = number @min=1
    name = string
    email = string @format="email"
}
`
	doc := mustParse(t, src)

	entry, ok := doc.Get("schema:User")
	require.True(t, ok)
	require.NotNil(t, entry.Schema)
	assert.Nil(t, entry.Value)

	schema, ok := doc.Schema("User")
	require.True(t, ok)
	assert.Equal(t, "User", schema.Name)
	require.Len(t, schema.Rules, 3)

	assert.Equal(t, "id", schema.Rules[0].Key)
	assert.Equal(t, "number", schema.Rules[0].Type)
	min, ok := schema.Rules[0].Attr("min")
	require.True(t, ok)
	assert.Equal(t, int64(1), min.Int)

	assert.Equal(t, "name", schema.Rules[1].Key)
	assert.Equal(t, "string", schema.Rules[1].Type)
	assert.Empty(t, schema.Rules[1].Attrs)

	format, ok := schema.Rules[2].Attr("format")
	require.True(t, ok)
	assert.Equal(t, "email", format.Str)
}

func TestParseSchemaMinimal(t *testing.T) {
	doc := mustParse(t, `schema User { id = number @min=1 }`)

	schema, ok := doc.Schema("User")
	require.True(t, ok)
	require.Len(t, schema.Rules, 1)
	assert.Equal(t, "id", schema.Rules[0].Key)
	assert.Equal(t, "number", schema.Rules[0].Type)
}

func TestParseSchemaFreeFormTypeName(t *testing.T) {
	doc := mustParse(t, `schema Thing { payload = whatever_T }`)

	schema, ok := doc.Schema("Thing")
	require.True(t, ok)
	assert.Equal(t, "whatever_T", schema.Rules[0].Type)
}

func TestParseSchemaAndValuesShareNamespace(t *testing.T) {
	src := `
schema User { id = number }
user = { id = 1 }
`
	doc := mustParse(t, src)
	require.Len(t, doc.Entries, 2)

	_, ok := doc.Schema("User")
	assert.True(t, ok)
	_, ok = doc.Value("user")
	assert.True(t, ok)
}

func TestParseSchemaKeywordIsNotAPrefix(t *testing.T) {
	doc := mustParse(t, `schemaVersion = 3`)

	v, ok := doc.Value("schemaVersion")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Int)
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	src := `
a = 1
b = 2
a = 3
`
	doc := mustParse(t, src)
	require.Len(t, doc.Entries, 2)

	a, ok := doc.Value("a")
	require.True(t, ok)
	assert.Equal(t, int64(3), a.Int)

	// The overwritten key moves to the end of the document order.
	assert.Equal(t, []string{"b", "a"}, doc.Keys())
}

func TestParseDuplicateObjectFieldsLastWins(t *testing.T) {
	doc := mustParse(t, `obj = { a = 1, b = 2, a = 3 }`)

	obj, ok := doc.Value("obj")
	require.True(t, ok)
	require.Len(t, obj.Fields, 2)
	assert.Equal(t, "b", obj.Fields[0].Key)
	assert.Equal(t, "a", obj.Fields[1].Key)
	assert.Equal(t, int64(3), obj.Fields[1].Value.Int)
}

func TestParseValuePositions(t *testing.T) {
	doc := mustParse(t, "a = 1\nb = \"two\"")

	a, _ := doc.Value("a")
	assert.Equal(t, Position{Line: 1, Column: 5, Offset: 4}, a.Pos)

	b, _ := doc.Value("b")
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 10}, b.Pos)
}

func asParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	perr, ok := err.(*ParseError)
	require.True(t, ok, "want *ParseError, got %T: %v", err, err)
	return perr
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrKind
		line int
	}{
		{"attr in value position", `invalid = @#$`, ErrUnexpectedChar, 1},
		{"unterminated string", `name = "unterminated`, ErrUnterminatedString, 1},
		{"unclosed object", `obj = { key = "value"`, ErrUnexpectedEOF, 1},
		{"unclosed array", `arr = [1, 2`, ErrUnexpectedEOF, 1},
		{"unclosed schema", `schema User { id = number`, ErrUnexpectedEOF, 1},
		{"missing value", `key = `, ErrUnexpectedEOF, 1},
		{"bad sign", `n = -x`, ErrInvalidNumber, 1},
		{"bad decimal", `f = 1.`, ErrInvalidNumber, 1},
		{"missing equals", `key 5`, ErrExpectedLiteral, 1},
		{"missing key", `= 5`, ErrExpectedIdentifier, 1},
		{"schema without name", `schema { }`, ErrExpectedIdentifier, 1},
		{"schema rule nested value", `schema S { f = { } }`, ErrExpectedIdentifier, 1},
		{"bare keyword prefix value", `t = truex`, ErrUnexpectedChar, 1},
		{"error on later line", "a = 1\nb = $", ErrUnexpectedChar, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			perr := asParseError(t, err)
			assert.Equal(t, tt.kind, perr.Kind, "error: %v", err)
			assert.Equal(t, tt.line, perr.Pos.Line, "error: %v", err)
			assert.Greater(t, perr.Pos.Column, 0, "error: %v", err)
		})
	}
}

func TestParseErrorPositionPointsAtOffender(t *testing.T) {
	_, err := Parse([]byte(`invalid = @#$`))
	require.Error(t, err)
	perr := asParseError(t, err)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 11, perr.Pos.Column)
	assert.Contains(t, perr.Error(), "line 1, col 11")
}

func TestParseEscapeFidelity(t *testing.T) {
	doc := mustParse(t, `message = "Hello\nWorld"`)
	msg, ok := doc.Value("message")
	require.True(t, ok)
	assert.Equal(t, "Hello\nWorld", msg.Str)

	doc = mustParse(t, `backslash = "Path\\to\\file"`)
	bs, ok := doc.Value("backslash")
	require.True(t, ok)
	assert.Equal(t, `Path\to\file`, bs.Str)
}

func TestParseDepthBound(t *testing.T) {
	deep := "a = " + strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err := Parse([]byte(deep))
	require.Error(t, err)
	perr := asParseError(t, err)
	assert.Equal(t, ErrMaxDepth, perr.Kind)

	ok := "a = " + strings.Repeat("[", 50) + strings.Repeat("]", 50)
	_, err = Parse([]byte(ok))
	assert.NoError(t, err)
}

func TestParseNoPartialDocumentOnError(t *testing.T) {
	doc, err := Parse([]byte("a = 1\nb = $"))
	require.Error(t, err)
	assert.Nil(t, doc)
}

func TestDocumentAccessors(t *testing.T) {
	src := `
a = 1
schema S { f = string }
b = "two"
`
	doc := mustParse(t, src)

	assert.Equal(t, []string{"a", "schema:S", "b"}, doc.Keys())

	schemas := doc.Schemas()
	require.Len(t, schemas, 1)
	assert.Equal(t, "S", schemas[0].Name)

	// Value lookup ignores schema entries.
	_, ok := doc.Value("schema:S")
	assert.False(t, ok)

	_, ok = doc.Get("missing")
	assert.False(t, ok)
	_, ok = doc.Schema("missing")
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	doc := mustParse(t, `
s = "text"
i = 42
f = 2.5
b = true
n = null
o = { a = 1 }
l = [1, 2]
`)

	tests := []struct {
		key  string
		want string
	}{
		{"s", "text"},
		{"i", "42"},
		{"f", "2.5"},
		{"b", "true"},
		{"n", "null"},
		{"o", "{1 fields}"},
		{"l", "[2 items]"},
	}
	for _, tt := range tests {
		v, ok := doc.Value(tt.key)
		require.True(t, ok)
		assert.Equal(t, tt.want, v.String(), "key: %s", tt.key)
	}
}
