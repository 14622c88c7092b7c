// Package parser implements the Bring configuration language.
//
// Bring is a comment-bearing, attribute-annotated config format: `key =
// value` assignments with objects, arrays, string/number/bool/null
// scalars, `@name=scalar` annotations, and unenforced `schema Name {
// ... }` declarations. The parser is a hand-rolled recursive-descent
// parser with three layers:
//
//   - Scanner: a byte cursor tracking offset, line, and column, with
//     the string/number/identifier readers built on it.
//   - Grammar: recursive descent over pairs, values, attributes, and
//     schema blocks.
//   - AST types: the output data structures (Document, Value, Attr,
//     Schema, SchemaRule).
//
// Usage:
//
//	doc, err := parser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port, _ := doc.Value("port")
//
// Every parse error is a *ParseError carrying the line, column, and
// byte offset of the failure point. Parsing stops at the first error;
// there is no partial-document mode. Each Parse call builds its own
// cursor, so concurrent parses of independent inputs are safe.
package parser
