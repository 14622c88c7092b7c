package parser

import "strconv"

// MaxDepth bounds container nesting. Inputs nested deeper fail with
// ErrMaxDepth instead of exhausting the call stack.
const MaxDepth = 128

// Parse parses Bring source text and returns the Document. The first
// syntax error aborts the whole parse; no partial document is returned.
// Returns a *ParseError on failure.
func Parse(src []byte) (*Document, error) {
	p := &parser{scn: NewScanner(src)}
	return p.parseDocument()
}

type parser struct {
	scn   *Scanner
	depth int
}

func (p *parser) enter(pos Position) error {
	p.depth++
	if p.depth > MaxDepth {
		return errorf(ErrMaxDepth, pos, "nesting exceeds %d levels", MaxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}

	for {
		p.scn.SkipWhitespace()
		if p.scn.AtEnd() {
			break
		}
		if p.scn.Peek() == '#' {
			p.scn.SkipComment()
			continue
		}
		if p.scn.matchKeyword("schema") {
			schema, err := p.parseSchema()
			if err != nil {
				return nil, err
			}
			doc.set(Entry{Key: "schema:" + schema.Name, Schema: schema})
			continue
		}
		key, val, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		doc.set(Entry{Key: key, Value: val})
	}

	return doc, nil
}

// parsePair parses `key attr* '=' value attr*`. Attribute clauses may
// appear on either side of the '='; both attach to the produced value.
func (p *parser) parsePair() (string, *Value, error) {
	key, err := p.parseKey()
	if err != nil {
		return "", nil, err
	}

	attrs, err := p.parseAttrs()
	if err != nil {
		return "", nil, err
	}

	p.scn.SkipWhitespace()
	if err := p.scn.ExpectLiteral("="); err != nil {
		return "", nil, err
	}

	val, err := p.parseValue()
	if err != nil {
		return "", nil, err
	}

	trailing, err := p.parseAttrs()
	if err != nil {
		return "", nil, err
	}

	val.Attrs = append(val.Attrs, attrs...)
	val.Attrs = append(val.Attrs, trailing...)
	return key, val, nil
}

// parseKey parses a quoted string or a bare identifier.
func (p *parser) parseKey() (string, error) {
	ch := p.scn.Peek()
	if ch == '"' || ch == '\'' {
		return p.scn.ReadString()
	}
	return p.scn.ReadIdentifier()
}

// parseAttrs parses zero or more `@name=scalar` clauses, each preceded
// by optional whitespace.
func (p *parser) parseAttrs() ([]Attr, error) {
	var attrs []Attr
	for {
		p.scn.SkipWhitespace()
		if p.scn.Peek() != '@' {
			return attrs, nil
		}
		pos := p.scn.Pos()
		p.scn.Advance() // consume '@'

		name, err := p.scn.ReadIdentifier()
		if err != nil {
			return nil, err
		}
		p.scn.SkipWhitespace()
		if err := p.scn.ExpectLiteral("="); err != nil {
			return nil, err
		}
		p.scn.SkipWhitespace()

		val, err := p.parseScalar()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attr{Name: name, Value: val, Pos: pos})
	}
}

// parseScalar parses an attribute value: string, number, or boolean.
// Objects, arrays, and null are not allowed in attribute position.
func (p *parser) parseScalar() (*Value, error) {
	pos := p.scn.Pos()
	ch := p.scn.Peek()

	switch {
	case ch == '"' || ch == '\'':
		str, err := p.scn.ReadString()
		if err != nil {
			return nil, err
		}
		return &Value{Kind: ValueString, Str: str, Pos: pos}, nil
	case ch == '-' || isDigit(ch):
		return p.parseNumber()
	case p.scn.matchKeyword("true"):
		return &Value{Kind: ValueBool, Bool: true, Pos: pos}, nil
	case p.scn.matchKeyword("false"):
		return &Value{Kind: ValueBool, Bool: false, Pos: pos}, nil
	}

	if p.scn.AtEnd() {
		return nil, errorf(ErrUnexpectedEOF, pos, "expected attribute value")
	}
	return nil, errorf(ErrUnexpectedChar, pos, "unexpected character %q in attribute value", ch)
}

// parseValue dispatches on the current character to the matching
// grammar alternative.
func (p *parser) parseValue() (*Value, error) {
	p.scn.SkipWhitespace()
	pos := p.scn.Pos()
	ch := p.scn.Peek()

	switch {
	case ch == '{':
		return p.parseObject()
	case ch == '[':
		return p.parseArray()
	case ch == '"' || ch == '\'':
		str, err := p.scn.ReadString()
		if err != nil {
			return nil, err
		}
		return &Value{Kind: ValueString, Str: str, Pos: pos}, nil
	case ch == '-' || isDigit(ch):
		return p.parseNumber()
	case p.scn.matchKeyword("true"):
		return &Value{Kind: ValueBool, Bool: true, Pos: pos}, nil
	case p.scn.matchKeyword("false"):
		return &Value{Kind: ValueBool, Bool: false, Pos: pos}, nil
	case p.scn.matchKeyword("null"):
		return &Value{Kind: ValueNull, Pos: pos}, nil
	}

	if p.scn.AtEnd() {
		return nil, errorf(ErrUnexpectedEOF, pos, "expected value")
	}
	return nil, errorf(ErrUnexpectedChar, pos, "unexpected character %q", ch)
}

func (p *parser) parseNumber() (*Value, error) {
	pos := p.scn.Pos()
	lit, isFloat, err := p.scn.ReadNumber()
	if err != nil {
		return nil, err
	}

	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, errorf(ErrInvalidNumber, pos, "invalid float %q", lit)
		}
		return &Value{Kind: ValueFloat, Float: f, Pos: pos}, nil
	}

	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, errorf(ErrInvalidNumber, pos, "invalid integer %q", lit)
	}
	return &Value{Kind: ValueInt, Int: n, Pos: pos}, nil
}

// parseObject parses `{ pair (',')? ... }` with comments allowed
// between pairs. Duplicate keys overwrite earlier ones.
func (p *parser) parseObject() (*Value, error) {
	pos := p.scn.Pos()
	if err := p.enter(pos); err != nil {
		return nil, err
	}
	defer p.leave()

	p.scn.Advance() // consume '{'
	val := &Value{Kind: ValueObject, Pos: pos}

	for {
		p.scn.SkipWhitespace()
		if p.scn.AtEnd() {
			return nil, errorf(ErrUnexpectedEOF, p.scn.Pos(), "unclosed object, expected '}'")
		}
		switch p.scn.Peek() {
		case '#':
			p.scn.SkipComment()
			continue
		case '}':
			p.scn.Advance()
			return val, nil
		case ',':
			p.scn.Advance()
			continue
		}

		key, fieldVal, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		val.setField(key, fieldVal)
	}
}

// parseArray parses `[ value (',')? ... ]` with comments allowed
// between elements. Trailing commas are permitted.
func (p *parser) parseArray() (*Value, error) {
	pos := p.scn.Pos()
	if err := p.enter(pos); err != nil {
		return nil, err
	}
	defer p.leave()

	p.scn.Advance() // consume '['
	val := &Value{Kind: ValueArray, Pos: pos}

	for {
		p.scn.SkipWhitespace()
		if p.scn.AtEnd() {
			return nil, errorf(ErrUnexpectedEOF, p.scn.Pos(), "unclosed array, expected ']'")
		}
		switch p.scn.Peek() {
		case '#':
			p.scn.SkipComment()
			continue
		case ']':
			p.scn.Advance()
			return val, nil
		case ',':
			p.scn.Advance()
			continue
		}

		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		val.Items = append(val.Items, item)
	}
}

// parseSchema parses `Name { key = typeIdent attr* ... }` after the
// leading `schema` keyword has been consumed. The right-hand side of a
// rule is always a bare identifier, never a nested value.
func (p *parser) parseSchema() (*Schema, error) {
	p.scn.SkipWhitespace()
	pos := p.scn.Pos()

	name, err := p.scn.ReadIdentifier()
	if err != nil {
		return nil, err
	}

	p.scn.SkipWhitespace()
	if err := p.scn.ExpectLiteral("{"); err != nil {
		return nil, err
	}

	schema := &Schema{Name: name, Pos: pos}

	for {
		p.scn.SkipWhitespace()
		if p.scn.AtEnd() {
			return nil, errorf(ErrUnexpectedEOF, p.scn.Pos(), "unclosed schema %q, expected '}'", name)
		}
		switch p.scn.Peek() {
		case '#':
			p.scn.SkipComment()
			continue
		case '}':
			p.scn.Advance()
			return schema, nil
		case ',':
			p.scn.Advance()
			continue
		}

		rulePos := p.scn.Pos()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		p.scn.SkipWhitespace()
		if err := p.scn.ExpectLiteral("="); err != nil {
			return nil, err
		}

		p.scn.SkipWhitespace()
		typeName, err := p.scn.ReadIdentifier()
		if err != nil {
			return nil, err
		}

		attrs, err := p.parseAttrs()
		if err != nil {
			return nil, err
		}

		schema.Rules = append(schema.Rules, SchemaRule{
			Key:   key,
			Type:  typeName,
			Attrs: attrs,
			Pos:   rulePos,
		})
	}
}
