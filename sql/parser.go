// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import "strings"

// Parser splits a query string into its SELECT, FROM and WHERE clauses
// and drives the scanner through a small buffer that supports a single
// token of lookahead and unscan.
type Parser struct {
	s   *scanner
	buf struct {
		tok Token
		lit string
		val interface{}
		n   int // 0 = no token buffered, 1 = one token buffered
	}
}

// NewParser returns a parser reading from the given query text.
func NewParser(query string) *Parser {
	return &Parser{s: newScannerString(query)}
}

// Parse parses a complete SELECT statement out of the query text.
func Parse(query string) (*Statement, error) {

	if err := gate(query); err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return nil, &EmptyError{}
	}

	p := NewParser(query)

	stmt, err := p.parseSelect()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return stmt, nil

}

func (p *Parser) scan() (tok Token, lit string, val interface{}, err error) {

	if p.buf.n != 0 {
		p.buf.n = 0
		return p.buf.tok, p.buf.lit, p.buf.val, nil
	}

	tok, lit, val, err = p.s.scan()
	if err != nil {
		return tok, lit, val, err
	}

	p.buf.tok, p.buf.lit, p.buf.val = tok, lit, val

	return

}

func (p *Parser) unscan() {
	p.buf.n = 1
}

// scanSkipWS scans the next non-whitespace token.
func (p *Parser) scanSkipWS() (tok Token, lit string, val interface{}, err error) {
	for {
		tok, lit, val, err = p.scan()
		if err != nil || tok != WS {
			return
		}
	}
}

func (p *Parser) expect(want Token) (string, interface{}, error) {

	tok, lit, val, err := p.scanSkipWS()
	if err != nil {
		return "", nil, err
	}

	if tok != want {
		return "", nil, &ParseError{Found: describe(tok, lit), Expected: []string{want.String()}}
	}

	return lit, val, nil

}

func (p *Parser) expectEOF() error {
	tok, lit, _, err := p.scanSkipWS()
	if err != nil {
		return err
	}
	switch tok {
	case EOF:
		return nil
	case SEMICOLON:
		tok2, _, _, err := p.scanSkipWS()
		if err != nil {
			return err
		}
		if tok2 == EOF {
			return nil
		}
		return &MultiStatementError{}
	}
	return &ParseError{Found: describe(tok, lit), Expected: []string{"EOF"}}
}

func describe(tok Token, lit string) string {
	if tok == EOF {
		return "EOF"
	}
	if lit != "" {
		return lit
	}
	return tok.String()
}

// parseSelect parses `SELECT <columns> FROM <table> [WHERE <expr>]`.
func (p *Parser) parseSelect() (*Statement, error) {

	if _, _, err := p.expect(SELECT); err != nil {
		return nil, err
	}

	cols, err := p.parseColumns()
	if err != nil {
		return nil, err
	}

	if _, _, err := p.expect(FROM); err != nil {
		return nil, err
	}

	table, err := p.parseTable()
	if err != nil {
		return nil, err
	}

	stmt := &Statement{
		Columns: cols,
		Table:   table,
	}

	tok, lit, _, err := p.scanSkipWS()
	if err != nil {
		return nil, err
	}

	switch tok {
	case WHERE:
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	case EOF, SEMICOLON:
		p.unscan()
	default:
		return nil, &ParseError{Found: describe(tok, lit), Expected: []string{"WHERE", "EOF"}}
	}

	return stmt, nil

}

// parseColumns parses a comma-separated projection list: `*`, or one or
// more dotted identifiers.
func (p *Parser) parseColumns() ([]*Column, error) {

	var cols []*Column

	for {

		tok, lit, _, err := p.scanSkipWS()
		if err != nil {
			return nil, err
		}

		switch tok {
		case MUL:
			cols = append(cols, &Column{Star: true})
		case IDENT:
			parts, err := splitDotted(lit)
			if err != nil {
				return nil, err
			}
			cols = append(cols, &Column{Parts: parts})
		default:
			return nil, &ParseError{Found: describe(tok, lit), Expected: []string{"column list"}}
		}

		tok, _, _, err = p.scanSkipWS()
		if err != nil {
			return nil, err
		}
		if tok != COMMA {
			p.unscan()
			break
		}

	}

	return cols, nil

}

// parseTable parses the dotted table reference in a FROM clause.
func (p *Parser) parseTable() (*Table, error) {
	lit, _, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	parts, err := splitDotted(lit)
	if err != nil {
		return nil, err
	}
	return &Table{Parts: parts}, nil
}

// splitDotted splits an identifier literal on `.`, since the scanner
// treats dots as ordinary identifier characters. A dotted reference
// names a column, a table.column, or a database.table.column.
func splitDotted(lit string) ([]string, error) {

	parts := strings.Split(lit, ".")

	if len(parts) > 3 {
		return nil, &ParseError{Found: lit, Expected: []string{"at most 3 dotted parts"}}
	}

	for _, part := range parts {
		if part == "" {
			return nil, &ParseError{Found: lit, Expected: []string{"a non-empty identifier segment"}}
		}
	}

	return parts, nil

}
