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

// parseExpr parses a full expression using precedence climbing, binding
// left-associatively at every level per the OR < AND < NOT < comparison
// < additive < multiplicative table in (*Token).precedence.
func (p *Parser) parseExpr() (Expr, error) {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(min int) (Expr, error) {

	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {

		tok, lit, _, err := p.scanSkipWS()
		if err != nil {
			return nil, err
		}

		prec := tok.precedence()

		if !tok.isOperator() && tok != AND && tok != OR {
			p.unscan()
			break
		}

		if prec < min {
			p.unscan()
			break
		}

		_ = lit

		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{Op: tok, LHS: lhs, RHS: rhs}

	}

	return lhs, nil

}

// parseUnary consumes a leading NOT, which binds tighter than AND/OR but
// looser than comparisons.
func (p *Parser) parseUnary() (Expr, error) {

	tok, _, _, err := p.scanSkipWS()
	if err != nil {
		return nil, err
	}

	if tok == NOT {
		x, err := p.parseBinary(NOT.precedence() + 1)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: NOT, X: x}, nil
	}

	p.unscan()

	return p.parsePrimary()

}

// parsePrimary parses a literal, identifier, or parenthesised expression.
func (p *Parser) parsePrimary() (Expr, error) {

	tok, lit, val, err := p.scanSkipWS()
	if err != nil {
		return nil, err
	}

	switch tok {

	case LPAREN:

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		ctok, _, _, err := p.scanSkipWS()
		if err != nil {
			return nil, err
		}
		if ctok != RPAREN {
			return nil, &UnbalancedError{}
		}

		return x, nil

	case IDENT:
		parts, err := splitDotted(lit)
		if err != nil {
			return nil, err
		}
		return &Ident{Parts: parts}, nil

	case STRING:
		return &StrLit{Value: toString(val, lit)}, nil

	case NUMBER:
		return &IntLit{Value: toString(val, lit)}, nil

	case DOUBLE:
		return &FloatLit{Value: toString(val, lit)}, nil

	case TRUE:
		return &BoolLit{Value: true}, nil

	case FALSE:
		return &BoolLit{Value: false}, nil

	case RPAREN:
		return nil, &UnbalancedError{}

	}

	return nil, &ParseError{Found: describe(tok, lit), Expected: []string{"an expression"}}

}

func toString(val interface{}, lit string) string {
	if s, ok := val.(string); ok {
		return s
	}
	return lit
}
