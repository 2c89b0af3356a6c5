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

// Statement is the parsed representation of a single SELECT query.
type Statement struct {
	Columns []*Column
	Table   *Table
	Where   Expr // nil when no WHERE clause was given
}

// String renders the statement back into query text. Re-parsing the
// result always yields an AST equal to the original.
func (s *Statement) String() string {

	var b strings.Builder

	b.WriteString("SELECT ")

	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}

	b.WriteString(" FROM ")
	b.WriteString(s.Table.String())

	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.String())
	}

	return b.String()

}

// Column is a single projection item: either the `*` wildcard, or a
// dotted identifier of 1 to 3 parts (column, table.column, or
// database.table.column).
type Column struct {
	Star  bool
	Parts []string
}

func (c *Column) String() string {
	if c.Star {
		return "*"
	}
	return strings.Join(c.Parts, ".")
}

// Table is the dotted table reference named in the FROM clause.
type Table struct {
	Parts []string
}

func (t *Table) String() string {
	return strings.Join(t.Parts, ".")
}

// Expr is any node in a WHERE-clause expression tree.
type Expr interface {
	exprNode()
	String() string
}

// Ident is a dotted column reference appearing inside an expression.
type Ident struct {
	Parts []string
}

func (*Ident) exprNode() {}
func (e *Ident) String() string {
	return strings.Join(e.Parts, ".")
}

// IntLit is an integer literal.
type IntLit struct {
	Value string
}

func (*IntLit) exprNode()         {}
func (e *IntLit) String() string { return e.Value }

// FloatLit is a floating point literal.
type FloatLit struct {
	Value string
}

func (*FloatLit) exprNode()        {}
func (e *FloatLit) String() string { return e.Value }

// StrLit is a quoted string literal.
type StrLit struct {
	Value string
}

func (*StrLit) exprNode() {}
func (e *StrLit) String() string {
	if strings.ContainsRune(e.Value, '\'') {
		return `"` + e.Value + `"`
	}
	return "'" + e.Value + "'"
}

// BoolLit is the TRUE or FALSE keyword literal.
type BoolLit struct {
	Value bool
}

func (*BoolLit) exprNode() {}
func (e *BoolLit) String() string {
	if e.Value {
		return "TRUE"
	}
	return "FALSE"
}

// UnaryExpr is a NOT expression.
type UnaryExpr struct {
	Op Token
	X  Expr
}

func (*UnaryExpr) exprNode() {}
func (e *UnaryExpr) String() string {
	return e.Op.String() + " " + e.X.String()
}

// BinaryExpr is a two-operand expression: AND, OR, a comparison, or an
// arithmetic operator.
type BinaryExpr struct {
	Op  Token
	LHS Expr
	RHS Expr
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return "(" + e.LHS.String() + " " + e.Op.String() + " " + e.RHS.String() + ")"
}
