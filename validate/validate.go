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

// Package validate binds a parsed statement against the loaded catalog,
// resolving identifiers to canonical column names and type-checking the
// predicate tree.
package validate

import (
	"strconv"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/sql"
)

// ValueType is the runtime type a validated expression node evaluates to.
type ValueType int

const (
	Bool ValueType = iota
	IntegerT
	FloatT
	StringT
)

// Query is the schema-bound, canonicalised form of a parsed statement.
type Query struct {
	Database string
	Table    *catalog.Table
	Star     bool
	Columns  []string // simple column names, in requested order
	Where    Expr     // nil if no WHERE clause
}

// Expr is a node of the validated predicate tree. Identifier leaves carry
// their simple column name and declared type; every node's result type is
// known statically.
type Expr interface {
	Type() ValueType
}

type Ident struct {
	Name string
	T    ValueType
}

func (e *Ident) Type() ValueType { return e.T }

type IntLit struct{ Value int64 }

func (*IntLit) Type() ValueType { return IntegerT }

type FloatLit struct{ Value float64 }

func (*FloatLit) Type() ValueType { return FloatT }

type StrLit struct{ Value string }

func (*StrLit) Type() ValueType { return StringT }

type BoolLit struct{ Value bool }

func (*BoolLit) Type() ValueType { return Bool }

type Unary struct {
	Op sql.Token
	X  Expr
}

func (*Unary) Type() ValueType { return Bool }

type Binary struct {
	Op    sql.Token
	L, R  Expr
	Tkind ValueType
}

func (e *Binary) Type() ValueType { return e.Tkind }

func colType(t catalog.Type) ValueType {
	switch t {
	case catalog.Integer:
		return IntegerT
	case catalog.Float:
		return FloatT
	default:
		return StringT
	}
}

func numeric(t ValueType) bool { return t == IntegerT || t == FloatT }

// Validate resolves stmt against cat, producing a canonical Query.
func Validate(cat *catalog.Catalog, defaultDB string, stmt *sql.Statement) (*Query, error) {

	db, table, err := resolveTable(cat, defaultDB, stmt.Table)
	if err != nil {
		return nil, err
	}

	q := &Query{Database: db.Name, Table: table}

	if err := resolveColumns(table, stmt.Columns, q); err != nil {
		return nil, err
	}

	if stmt.Where != nil {
		where, err := rewrite(table, stmt.Where)
		if err != nil {
			return nil, err
		}
		q.Where = where
	}

	return q, nil

}

func resolveTable(cat *catalog.Catalog, defaultDB string, ref *sql.Table) (*catalog.Database, *catalog.Table, error) {

	switch len(ref.Parts) {

	case 1:
		if defaultDB == "" {
			return nil, nil, apperr.Programming("table %q is ambiguous: no database is bound", ref.Parts[0])
		}
		db, ok := cat.Database(defaultDB)
		if !ok {
			return nil, nil, apperr.Programming("unknown database %q", defaultDB)
		}
		t, ok := db.Table(ref.Parts[0])
		if !ok {
			return nil, nil, apperr.Programming("unknown table %q", ref.Parts[0])
		}
		return db, t, nil

	case 2:
		db, ok := cat.Database(ref.Parts[0])
		if !ok {
			return nil, nil, apperr.Programming("unknown database %q", ref.Parts[0])
		}
		t, ok := db.Table(ref.Parts[1])
		if !ok {
			return nil, nil, apperr.Programming("unknown table %q", ref.Parts[1])
		}
		return db, t, nil

	}

	return nil, nil, apperr.Programming("table reference %q is not valid", ref.String())

}

// resolveColumns resolves the projection list against the bound table,
// accepting `column`, `table.column` and `database.table.column` forms.
func resolveColumns(table *catalog.Table, cols []*sql.Column, q *Query) error {

	for _, c := range cols {

		if c.Star {
			q.Star = true
			continue
		}

		name := c.Parts[len(c.Parts)-1]

		if len(c.Parts) >= 2 {
			refTable := c.Parts[len(c.Parts)-2]
			if refTable != table.Name {
				return apperr.Programming("column %q does not reference the bound table", c.String())
			}
		}

		if _, ok := table.Column(name); !ok {
			return apperr.Programming("unknown column %q", c.String())
		}

		q.Columns = append(q.Columns, name)

	}

	if q.Star && len(q.Columns) > 0 {
		return apperr.Programming("cannot mix * with named columns")
	}

	return nil

}

// rewrite walks the WHERE AST post-order, resolving identifiers and
// type-checking every operator per the §4.3 rules.
func rewrite(table *catalog.Table, e sql.Expr) (Expr, error) {

	switch n := e.(type) {

	case *sql.Ident:
		name := n.Parts[len(n.Parts)-1]
		col, ok := table.Column(name)
		if !ok {
			return nil, apperr.Programming("unknown column %q", n.String())
		}
		return &Ident{Name: name, T: colType(col.Type)}, nil

	case *sql.IntLit:
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, apperr.Data("invalid integer literal %q", n.Value)
		}
		return &IntLit{Value: v}, nil

	case *sql.FloatLit:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, apperr.Data("invalid float literal %q", n.Value)
		}
		return &FloatLit{Value: v}, nil

	case *sql.StrLit:
		return &StrLit{Value: n.Value}, nil

	case *sql.BoolLit:
		return &BoolLit{Value: n.Value}, nil

	case *sql.UnaryExpr:
		x, err := rewrite(table, n.X)
		if err != nil {
			return nil, err
		}
		if x.Type() != Bool {
			return nil, apperr.Programming("NOT requires a boolean operand")
		}
		return &Unary{Op: n.Op, X: x}, nil

	case *sql.BinaryExpr:
		return rewriteBinary(table, n)

	}

	return nil, apperr.Internal("unhandled expression node %T", e)

}

func rewriteBinary(table *catalog.Table, n *sql.BinaryExpr) (Expr, error) {

	l, err := rewrite(table, n.LHS)
	if err != nil {
		return nil, err
	}

	r, err := rewrite(table, n.RHS)
	if err != nil {
		return nil, err
	}

	switch n.Op {

	case sql.AND, sql.OR:
		if l.Type() != Bool || r.Type() != Bool {
			return nil, apperr.Programming("%s requires boolean operands", n.Op)
		}
		return &Binary{Op: n.Op, L: l, R: r, Tkind: Bool}, nil

	case sql.EQ, sql.NEQ, sql.LT, sql.LTE, sql.GT, sql.GTE:
		if !compatible(l.Type(), r.Type()) {
			return nil, apperr.Programming("comparison operands have incompatible types")
		}
		return &Binary{Op: n.Op, L: l, R: r, Tkind: Bool}, nil

	case sql.ADD, sql.SUB, sql.MUL, sql.DIV, sql.MOD:
		if !numeric(l.Type()) || !numeric(r.Type()) {
			return nil, apperr.Programming("arithmetic requires numeric operands")
		}
		result := IntegerT
		if l.Type() == FloatT || r.Type() == FloatT {
			result = FloatT
		}
		return &Binary{Op: n.Op, L: l, R: r, Tkind: result}, nil

	}

	return nil, apperr.Internal("unhandled operator %s", n.Op)

}

func compatible(a, b ValueType) bool {
	if a == b {
		return true
	}
	return numeric(a) && numeric(b)
}
