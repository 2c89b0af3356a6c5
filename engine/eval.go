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

package engine

import (
	"math"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/sql"
	"github.com/abcum/rowdb/validate"
)

// eval evaluates a validated predicate tree against a binding of column
// name to cast cell value, following the comparison and arithmetic
// semantics of the logical validator.
func eval(e validate.Expr, binding map[string]interface{}) (interface{}, error) {

	switch n := e.(type) {

	case *validate.Ident:
		return binding[n.Name], nil

	case *validate.IntLit:
		return n.Value, nil

	case *validate.FloatLit:
		return n.Value, nil

	case *validate.StrLit:
		return n.Value, nil

	case *validate.BoolLit:
		return n.Value, nil

	case *validate.Unary:
		x, err := eval(n.X, binding)
		if err != nil {
			return nil, err
		}
		b, _ := x.(bool)
		return !b, nil

	case *validate.Binary:
		return evalBinary(n, binding)

	}

	return nil, apperr.Internal("unhandled validated expression node %T", e)

}

func evalBinary(n *validate.Binary, binding map[string]interface{}) (interface{}, error) {

	switch n.Op {

	case sql.AND:
		l, err := eval(n.L, binding)
		if err != nil {
			return nil, err
		}
		if lb, _ := l.(bool); !lb {
			return false, nil
		}
		r, err := eval(n.R, binding)
		if err != nil {
			return nil, err
		}
		rb, _ := r.(bool)
		return rb, nil

	case sql.OR:
		l, err := eval(n.L, binding)
		if err != nil {
			return nil, err
		}
		if lb, _ := l.(bool); lb {
			return true, nil
		}
		r, err := eval(n.R, binding)
		if err != nil {
			return nil, err
		}
		rb, _ := r.(bool)
		return rb, nil

	}

	l, err := eval(n.L, binding)
	if err != nil {
		return nil, err
	}
	r, err := eval(n.R, binding)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case sql.EQ, sql.NEQ, sql.LT, sql.LTE, sql.GT, sql.GTE:
		return compare(n.Op, l, r)
	case sql.ADD, sql.SUB, sql.MUL, sql.DIV, sql.MOD:
		return arith(n.Op, l, r)
	}

	return nil, apperr.Internal("unhandled operator %s", n.Op)

}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func compare(op sql.Token, l, r interface{}) (interface{}, error) {

	if ls, ok := l.(string); ok {
		rs, ok := r.(string)
		if !ok {
			return nil, apperr.Data("cannot compare string to non-string")
		}
		switch op {
		case sql.EQ:
			return ls == rs, nil
		case sql.NEQ:
			return ls != rs, nil
		case sql.LT:
			return ls < rs, nil
		case sql.LTE:
			return ls <= rs, nil
		case sql.GT:
			return ls > rs, nil
		case sql.GTE:
			return ls >= rs, nil
		}
	}

	if lb, ok := l.(bool); ok {
		rb, ok := r.(bool)
		if !ok {
			return nil, apperr.Data("cannot compare bool to non-bool")
		}
		switch op {
		case sql.EQ:
			return lb == rb, nil
		case sql.NEQ:
			return lb != rb, nil
		}
		return nil, apperr.Data("booleans support only equality comparisons")
	}

	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return nil, apperr.Data("cannot compare incompatible operand types")
	}

	switch op {
	case sql.EQ:
		return lf == rf, nil
	case sql.NEQ:
		return lf != rf, nil
	case sql.LT:
		return lf < rf, nil
	case sql.LTE:
		return lf <= rf, nil
	case sql.GT:
		return lf > rf, nil
	case sql.GTE:
		return lf >= rf, nil
	}

	return nil, apperr.Internal("unhandled comparison operator %s", op)

}

func arith(op sql.Token, l, r interface{}) (interface{}, error) {

	li, liok := l.(int64)
	ri, riok := r.(int64)

	if liok && riok {
		switch op {
		case sql.ADD:
			return li + ri, nil
		case sql.SUB:
			return li - ri, nil
		case sql.MUL:
			return li * ri, nil
		case sql.DIV:
			if ri == 0 {
				return nil, apperr.Data("division by zero")
			}
			return li / ri, nil
		case sql.MOD:
			if ri == 0 {
				return nil, apperr.Data("modulo by zero")
			}
			return li % ri, nil
		}
	}

	lf, _ := asFloat(l)
	rf, _ := asFloat(r)

	switch op {
	case sql.ADD:
		return lf + rf, nil
	case sql.SUB:
		return lf - rf, nil
	case sql.MUL:
		return lf * rf, nil
	case sql.DIV:
		if rf == 0 {
			return nil, apperr.Data("division by zero")
		}
		return lf / rf, nil
	case sql.MOD:
		if rf == 0 {
			return nil, apperr.Data("modulo by zero")
		}
		return math.Mod(lf, rf), nil
	}

	return nil, apperr.Internal("unhandled arithmetic operator %s", op)

}
