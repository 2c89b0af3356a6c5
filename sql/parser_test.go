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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelectStar(t *testing.T) {

	stmt, err := Parse("SELECT * FROM users")
	require.NoError(t, err)
	require.Len(t, stmt.Columns, 1)
	require.True(t, stmt.Columns[0].Star)
	require.Equal(t, []string{"users"}, stmt.Table.Parts)
	require.Nil(t, stmt.Where)

}

func TestParseSelectColumns(t *testing.T) {

	stmt, err := Parse("SELECT id, users.name, test.users.age FROM users")
	require.NoError(t, err)
	require.Len(t, stmt.Columns, 3)
	require.Equal(t, []string{"id"}, stmt.Columns[0].Parts)
	require.Equal(t, []string{"users", "name"}, stmt.Columns[1].Parts)
	require.Equal(t, []string{"test", "users", "age"}, stmt.Columns[2].Parts)

}

func TestParseWhereComparison(t *testing.T) {

	stmt, err := Parse("SELECT * FROM users WHERE age >= 18")
	require.NoError(t, err)
	require.NotNil(t, stmt.Where)

	bin, ok := stmt.Where.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, GTE, bin.Op)
	require.Equal(t, &Ident{Parts: []string{"age"}}, bin.LHS)
	require.Equal(t, &IntLit{Value: "18"}, bin.RHS)

}

// TestOrBindsLooserThanAnd checks that "a OR b AND c" parses as
// "a OR (b AND c)" per the OR=1, AND=2 precedence table.
func TestOrBindsLooserThanAnd(t *testing.T) {

	stmt, err := Parse("SELECT * FROM t WHERE a OR b AND c")
	require.NoError(t, err)

	top, ok := stmt.Where.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, OR, top.Op)

	require.Equal(t, &Ident{Parts: []string{"a"}}, top.LHS)

	rhs, ok := top.RHS.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, AND, rhs.Op)

}

// TestArithmeticBindsTighterThanComparison checks that "a + b = c" parses
// as "(a + b) = c".
func TestArithmeticBindsTighterThanComparison(t *testing.T) {

	stmt, err := Parse("SELECT * FROM t WHERE a + b = c")
	require.NoError(t, err)

	top, ok := stmt.Where.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, EQ, top.Op)

	lhs, ok := top.LHS.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ADD, lhs.Op)

}

func TestParseParentheses(t *testing.T) {

	stmt, err := Parse("SELECT * FROM t WHERE (a OR b) AND c")
	require.NoError(t, err)

	top, ok := stmt.Where.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, AND, top.Op)

	lhs, ok := top.LHS.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, OR, lhs.Op)

}

func TestParseNot(t *testing.T) {

	stmt, err := Parse("SELECT * FROM t WHERE NOT a = b")
	require.NoError(t, err)

	un, ok := stmt.Where.(*UnaryExpr)
	require.True(t, ok)
	require.Equal(t, NOT, un.Op)

}

func TestParseRoundTrip(t *testing.T) {

	queries := []string{
		"SELECT * FROM users",
		"SELECT id, name FROM users WHERE (age >= 18 AND age < 65) OR vip = TRUE",
		"SELECT a.b.c FROM a.b WHERE x != 'hello world'",
	}

	for _, q := range queries {
		stmt1, err := Parse(q)
		require.NoError(t, err)

		stmt2, err := Parse(stmt1.String())
		require.NoError(t, err)

		require.Equal(t, stmt1, stmt2)
	}

}

func TestParseEmptyQuery(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	require.IsType(t, &EmptyError{}, err)
}

func TestParseMultipleStatements(t *testing.T) {
	_, err := Parse("SELECT * FROM a; SELECT * FROM b")
	require.Error(t, err)
	require.IsType(t, &MultiStatementError{}, err)
}

func TestParseUnbalancedParens(t *testing.T) {
	_, err := Parse("SELECT * FROM t WHERE (a = b")
	require.Error(t, err)
	require.IsType(t, &UnbalancedError{}, err)
}

func TestParseIllegalCharacter(t *testing.T) {
	_, err := Parse("SELECT * FROM t WHERE a = @")
	require.Error(t, err)
}
