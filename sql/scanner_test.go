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

func TestScanOperators(t *testing.T) {

	cases := []struct {
		in  string
		tok Token
	}{
		{"<", LT},
		{"<=", LTE},
		{"<>", NEQ},
		{">", GT},
		{">=", GTE},
		{"!=", NEQ},
		{"=", EQ},
		{"+", ADD},
		{"-", SUB},
		{"*", MUL},
		{"/", DIV},
		{"%", MOD},
	}

	for _, c := range cases {
		s := newScannerString(c.in)
		tok, _, _, err := s.scan()
		require.NoError(t, err)
		require.Equal(t, c.tok, tok, "input %q", c.in)
	}

}

func TestScanKeywordsCaseInsensitive(t *testing.T) {

	for _, in := range []string{"and", "AND", "And"} {
		s := newScannerString(in)
		tok, _, _, err := s.scan()
		require.NoError(t, err)
		require.Equal(t, AND, tok)
	}

}

func TestScanNumberAndDouble(t *testing.T) {

	s := newScannerString("42")
	tok, lit, _, err := s.scan()
	require.NoError(t, err)
	require.Equal(t, NUMBER, tok)
	require.Equal(t, "42", lit)

	s = newScannerString("4.2")
	tok, lit, _, err = s.scan()
	require.NoError(t, err)
	require.Equal(t, DOUBLE, tok)
	require.Equal(t, "4.2", lit)

}

func TestScanString(t *testing.T) {

	s := newScannerString(`'hello world'`)
	tok, lit, _, err := s.scan()
	require.NoError(t, err)
	require.Equal(t, STRING, tok)
	require.Equal(t, "hello world", lit)

}

func TestScanUnterminatedString(t *testing.T) {
	s := newScannerString(`'hello`)
	_, _, _, err := s.scan()
	require.Error(t, err)
}

func TestScanIllegalCharacter(t *testing.T) {
	s := newScannerString("@")
	tok, _, _, err := s.scan()
	require.Equal(t, ILLEGAL, tok)
	require.Error(t, err)
}

func TestScanEOF(t *testing.T) {
	s := newScannerString("")
	tok, _, _, err := s.scan()
	require.NoError(t, err)
	require.Equal(t, EOF, tok)
}
