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

import "fmt"

// EmptyError is returned when the query text contains no statement.
type EmptyError struct{}

func (e *EmptyError) Error() string {
	return "the query text is empty"
}

// LexError is returned when the scanner encounters a character it cannot
// classify, or an unterminated string literal.
type LexError struct {
	Char    rune
	Message string
}

func (e *LexError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("found unexpected character %q", e.Char)
}

// ParseError is returned when the parser encounters a token it did not
// expect at the current position.
type ParseError struct {
	Found    string
	Expected []string
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("found %q but did not expect this", e.Found)
	}
	return fmt.Sprintf("found %q but expected one of %v", e.Found, e.Expected)
}

// UnbalancedError is returned when parentheses in an expression do not
// balance.
type UnbalancedError struct{}

func (e *UnbalancedError) Error() string {
	return "unbalanced parentheses in expression"
}

// MultiStatementError is returned when the query text contains more than
// one statement separated by a semicolon.
type MultiStatementError struct{}

func (e *MultiStatementError) Error() string {
	return "only a single statement is supported per query"
}

// UnsupportedError is returned when the query text names a SQL feature
// that is recognised but deliberately not implemented.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("the %s feature is not supported", e.Feature)
}
