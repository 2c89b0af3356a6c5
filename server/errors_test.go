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

package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/sql"
)

func TestStatusForEveryKind(t *testing.T) {

	cases := []struct {
		kind apperr.Kind
		code int
	}{
		{apperr.KindInterface, 400},
		{apperr.KindProgramming, 400},
		{apperr.KindNotSupported, 501},
		{apperr.KindData, 422},
		{apperr.KindIntegrity, 409},
		{apperr.KindOperational, 503},
		{apperr.KindDatabase, 500},
		{apperr.KindInternal, 500},
	}

	for _, c := range cases {
		require.Equal(t, c.code, statusFor(c.kind))
	}

}

func TestStatusForUnknownKindFallsBackToInternal(t *testing.T) {
	require.Equal(t, 500, statusFor(apperr.Kind("bogus")))
}

func TestWrapParseErrorKinds(t *testing.T) {

	cases := []struct {
		err  error
		kind apperr.Kind
	}{
		{&sql.UnsupportedError{Feature: "LIMIT"}, apperr.KindNotSupported},
		{&sql.MultiStatementError{}, apperr.KindNotSupported},
		{&sql.EmptyError{}, apperr.KindProgramming},
		{&sql.ParseError{Found: "@"}, apperr.KindProgramming},
		{&sql.LexError{Char: '@'}, apperr.KindProgramming},
		{&sql.UnbalancedError{}, apperr.KindProgramming},
	}

	for _, c := range cases {
		got := wrapParseError(c.err)
		require.Equal(t, c.kind, apperr.KindOf(got))
	}

}
