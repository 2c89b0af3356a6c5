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
	"github.com/surrealdb/fibre"

	"github.com/abcum/rowdb/apperr"
)

// writeError is the single wire-boundary translator from a taxonomy kind
// to an HTTP status code, and the body shape every error response shares.
func writeError(val error, c *fibre.Context) {

	code := 500
	kind := apperr.KindInternal
	info := val.Error()

	if e, ok := apperr.As(val); ok {
		kind = e.Kind
		code = statusFor(e.Kind)
	}

	if he, ok := val.(*fibre.HTTPError); ok {
		code = he.Code()
	}

	c.Send(code, &errorBody{
		Kind:    string(kind),
		Message: info,
	})

}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInterface:
		return 400
	case apperr.KindProgramming:
		return 400
	case apperr.KindNotSupported:
		return 501
	case apperr.KindData:
		return 422
	case apperr.KindIntegrity:
		return 409
	case apperr.KindOperational:
		return 503
	case apperr.KindDatabase:
		return 500
	case apperr.KindInternal:
		return 500
	}
	return 500
}
