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

	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/engine"
	"github.com/abcum/rowdb/validate"
)

// stream drives a lazy row scan onto the response as a chunked JSON
// array. Failures surfacing before the opening bracket is written are
// returned as an ordinary error response; a failure after that point
// ends the response with the array unterminated. The error itself is
// not written to the response, and the connection is not closed
// explicitly.
func (srv *Server) stream(c *fibre.Context, db *catalog.Database, q *validate.Query) error {

	ch, err := engine.Scan(c.Context(), db, q)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Content-Type", "application/json")

	w := c.Response()

	w.Write([]byte("["))

	first := true

	for res := range ch {

		if res.Err != nil {
			// Bytes have already flowed; the array is deliberately
			// left unterminated and the handler returns without
			// writing the closing bracket.
			return nil
		}

		if !first {
			w.Write([]byte(",\n"))
		}
		first = false

		w.Write(res.Row)

	}

	w.Write([]byte("]"))

	return nil

}
