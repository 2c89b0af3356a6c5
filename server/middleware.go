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
	"github.com/rs/xid"
	"github.com/surrealdb/fibre"

	"github.com/abcum/rowdb/log"
)

// uniq tags every request with an opaque identifier, stored on the
// context and returned in the X-Request-Id header; logs() records it so
// a request can be traced through the logs.
func uniq() fibre.MiddlewareFunc {
	return func(h fibre.HandlerFunc) fibre.HandlerFunc {
		return func(c *fibre.Context) error {
			id := xid.New().String()
			c.Set("req_id", id)
			c.Response().Header().Set("X-Request-Id", id)
			return h(c)
		}
	}
}

func logs() fibre.MiddlewareFunc {
	return func(h fibre.HandlerFunc) fibre.HandlerFunc {
		return func(c *fibre.Context) error {
			log.WithField("req_id", c.Get("req_id")).Debug("handling request")
			return h(c)
		}
	}
}
