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
)

func (srv *Server) routes(s *fibre.Fibre) {

	s.Post("/auth/sigin", func(c *fibre.Context) error {
		return srv.signup(c)
	})

	s.Post("/auth/login", func(c *fibre.Context) error {
		return srv.login(c)
	})

	s.Post("/auth/connect", func(c *fibre.Context) error {
		return srv.connect(c)
	})

	s.Post("/auth/refresh", func(c *fibre.Context) error {
		return srv.refresh(c)
	})

	s.Get("/auth/disconnect", func(c *fibre.Context) error {
		return srv.disconnect(c)
	})

	s.Post("/queries/", func(c *fibre.Context) error {
		return srv.query(c)
	})

}
