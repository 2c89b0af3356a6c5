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

// Package server publishes the HTTP wire surface: sign-up, login,
// connect, refresh, disconnect, and streamed query execution.
package server

import (
	"github.com/surrealdb/fibre"

	"github.com/abcum/rowdb/auth"
	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/cnf"
	"github.com/abcum/rowdb/log"
)

// Server wires the catalog and auth manager into the HTTP handlers.
type Server struct {
	opts *cnf.Options
	cat  *catalog.Catalog
	auth *auth.Manager
}

// New builds a fibre server ready to Run.
func New(opts *cnf.Options, cat *catalog.Catalog, mgr *auth.Manager) *fibre.Fibre {

	srv := &Server{opts: opts, cat: cat, auth: mgr}

	s := fibre.Server(opts)

	s.SetHTTPErrorHandler(writeError)
	s.Logger().SetLogger(log.Instance())

	s.Use(uniq())
	s.Use(logs())

	srv.routes(s)

	return s

}

// Run starts the server and blocks until it exits.
func Run(opts *cnf.Options, cat *catalog.Catalog, mgr *auth.Manager) error {
	log.WithPrefix("server").Infof("Starting server on %s", opts.Conn.Web)
	s := New(opts, cat, mgr)
	return s.Run(opts.Conn.Web)
}
