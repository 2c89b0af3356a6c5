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
	"strings"

	"github.com/surrealdb/fibre"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/sql"
	"github.com/abcum/rowdb/validate"
)

type credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (srv *Server) signup(c *fibre.Context) error {

	var in credentials
	if err := c.Bind(&in); err != nil {
		return fibre.NewHTTPError(422)
	}

	if err := srv.auth.Signup(in.User, in.Password); err != nil {
		return err
	}

	return c.Code(201)

}

func (srv *Server) login(c *fibre.Context) error {

	var in credentials
	if err := c.Bind(&in); err != nil {
		return fibre.NewHTTPError(422)
	}

	access, refresh, err := srv.auth.SignIn(in.User, in.Password)
	if err != nil {
		return err
	}

	return c.Send(200, &tokenPair{Access: access, Refresh: refresh})

}

func (srv *Server) connect(c *fibre.Context) error {

	var in credentials
	if err := c.Bind(&in); err != nil {
		return fibre.NewHTTPError(422)
	}

	dbName := c.QueryParam("db_name")
	if dbName == "" {
		return apperr.Interface("db_name query parameter is required")
	}

	access, refresh, err := srv.auth.Connect(in.User, in.Password, dbName, srv.cat)
	if err != nil {
		return err
	}

	return c.Send(200, &tokenPair{Access: access, Refresh: refresh})

}

func (srv *Server) refresh(c *fibre.Context) error {

	var in tokenPair
	if err := c.Bind(&in); err != nil {
		return fibre.NewHTTPError(422)
	}

	access, refresh, err := srv.auth.Refresh(in.Access, in.Refresh)
	if err != nil {
		return err
	}

	return c.Send(200, &tokenPair{Access: access, Refresh: refresh})

}

func (srv *Server) disconnect(c *fibre.Context) error {

	user, err := srv.authenticate(c)
	if err != nil {
		return err
	}

	if err := srv.auth.Disconnect(user); err != nil {
		return err
	}

	return c.Code(200)

}

type queryRequest struct {
	DBName string `json:"db_name"`
	Query  string `json:"query"`
}

func (srv *Server) query(c *fibre.Context) error {

	user, err := srv.authenticate(c)
	if err != nil {
		return err
	}

	var in queryRequest
	if err := c.Bind(&in); err != nil {
		return fibre.NewHTTPError(422)
	}

	bound, ok := srv.auth.BoundDatabase(user)
	if !ok || bound != in.DBName {
		return apperr.Interface("user is not bound to database %q", in.DBName)
	}

	db, ok := srv.cat.Database(in.DBName)
	if !ok {
		return apperr.Operational("unknown database %q", in.DBName)
	}

	stmt, err := sql.Parse(in.Query)
	if err != nil {
		return wrapParseError(err)
	}

	q, err := validate.Validate(srv.cat, in.DBName, stmt)
	if err != nil {
		return err
	}

	return srv.stream(c, db, q)

}

// wrapParseError tags a raw sql package error with the taxonomy kind the
// wire boundary requires: sql.Parse itself only distinguishes failures by
// Go type, not by apperr.Kind. A recognised-but-unsupported feature, or a
// second statement, is not-supported; every other parse failure (bad
// syntax, an unterminated string, unbalanced parentheses, empty text) is
// a programming error.
func wrapParseError(err error) error {
	switch err.(type) {
	case *sql.UnsupportedError, *sql.MultiStatementError:
		return apperr.NotSupported(err.Error())
	default:
		return apperr.Programming(err.Error())
	}
}

func (srv *Server) authenticate(c *fibre.Context) (string, error) {

	header := c.Request().Header().Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", apperr.Interface("missing bearer token")
	}

	return srv.auth.Authenticate(strings.TrimPrefix(header, prefix))

}
