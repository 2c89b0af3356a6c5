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

// Package auth manages user sign-up, login, per-user exclusive database
// binding, and JWT access/refresh token lifecycle.
package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/abcum/rowdb/apperr"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// claims is the JWT payload: subject identifies the user, kind
// distinguishes access from refresh tokens.
type claims struct {
	jwt.StandardClaims
	Kind string `json:"kind"`
}

func (m *Manager) sign(username, kind string, ttl time.Duration) (string, error) {

	now := time.Now()

	c := claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Kind: kind,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	return tok.SignedString(m.secret)

}

func (m *Manager) parse(raw string) (*claims, error) {

	var c claims

	tok, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return &c, errExpired
		}
		return nil, apperr.Interface("malformed token: %s", err)
	}

	if !tok.Valid {
		return nil, apperr.Interface("invalid token")
	}

	return &c, nil

}

var errExpired = apperr.Interface("token has expired")

func isExpired(err error) bool {
	return err == errExpired
}

// mintPair signs a fresh access/refresh token pair for username.
func (m *Manager) mintPair(username string) (access, refresh string, err error) {

	access, err = m.sign(username, typeAccess, m.accessTTL)
	if err != nil {
		return "", "", apperr.Internal("cannot sign access token: %s", err)
	}

	refresh, err = m.sign(username, typeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", apperr.Internal("cannot sign refresh token: %s", err)
	}

	return access, refresh, nil

}
