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

package auth

import (
	"encoding/csv"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/catalog"
)

// Manager holds the user credential store and the process-wide map of
// user-name to bound database-name. At most one binding exists per
// user-name at any instant.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	userFile string

	mu       sync.RWMutex
	users    map[string]string // username -> bcrypt hash
	bindings map[string]string // username -> bound database name
}

// Options configures a new Manager.
type Options struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	UserFile   string
}

// New loads the user store from UserFile and returns a ready Manager. A
// missing UserFile is treated as an empty store; the file is created on
// the first Signup.
func New(opts Options) (*Manager, error) {

	m := &Manager{
		secret:     []byte(opts.Secret),
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		userFile:   opts.UserFile,
		users:      make(map[string]string),
		bindings:   make(map[string]string),
	}

	if err := m.loadUsers(); err != nil {
		return nil, err
	}

	return m, nil

}

func (m *Manager) loadUsers() error {

	f, err := os.Open(m.userFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return apperr.Operational("cannot open user store: %s", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return apperr.Operational("cannot read user store: %s", err)
	}

	for _, rec := range records {
		if len(rec) != 2 {
			continue
		}
		m.users[rec[0]] = rec[1]
	}

	return nil

}

func (m *Manager) appendUser(username, hash string) error {

	f, err := os.OpenFile(m.userFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return apperr.Operational("cannot open user store: %s", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{username, hash}); err != nil {
		return apperr.Operational("cannot write user store: %s", err)
	}
	w.Flush()

	return w.Error()

}

// Signup creates a new user, hashing its password with bcrypt.
func (m *Manager) Signup(username, password string) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return apperr.Integrity("user %q already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("cannot hash password: %s", err)
	}

	if err := m.appendUser(username, string(hash)); err != nil {
		return err
	}

	m.users[username] = string(hash)

	return nil

}

func (m *Manager) verify(username, password string) error {

	m.mu.RLock()
	hash, ok := m.users[username]
	m.mu.RUnlock()

	if !ok {
		return apperr.Interface("unknown user %q", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperr.Interface("invalid credentials")
	}

	return nil

}

// SignIn verifies credentials and mints a fresh token pair without
// binding a database.
func (m *Manager) SignIn(username, password string) (access, refresh string, err error) {

	if err := m.verify(username, password); err != nil {
		return "", "", err
	}

	return m.mintPair(username)

}

// Connect verifies credentials, mints tokens, and atomically binds the
// user to a named database. A second bind for the same user fails until
// disconnect; binding to an unknown database fails.
func (m *Manager) Connect(username, password, dbName string, cat *catalog.Catalog) (access, refresh string, err error) {

	if err := m.verify(username, password); err != nil {
		return "", "", err
	}

	if _, ok := cat.Database(dbName); !ok {
		return "", "", apperr.Database("unknown database %q", dbName)
	}

	m.mu.Lock()
	if _, bound := m.bindings[username]; bound {
		m.mu.Unlock()
		return "", "", apperr.Database("user %q already has a bound database", username)
	}
	m.bindings[username] = dbName
	m.mu.Unlock()

	return m.mintPair(username)

}

// Refresh rotates an access/refresh pair: the refresh token must be
// valid, unexpired, and of type=refresh; its access counterpart must be
// expired (a still-valid access token is rejected).
func (m *Manager) Refresh(access, refresh string) (newAccess, newRefresh string, err error) {

	rc, err := m.parse(refresh)
	if err != nil {
		if isExpired(err) {
			return "", "", apperr.Interface("refresh token has expired")
		}
		return "", "", apperr.Interface("invalid refresh token")
	}
	if rc.Kind != typeRefresh {
		return "", "", apperr.Interface("token is not a refresh token")
	}

	ac, err := m.parse(access)
	switch {
	case err == nil:
		return "", "", apperr.Programming("access token has not expired yet")
	case isExpired(err):
		// expected: the access token must have expired.
	default:
		return "", "", apperr.Interface("invalid access token")
	}

	if ac.Subject != rc.Subject {
		return "", "", apperr.Interface("token pair subjects do not match")
	}

	return m.mintPair(rc.Subject)

}

// Disconnect releases the user's database binding. Disconnect without an
// existing binding is an error, since the protocol treats disconnect as
// mandatory-paired with connect.
func (m *Manager) Disconnect(username string) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bindings[username]; !ok {
		return apperr.Database("user %q has no bound database", username)
	}

	delete(m.bindings, username)

	return nil

}

// Authenticate extracts and verifies an access token, returning the
// bound user-name.
func (m *Manager) Authenticate(access string) (string, error) {

	c, err := m.parse(access)
	if err != nil {
		return "", apperr.Interface("unauthenticated: %s", err)
	}

	if c.Kind != typeAccess {
		return "", apperr.Interface("token is not an access token")
	}

	return c.Subject, nil

}

// BoundDatabase returns the database currently bound to username, if any.
func (m *Manager) BoundDatabase(username string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db, ok := m.bindings[username]
	return db, ok
}
