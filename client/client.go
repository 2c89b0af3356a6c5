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

// Package client is the driver side of the wire protocol: it signs in,
// binds a database, submits queries, and exposes the streamed result as
// a pull iterator.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/abcum/rowdb/apperr"
)

// Client is bound to exactly one server and, after Connect, one
// database.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	access  string
	refresh string
	user    string
	pass    string
	dbName  string
}

type credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Connect signs in and binds the session to dbName.
func Connect(baseURL, user, pass, dbName string) (*Client, error) {

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		user:    user,
		pass:    pass,
		dbName:  dbName,
	}

	pair, err := c.connect()
	if err != nil {
		return nil, err
	}

	c.access, c.refresh = pair.Access, pair.Refresh

	return c, nil

}

func (c *Client) connect() (*tokenPair, error) {

	body, _ := json.Marshal(&credentials{User: c.user, Password: c.pass})

	u := fmt.Sprintf("%s/auth/connect?db_name=%s", c.baseURL, url.QueryEscape(c.dbName))

	resp, err := c.http.Post(u, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Operational("cannot reach server: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, decodeError(resp)
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, apperr.Internal("malformed token response: %s", err)
	}

	return &pair, nil

}

func (c *Client) doRefresh() error {

	c.mu.Lock()
	defer c.mu.Unlock()

	body, _ := json.Marshal(&tokenPair{Access: c.access, Refresh: c.refresh})

	resp, err := c.http.Post(c.baseURL+"/auth/refresh", "application/json", bytes.NewReader(body))
	if err != nil {
		return apperr.Operational("cannot reach server: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return decodeError(resp)
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return apperr.Internal("malformed token response: %s", err)
	}

	c.access, c.refresh = pair.Access, pair.Refresh

	return nil

}

// Disconnect releases the database binding.
func (c *Client) Disconnect() error {

	req, _ := http.NewRequest("GET", c.baseURL+"/auth/disconnect", nil)
	req.Header.Set("Authorization", "Bearer "+c.bearer())

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Operational("cannot reach server: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return decodeError(resp)
	}

	return nil

}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func decodeError(resp *http.Response) error {

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperr.Internal("server returned status %d", resp.StatusCode)
	}

	return apperr.Wrap(apperr.Kind(body.Kind), fmt.Errorf("status %d", resp.StatusCode), body.Message)

}

type queryRequest struct {
	DBName string `json:"db_name"`
	Query  string `json:"query"`
}

// Query submits a SELECT statement and returns a pull iterator over the
// streamed result. On a 401 the client transparently refreshes once and
// retries, provided no rows have yet been delivered; a second 401 is
// surfaced.
func (c *Client) Query(query string) (*Rows, error) {

	resp, err := c.execute(query)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == 401 {
		resp.Body.Close()
		if err := c.doRefresh(); err != nil {
			return nil, err
		}
		resp, err = c.execute(query)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode != 200 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}

	return newRows(resp)

}

func (c *Client) execute(query string) (*http.Response, error) {

	body, _ := json.Marshal(&queryRequest{DBName: c.dbName, Query: query})

	req, err := http.NewRequest("POST", c.baseURL+"/queries/", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internal("cannot build request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearer())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Operational("cannot reach server: %s", err)
	}

	return resp, nil

}
