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

package client

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/abcum/rowdb/apperr"
)

// Rows is a pull iterator over a streamed query result. The response
// body is spooled to a temporary file as it arrives, then decoded
// incrementally, so that a slow consumer never holds the whole result
// set in memory. If reading the body fails, the spool file is discarded
// and no rows are returned.
type Rows struct {
	file *os.File
	dec  *json.Decoder
	done bool
}

func newRows(resp *http.Response) (*Rows, error) {

	f, err := os.CreateTemp("", "rowdb-result-*.json")
	if err != nil {
		resp.Body.Close()
		return nil, apperr.Internal("cannot create spool file: %s", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		resp.Body.Close()
		f.Close()
		os.Remove(f.Name())
		return nil, apperr.Operational("error reading streamed result: %s", err)
	}

	resp.Body.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, apperr.Internal("cannot rewind spool file: %s", err)
	}

	dec := json.NewDecoder(f)

	// Consume the opening '[' of the streamed array.
	if _, err := dec.Token(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, apperr.Data("malformed result stream: %s", err)
	}

	return &Rows{file: f, dec: dec}, nil

}

// FetchOne returns the next row, or ok=false at exhaustion.
func (r *Rows) FetchOne() (row map[string]interface{}, ok bool, err error) {

	if r.done {
		return nil, false, nil
	}

	if !r.dec.More() {
		r.done = true
		return nil, false, nil
	}

	var m map[string]interface{}
	if err := r.dec.Decode(&m); err != nil {
		r.done = true
		return nil, false, apperr.Data("malformed row in result stream: %s", err)
	}

	return m, true, nil

}

// FetchMany returns up to n rows, stopping early at exhaustion.
func (r *Rows) FetchMany(n int) ([]map[string]interface{}, error) {

	rows := make([]map[string]interface{}, 0, n)

	for i := 0; i < n; i++ {
		row, ok, err := r.FetchOne()
		if err != nil {
			return rows, err
		}
		if !ok {
			break
		}
		rows = append(rows, row)
	}

	return rows, nil

}

// FetchAll drains the remainder of the result set.
func (r *Rows) FetchAll() ([]map[string]interface{}, error) {

	var rows []map[string]interface{}

	for {
		row, ok, err := r.FetchOne()
		if err != nil {
			return rows, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}

}

// Close releases the spool file. Safe to call more than once.
func (r *Rows) Close() error {

	if r.file == nil {
		return nil
	}

	name := r.file.Name()
	err := r.file.Close()
	os.Remove(name)
	r.file = nil

	return err

}
