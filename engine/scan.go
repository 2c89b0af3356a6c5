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

// Package engine streams rows out of a table's backing row file, casting,
// filtering and projecting them one at a time with O(1) memory.
package engine

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/validate"
)

// Result is one item pulled from a Scan: either a projected row, or a
// terminal error.
type Result struct {
	Row []byte // a single JSON object, already encoded
	Err error
}

// Scan opens the table's row file and streams matching, projected rows
// onto the returned channel. The channel is closed when the file is
// exhausted or a data-error terminates the scan; at most one Result
// carrying a non-nil Err is ever sent, always last.
func Scan(ctx context.Context, db *catalog.Database, q *validate.Query) (<-chan Result, error) {

	path := db.RowFile(q.Table.Name)

	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Operational("cannot open row file for table %q: %s", q.Table.Name, err)
	}

	r := bufio.NewScanner(f)
	r.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !r.Scan() {
		f.Close()
		return nil, apperr.Operational("row file for table %q has no header", q.Table.Name)
	}

	header := splitTrim(r.Text())

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := q.Table.Column(name); !ok {
			f.Close()
			return nil, apperr.Programming("row file column %q has no matching schema entry", name)
		}
		index[name] = i
	}

	projection := q.Columns
	if q.Star {
		projection = make([]string, len(q.Table.Columns))
		for i, c := range q.Table.Columns {
			projection[i] = c.Name
		}
	}

	out := make(chan Result)

	go func() {
		defer f.Close()
		defer close(out)
		scanLoop(ctx, r, q, index, projection, out)
	}()

	return out, nil

}

func scanLoop(ctx context.Context, r *bufio.Scanner, q *validate.Query, index map[string]int, projection []string, out chan<- Result) {

	for r.Scan() {

		select {
		case <-ctx.Done():
			return
		default:
		}

		fields := splitTrim(r.Text())

		binding, err := castRow(q.Table, index, fields)
		if err != nil {
			sendErr(ctx, out, err)
			return
		}

		if q.Where != nil {
			ok, err := eval(q.Where, binding)
			if err != nil {
				sendErr(ctx, out, err)
				return
			}
			v, isBool := ok.(bool)
			if !isBool {
				sendErr(ctx, out, apperr.Data("predicate did not evaluate to a boolean"))
				return
			}
			if !v {
				continue
			}
		}

		row := encodeRow(projection, binding)

		select {
		case out <- Result{Row: row}:
		case <-ctx.Done():
			return
		}

	}

	if err := r.Err(); err != nil {
		sendErr(ctx, out, apperr.Operational("error reading row file: %s", err))
	}

}

func sendErr(ctx context.Context, out chan<- Result, err error) {
	select {
	case out <- Result{Err: err}:
	case <-ctx.Done():
	}
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// castRow casts every field present in the header to its declared type,
// building a column-name to typed-value binding for predicate evaluation
// and projection.
func castRow(table *catalog.Table, index map[string]int, fields []string) (map[string]interface{}, error) {

	binding := make(map[string]interface{}, len(index))

	for name, i := range index {

		if i >= len(fields) {
			return nil, apperr.Data("row is missing field %q", name)
		}

		col, _ := table.Column(name)
		raw := fields[i]

		switch col.Type {

		case catalog.Integer:
			if raw == "" {
				binding[name] = int64(0)
				continue
			}
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, apperr.Data("cannot cast %q to integer for column %q", raw, name)
			}
			binding[name] = v

		case catalog.Float:
			if raw == "" {
				binding[name] = float64(0)
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, apperr.Data("cannot cast %q to float for column %q", raw, name)
			}
			binding[name] = v

		default:
			binding[name] = strings.TrimSpace(raw)

		}

	}

	return binding, nil

}
