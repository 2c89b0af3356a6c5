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

// Package catalog loads and holds the process-wide, immutable-after-load
// mapping of database name to table schema.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abcum/rowdb/apperr"
)

// Type is the declared type of a column.
type Type string

const (
	Integer Type = "integer"
	Float   Type = "float"
	String  Type = "string"
)

// Column describes a single field of a table.
type Column struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Table holds both the declared-order column sequence, used for `*`
// expansion, and a name-indexed lookup, used for casting and rewriting.
type Table struct {
	Name    string
	Columns []Column
	byName  map[string]Column
}

// Column looks up a column descriptor by name.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Database holds the tables belonging to one database directory.
type Database struct {
	Name   string
	Path   string
	Tables map[string]*Table
}

// Table looks up a table descriptor by name.
func (d *Database) Table(name string) (*Table, bool) {
	t, ok := d.Tables[name]
	return t, ok
}

// Catalog is the root of the loaded schema, immutable once Load returns.
type Catalog struct {
	Root      string
	Databases map[string]*Database
}

// metadataDoc is keyed by the database's own name at the top level
// (redundant with its directory name), then by table name.
type metadataDoc map[string]map[string][]Column

// Load enumerates child directories of root as databases, each holding a
// metadata.json document describing its tables.
func Load(root string) (*Catalog, error) {

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, apperr.Operational("cannot read storage root %q: %s", root, err)
	}

	cat := &Catalog{
		Root:      root,
		Databases: make(map[string]*Database),
	}

	for _, entry := range entries {

		if !entry.IsDir() {
			continue
		}

		db, err := loadDatabase(root, entry.Name())
		if err != nil {
			return nil, err
		}

		cat.Databases[db.Name] = db

	}

	return cat, nil

}

func loadDatabase(root, name string) (*Database, error) {

	path := filepath.Join(root, name)
	metaPath := filepath.Join(path, "metadata.json")

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, apperr.Operational("cannot read metadata for database %q: %s", name, err)
	}

	var doc metadataDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.Operational("malformed metadata for database %q: %s", name, err)
	}

	tables, ok := doc[name]
	if !ok {
		return nil, apperr.Operational("metadata for database %q is missing its top-level key %q", name, name)
	}

	db := &Database{
		Name:   name,
		Path:   path,
		Tables: make(map[string]*Table),
	}

	for tableName, cols := range tables {
		t := &Table{
			Name:    tableName,
			Columns: cols,
			byName:  make(map[string]Column, len(cols)),
		}
		for _, c := range cols {
			t.byName[c.Name] = c
		}
		db.Tables[tableName] = t
	}

	return db, nil

}

// Database looks up a loaded database by name.
func (c *Catalog) Database(name string) (*Database, bool) {
	d, ok := c.Databases[name]
	return d, ok
}

// RowFile returns the path to a table's backing row file.
func (d *Database) RowFile(table string) string {
	return filepath.Join(d.Path, table+".csv")
}
