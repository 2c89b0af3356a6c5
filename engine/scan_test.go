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

package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/engine"
	"github.com/abcum/rowdb/sql"
	"github.com/abcum/rowdb/validate"
)

func setupDB(t *testing.T) *catalog.Catalog {

	root := t.TempDir()
	dbDir := filepath.Join(root, "shop")
	require.NoError(t, os.Mkdir(dbDir, 0o755))

	meta := `{"shop":{"users":[{"name":"id","type":"integer"},{"name":"name","type":"string"},{"name":"balance","type":"float"}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "metadata.json"), []byte(meta), 0o644))

	rows := "id,name,balance\n1,alice,10.5\n2,bob,\n3,carol,99.9\n"
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "users.csv"), []byte(rows), 0o644))

	cat, err := catalog.Load(root)
	require.NoError(t, err)

	return cat

}

func runQuery(t *testing.T, cat *catalog.Catalog, query string) []string {

	stmt, err := sql.Parse(query)
	require.NoError(t, err)

	q, err := validate.Validate(cat, "shop", stmt)
	require.NoError(t, err)

	db, _ := cat.Database("shop")

	ch, err := engine.Scan(context.Background(), db, q)
	require.NoError(t, err)

	var rows []string
	for res := range ch {
		require.NoError(t, res.Err)
		rows = append(rows, string(res.Row))
	}

	return rows

}

func TestScanSelectStar(t *testing.T) {
	cat := setupDB(t)
	rows := runQuery(t, cat, "SELECT * FROM users")
	require.Len(t, rows, 3)
	require.Contains(t, rows[0], `"id":1`)
}

func TestScanWithPredicate(t *testing.T) {
	cat := setupDB(t)
	rows := runQuery(t, cat, "SELECT name FROM users WHERE balance > 1")
	require.Len(t, rows, 2)
}

func TestScanEmptyStringCastsToZero(t *testing.T) {
	cat := setupDB(t)
	rows := runQuery(t, cat, "SELECT balance FROM users WHERE balance = 0")
	require.Len(t, rows, 1)
}

func TestScanDivisionByZeroIsDataError(t *testing.T) {

	cat := setupDB(t)

	stmt, err := sql.Parse("SELECT * FROM users WHERE id / 0 = 1")
	require.NoError(t, err)

	q, err := validate.Validate(cat, "shop", stmt)
	require.NoError(t, err)

	db, _ := cat.Database("shop")

	ch, err := engine.Scan(context.Background(), db, q)
	require.NoError(t, err)

	var gotErr bool
	var kind apperr.Kind
	for res := range ch {
		if res.Err != nil {
			gotErr = true
			kind = apperr.KindOf(res.Err)
		}
	}

	require.True(t, gotErr)
	require.Equal(t, apperr.KindData, kind)

}
