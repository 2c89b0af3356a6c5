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

package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/sql"
	"github.com/abcum/rowdb/validate"
)

func setupCatalog(t *testing.T) *catalog.Catalog {

	root := t.TempDir()
	dbDir := filepath.Join(root, "shop")
	require.NoError(t, os.Mkdir(dbDir, 0o755))

	meta := `{"shop":{"users":[{"name":"id","type":"integer"},{"name":"name","type":"string"}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "metadata.json"), []byte(meta), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "users.csv"), []byte("id,name\n"), 0o644))

	cat, err := catalog.Load(root)
	require.NoError(t, err)

	return cat

}

func TestValidateResolvesStarAndTable(t *testing.T) {

	cat := setupCatalog(t)
	stmt, err := sql.Parse("SELECT * FROM users")
	require.NoError(t, err)

	q, err := validate.Validate(cat, "shop", stmt)
	require.NoError(t, err)
	require.True(t, q.Star)
	require.Equal(t, "users", q.Table.Name)

}

func TestValidateUnknownColumnIsProgrammingError(t *testing.T) {

	cat := setupCatalog(t)
	stmt, err := sql.Parse("SELECT missing FROM users")
	require.NoError(t, err)

	_, err = validate.Validate(cat, "shop", stmt)
	require.Error(t, err)
	require.Equal(t, apperr.KindProgramming, apperr.KindOf(err))

}

func TestValidateTypeMismatchInComparison(t *testing.T) {

	cat := setupCatalog(t)
	stmt, err := sql.Parse("SELECT * FROM users WHERE name = 1")
	require.NoError(t, err)

	_, err = validate.Validate(cat, "shop", stmt)
	require.Error(t, err)

}

func TestValidateNumericComparisonAllowed(t *testing.T) {

	cat := setupCatalog(t)
	stmt, err := sql.Parse("SELECT * FROM users WHERE id = 1")
	require.NoError(t, err)

	q, err := validate.Validate(cat, "shop", stmt)
	require.NoError(t, err)
	require.NotNil(t, q.Where)

}

func TestValidateAmbiguousTableWithoutBoundDatabase(t *testing.T) {

	cat := setupCatalog(t)
	stmt, err := sql.Parse("SELECT * FROM users")
	require.NoError(t, err)

	_, err = validate.Validate(cat, "", stmt)
	require.Error(t, err)

}
