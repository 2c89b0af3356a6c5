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

package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abcum/rowdb/apperr"
	"github.com/abcum/rowdb/catalog"
)

func TestLoadDatabase(t *testing.T) {

	root := t.TempDir()
	dbDir := filepath.Join(root, "shop")
	require.NoError(t, os.Mkdir(dbDir, 0o755))

	meta := `{"shop":{"users":[{"name":"id","type":"integer"}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "metadata.json"), []byte(meta), 0o644))

	cat, err := catalog.Load(root)
	require.NoError(t, err)

	db, ok := cat.Database("shop")
	require.True(t, ok)

	table, ok := db.Table("users")
	require.True(t, ok)

	col, ok := table.Column("id")
	require.True(t, ok)
	require.Equal(t, catalog.Integer, col.Type)

}

func TestLoadMissingMetadataIsOperationalError(t *testing.T) {

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "shop"), 0o755))

	_, err := catalog.Load(root)
	require.Error(t, err)
	require.Equal(t, apperr.KindOperational, apperr.KindOf(err))

}

func TestLoadMetadataKeyedByWrongDatabaseNameIsOperationalError(t *testing.T) {

	root := t.TempDir()
	dbDir := filepath.Join(root, "shop")
	require.NoError(t, os.Mkdir(dbDir, 0o755))

	meta := `{"otherdb":{"users":[{"name":"id","type":"integer"}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "metadata.json"), []byte(meta), 0o644))

	_, err := catalog.Load(root)
	require.Error(t, err)
	require.Equal(t, apperr.KindOperational, apperr.KindOf(err))

}
