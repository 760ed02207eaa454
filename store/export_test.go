// Copyright 2025 The sdb Authors
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

package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Table:   "orders",
		Columns: []string{"id", "item", "note"},
		Rows: [][]string{
			{"1", "widget", "rush"},
			{"2", "gadget", "NULL"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, ExportToCSV(testSnapshot(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "item", "note"}, records[0])
	assert.Equal(t, []string{"1", "widget", "rush"}, records[1])
	assert.Equal(t, []string{"2", "gadget", "NULL"}, records[2])
}

func TestExportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, ExportToJSON(testSnapshot(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))

	require.Len(t, records, 2)
	assert.Equal(t, "widget", records[0]["item"])
	assert.Equal(t, "NULL", records[1]["note"])
}

func TestExportToParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.parquet")
	require.NoError(t, ExportToParquet(testSnapshot(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	require.NoError(t, err)
	defer func() { _ = pf.Close() }()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	require.NoError(t, err)

	table, err := reader.ReadTable(context.Background())
	require.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(2), table.NumRows())
	assert.Equal(t, int64(3), table.NumCols())
	assert.Equal(t, "id", table.Schema().Field(0).Name)
	assert.Equal(t, "note", table.Schema().Field(2).Name)
}

func TestExportEmptySnapshot(t *testing.T) {
	snap := &Snapshot{Table: "empty", Columns: []string{"a", "b"}}

	csvPath := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, ExportToCSV(snap, csvPath))

	jsonPath := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, ExportToJSON(snap, jsonPath))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Empty(t, records)
}

func TestSnapshotToArrowReleasesEverything(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

	table := snapshotToArrow(testSnapshot(), mem)
	assert.Equal(t, int64(2), table.NumRows())
	table.Release()

	mem.AssertSize(t, 0)
}

func TestExportDispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Export(testSnapshot(), FormatCSV, path))

	err := Export(testSnapshot(), ExportFormat(99), filepath.Join(t.TempDir(), "out"))
	assert.Error(t, err)
}
