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
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Snapshot is the fully materialized contents of one table at the moment it
// was opened: ordered column names and a row-major grid of stringified cell
// values. A snapshot is owned by the tab that displays it and is never
// refreshed in place.
type Snapshot struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows in the grid.
func (s *Snapshot) RowCount() int {
	return len(s.Rows)
}

// ColumnCount returns the number of columns in the grid.
func (s *Snapshot) ColumnCount() int {
	return len(s.Columns)
}

// LoadSnapshot opens a fresh connection to the database at path, reads every
// row of the named table along with its column metadata, and returns the
// materialized grid. The connection is closed on all paths.
func LoadSnapshot(path, table string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	columns, err := tableColumns(db, table)
	if err != nil {
		return nil, err
	}

	grid, err := tableRows(db, table, len(columns))
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Table:   table,
		Columns: columns,
		Rows:    grid,
	}, nil
}

// tableColumns returns the column names of a table in declaration order,
// from PRAGMA table_info.
func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to read column metadata: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid, notnull, pk int
		var name, dataType string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &dataType, &notnull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		columns = append(columns, name)
	}

	return columns, rows.Err()
}

// tableRows scans the full table into a row-major grid of strings.
func tableRows(db *sql.DB, table string, columnCount int) ([][]string, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to scan table: %w", err)
	}
	defer rows.Close()

	grid := make([][]string, 0)
	for rows.Next() {
		values := make([]any, columnCount)
		valuePtrs := make([]any, columnCount)
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make([]string, columnCount)
		for i, val := range values {
			row[i] = formatSQLValue(val)
		}
		grid = append(grid, row)
	}

	return grid, rows.Err()
}

// quoteIdentifier safely quotes a table or column name for SQLite.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// formatSQLValue renders a scanned cell value for display.
func formatSQLValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
