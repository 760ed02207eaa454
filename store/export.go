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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ExportFormat represents the supported export formats
type ExportFormat int

const (
	FormatCSV ExportFormat = iota
	FormatJSON
	FormatParquet
)

// Export writes the snapshot to filePath in the given format.
func Export(s *Snapshot, format ExportFormat, filePath string) error {
	switch format {
	case FormatCSV:
		return ExportToCSV(s, filePath)
	case FormatJSON:
		return ExportToJSON(s, filePath)
	case FormatParquet:
		return ExportToParquet(s, filePath)
	default:
		return fmt.Errorf("unknown export format %d", format)
	}
}

// ExportToCSV writes the snapshot as a CSV file with a header row.
func ExportToCSV(s *Snapshot, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(s.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range s.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// ExportToJSON writes the snapshot as an indented JSON array of objects,
// one object per row keyed by column name.
func ExportToJSON(s *Snapshot, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	records := make([]map[string]any, 0, len(s.Rows))
	for _, row := range s.Rows {
		record := make(map[string]any, len(s.Columns))
		for i, col := range s.Columns {
			record[col] = row[i]
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportToParquet writes the snapshot as a Parquet file. Every column is
// exported as a string column, mirroring the stringified grid.
func ExportToParquet(s *Snapshot, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	table := snapshotToArrow(s, memory.NewGoAllocator())
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		return fmt.Errorf("failed to write parquet table: %w", err)
	}

	return nil
}

// snapshotToArrow builds an Arrow table over the snapshot's string grid.
// The caller is responsible for releasing it.
func snapshotToArrow(s *Snapshot, pool memory.Allocator) arrow.Table {
	fields := make([]arrow.Field, len(s.Columns))
	for i, col := range s.Columns {
		fields[i] = arrow.Field{Name: col, Type: arrow.BinaryTypes.String}
	}
	schema := arrow.NewSchema(fields, nil)

	columns := make([]arrow.Column, len(s.Columns))
	for i := range s.Columns {
		builder := array.NewStringBuilder(pool)
		for _, row := range s.Rows {
			builder.Append(row[i])
		}
		arr := builder.NewArray()
		chunked := arrow.NewChunked(arrow.BinaryTypes.String, []arrow.Array{arr})
		// NewColumn retains the chunked array; drop our references.
		columns[i] = *arrow.NewColumn(schema.Field(i), chunked)
		chunked.Release()
		arr.Release()
		builder.Release()
	}

	return array.NewTable(schema, columns, int64(len(s.Rows)))
}
