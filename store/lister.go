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
	"log/slog"
	"math"

	_ "modernc.org/sqlite"
)

// LoadEvent is a message from a background table listing to its consumer.
// Progress events carry Percent; the final event has Done set and carries
// either the full table list or the error that aborted the listing. After
// the Done event the channel is closed.
type LoadEvent struct {
	Percent int
	Done    bool
	Tables  []string
	Err     error
}

// ListTables enumerates the table names of the SQLite database at path on a
// background goroutine. Events are delivered on the returned channel: one
// progress event per table processed (percent of the total, ending at 100),
// then a single Done event. A database with no tables produces only the
// Done event. The worker owns its connection exclusively and closes it
// before the Done event is sent.
func ListTables(path string) <-chan LoadEvent {
	events := make(chan LoadEvent)
	go func() {
		defer close(events)

		tables, err := listTables(path, func(percent int) {
			events <- LoadEvent{Percent: percent}
		})
		if err != nil {
			slog.Error("table listing failed", "path", path, "error", err)
			events <- LoadEvent{Done: true, Err: err}
			return
		}
		slog.Debug("table listing finished", "path", path, "tables", len(tables))
		events <- LoadEvent{Done: true, Tables: tables}
	}()
	return events
}

// listTables does the actual catalog scan. The connection is closed before
// returning so the Done event never races with a live handle.
func listTables(path string, progress func(int)) ([]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema catalog: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema catalog: %w", err)
	}

	total := len(names)
	for i := range names {
		progress(int(math.Round(100 * float64(i+1) / float64(total))))
	}

	return names, nil
}
