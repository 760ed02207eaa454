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

package windows

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"sdb/store"
)

// TableTab holds the state of one open table viewer tab.
type TableTab struct {
	snapshot *store.Snapshot
	tab      *container.TabItem
	database string
}

// DataBrowser manages the collection of closable table viewer tabs. Every
// open request produces a fresh snapshot and a fresh tab; duplicate opens
// are not deduplicated.
type DataBrowser struct {
	w              fyne.Window
	session        *store.Session
	tabs           *container.DocTabs
	tabDataMap     map[*container.TabItem]*TableTab
	statusCallback func(string)
}

// NewDataBrowser initializes the data browser over the given session.
func NewDataBrowser(w fyne.Window, session *store.Session, statusCallback func(string)) *DataBrowser {
	t := &DataBrowser{
		w:              w,
		session:        session,
		tabs:           container.NewDocTabs(),
		tabDataMap:     make(map[*container.TabItem]*TableTab),
		statusCallback: statusCallback,
	}

	// Discard the snapshot together with its tab.
	t.tabs.CloseIntercept = func(ti *container.TabItem) {
		delete(t.tabDataMap, ti)
		t.tabs.Remove(ti)

		if selected := t.tabs.Selected(); selected != nil {
			t.updateStatusForTab(selected)
		} else {
			t.setStatus("Ready")
		}
	}

	t.tabs.OnSelected = func(ti *container.TabItem) {
		t.updateStatusForTab(ti)
	}

	return t
}

// Tabs returns the tab container for embedding in the window layout.
func (t *DataBrowser) Tabs() *container.DocTabs {
	return t.tabs
}

// TabCount returns the number of open table tabs.
func (t *DataBrowser) TabCount() int {
	return len(t.tabs.Items)
}

func (t *DataBrowser) setStatus(message string) {
	if t.statusCallback != nil {
		t.statusCallback(message)
	}
}

// updateStatusForTab updates the status bar with the dimensions of the
// snapshot behind the given tab.
func (t *DataBrowser) updateStatusForTab(ti *container.TabItem) {
	data, exists := t.tabDataMap[ti]
	if !exists {
		return
	}
	t.setStatus(fmt.Sprintf("Table %s (%d columns x %d rows)",
		data.snapshot.Table, data.snapshot.ColumnCount(), data.snapshot.RowCount()))
}

// OpenTable resolves the database path through the session, takes a fresh
// snapshot of the table and opens it in a new tab. Query failures are
// logged and the operation aborts without opening a tab.
func (t *DataBrowser) OpenTable(database, table string) {
	path, ok := t.session.Lookup(database)
	if !ok {
		slog.Warn("open table for unregistered database", "database", database, "table", table)
		return
	}

	// Query failures are logged and swallowed; the user gets no dialog or
	// status change, the tab simply does not open.
	snapshot, err := store.LoadSnapshot(path, table)
	if err != nil {
		slog.Error("failed to load table", "database", database, "table", table, "error", err)
		return
	}

	newTab := container.NewTabItem(table, newSnapshotTable(snapshot))
	t.tabDataMap[newTab] = &TableTab{
		snapshot: snapshot,
		tab:      newTab,
		database: database,
	}

	t.tabs.Append(newTab)
	t.tabs.Select(newTab)
	t.updateStatusForTab(newTab)
}

// CloseCurrentTab closes the selected tab, if any.
func (t *DataBrowser) CloseCurrentTab() {
	selected := t.tabs.Selected()
	if selected == nil {
		return
	}
	delete(t.tabDataMap, selected)
	t.tabs.Remove(selected)

	if next := t.tabs.Selected(); next != nil {
		t.updateStatusForTab(next)
	} else {
		t.setStatus("Ready")
	}
}

// CloseAllTabs closes every tab and discards every snapshot.
func (t *DataBrowser) CloseAllTabs() {
	items := make([]*container.TabItem, len(t.tabs.Items))
	copy(items, t.tabs.Items)
	for _, ti := range items {
		delete(t.tabDataMap, ti)
		t.tabs.Remove(ti)
	}
	t.setStatus("Ready")
}

// ExportCurrent saves the selected tab's snapshot through a file save
// dialog. A no-op with a status message when no tab is open.
func (t *DataBrowser) ExportCurrent(format store.ExportFormat) {
	selected := t.tabs.Selected()
	if selected == nil {
		t.setStatus("No table open to export")
		return
	}
	data, exists := t.tabDataMap[selected]
	if !exists {
		return
	}

	var ext string
	switch format {
	case store.FormatCSV:
		ext = ".csv"
	case store.FormatJSON:
		ext = ".json"
	case store.FormatParquet:
		ext = ".parquet"
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		filePath := writer.URI().Path()
		_ = writer.Close()

		if err := store.Export(data.snapshot, format, filePath); err != nil {
			slog.Error("export failed", "table", data.snapshot.Table, "path", filePath, "error", err)
			dialog.ShowError(fmt.Errorf("export failed: %w", err), t.w)
			return
		}
		dialog.ShowInformation("Export Successful",
			fmt.Sprintf("Data exported successfully to:\n%s", filePath), t.w)
		t.setStatus("Exported " + data.snapshot.Table)
	}, t.w)

	saveDialog.SetFileName(cleanFilename(data.snapshot.Table) + ext)
	saveDialog.Show()
}

// newSnapshotTable renders a snapshot as a scrollable grid with column
// headers and row numbers.
func newSnapshotTable(snapshot *store.Snapshot) fyne.CanvasObject {
	table := widget.NewTableWithHeaders(
		func() (int, int) {
			return snapshot.RowCount(), snapshot.ColumnCount()
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("cell")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row < snapshot.RowCount() && id.Col < snapshot.ColumnCount() {
				label.SetText(snapshot.Rows[id.Row][id.Col])
			} else {
				label.SetText("")
			}
		},
	)

	table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("header")
		label.TextStyle = fyne.TextStyle{Bold: true}
		return label
	}
	table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		switch {
		case id.Row == -1 && id.Col >= 0 && id.Col < snapshot.ColumnCount():
			label.SetText(snapshot.Columns[id.Col])
		case id.Col == -1 && id.Row >= 0:
			label.SetText(fmt.Sprintf("%d", id.Row+1))
		default:
			label.SetText("")
		}
	}

	for i, col := range snapshot.Columns {
		width := float32(len(col)) * 12
		if width < 100 {
			width = 100
		}
		table.SetColumnWidth(i, width)
	}

	return table
}

// cleanFilename removes spaces and special characters from a filename.
func cleanFilename(name string) string {
	result := ""
	for _, r := range name {
		if r == ' ' {
			result += "_"
		} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result += string(r)
		}
	}
	return result
}
