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
	"database/sql"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"sdb/store"
)

// shopDB creates a fixture database with customers and orders tables.
func shopDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	statements := []string{
		"CREATE TABLE customers (id INTEGER PRIMARY KEY, name TEXT)",
		"CREATE TABLE orders (id INTEGER PRIMARY KEY, customer_id INTEGER, item TEXT)",
		"INSERT INTO customers VALUES (1, 'alice'), (2, 'bob')",
		"INSERT INTO orders VALUES (1, 1, 'widget'), (2, 1, 'gadget'), (3, 2, 'sprocket')",
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func newTestBrowser(t *testing.T) (*DataBrowser, *store.Session, *[]string) {
	t.Helper()

	a := test.NewApp()
	w := a.NewWindow("test")

	var statuses []string
	session := store.NewSession()
	browser := NewDataBrowser(w, session, func(message string) {
		statuses = append(statuses, message)
	})
	return browser, session, &statuses
}

func TestOpenTable(t *testing.T) {
	browser, session, statuses := newTestBrowser(t)
	session.Register("shop.db", shopDB(t))

	browser.OpenTable("shop.db", "orders")

	require.Equal(t, 1, browser.TabCount())
	assert.Equal(t, "orders", browser.Tabs().Selected().Text)
	require.NotEmpty(t, *statuses)
	assert.Equal(t, "Table orders (3 columns x 3 rows)", (*statuses)[len(*statuses)-1])
}

func TestOpenTableDuplicatesNotDeduplicated(t *testing.T) {
	browser, session, _ := newTestBrowser(t)
	session.Register("shop.db", shopDB(t))

	browser.OpenTable("shop.db", "orders")
	browser.OpenTable("shop.db", "orders")

	assert.Equal(t, 2, browser.TabCount())
}

func TestOpenTableUnregisteredDatabase(t *testing.T) {
	browser, _, _ := newTestBrowser(t)

	browser.OpenTable("nope.db", "orders")

	assert.Equal(t, 0, browser.TabCount())
}

func TestOpenTableQueryFailure(t *testing.T) {
	browser, session, statuses := newTestBrowser(t)
	session.Register("shop.db", shopDB(t))

	browser.OpenTable("shop.db", "no_such_table")

	// Aborts without a tab and without any user-visible notification.
	assert.Equal(t, 0, browser.TabCount())
	assert.Empty(t, *statuses)
}

func TestOpenEmptyTable(t *testing.T) {
	browser, session, _ := newTestBrowser(t)

	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE nothing_here (a TEXT, b TEXT)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	session.Register("empty.db", path)
	browser.OpenTable("empty.db", "nothing_here")

	assert.Equal(t, 1, browser.TabCount())
}

func TestCloseCurrentTab(t *testing.T) {
	browser, session, statuses := newTestBrowser(t)
	session.Register("shop.db", shopDB(t))

	browser.OpenTable("shop.db", "customers")
	browser.OpenTable("shop.db", "orders")
	require.Equal(t, 2, browser.TabCount())

	browser.CloseCurrentTab()
	assert.Equal(t, 1, browser.TabCount())

	browser.CloseCurrentTab()
	assert.Equal(t, 0, browser.TabCount())
	assert.Equal(t, "Ready", (*statuses)[len(*statuses)-1])

	// No selection left; closing again is a no-op.
	browser.CloseCurrentTab()
	assert.Equal(t, 0, browser.TabCount())
}

func TestCloseAllTabs(t *testing.T) {
	browser, session, _ := newTestBrowser(t)
	session.Register("shop.db", shopDB(t))

	browser.OpenTable("shop.db", "customers")
	browser.OpenTable("shop.db", "orders")
	browser.OpenTable("shop.db", "orders")
	require.Equal(t, 3, browser.TabCount())

	browser.CloseAllTabs()
	assert.Equal(t, 0, browser.TabCount())
	assert.Empty(t, browser.tabDataMap)
}

func TestCloseAllTabsEmpty(t *testing.T) {
	browser, _, _ := newTestBrowser(t)

	browser.CloseAllTabs()
	assert.Equal(t, 0, browser.TabCount())
}

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "order_details", cleanFilename("order details"))
	assert.Equal(t, "oddname", cleanFilename(`odd"name!`))
	assert.Equal(t, "plain-name_1", cleanFilename("plain-name_1"))
}
