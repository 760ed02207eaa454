package windows

import (
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"sdb/store"
)

// MainWindow is the application shell: navigation tree on the left, table
// viewer tabs on the right, menus, toolbar and a status bar with progress.
type MainWindow struct {
	a                        fyne.App
	w                        fyne.Window
	top, left, right, bottom fyne.CanvasObject
	session                  *store.Session
	tree                     *NavigationTree
	treeWidget               *widget.Tree
	dataBrowser              *DataBrowser
	statusBar                *widget.Label
	progressBar              *widget.ProgressBar
}

// CreateMainWindow builds the application window and all of its widgets.
func CreateMainWindow() *MainWindow {
	var v MainWindow
	v.NewMainWindow(app.NewWithID("sdb"))
	return &v
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

func (t *MainWindow) NewMainWindow(a fyne.App) {
	t.a = a
	t.a.Settings().SetTheme(&CustomTheme{})
	t.session = store.NewSession()
	t.tree = NewNavigationTree()

	t.w = t.a.NewWindow("SQLite Database Browser")
	t.w.Resize(fyne.NewSize(1200, 800))

	// Status bar with progress indicator, hidden while idle
	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.progressBar = widget.NewProgressBar()
	t.progressBar.Hide()
	t.bottom = container.NewBorder(nil, nil, nil, t.progressBar, t.statusBar)

	t.dataBrowser = NewDataBrowser(t.w, t.session, t.SetStatus)

	t.treeWidget = widget.NewTree(
		t.tree.GetChildren,
		t.tree.IsBranch,
		func(branch bool) fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("node"))
		},
		func(id widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
			t.tree.UpdateNodeDisplay(id, obj, branch)
		},
	)
	t.treeWidget.OnSelected = t.onNodeActivated

	t.left = container.NewGridWrap(fyne.NewSize(260, 768), widget.NewCard("", "Tables", t.treeWidget))
	t.right = container.NewVBox()
	t.top = t.createToolbar()

	t.w.SetMainMenu(t.createMainMenu())

	c := container.NewBorder(t.top, t.bottom, t.left, t.right,
		widget.NewCard("", "", t.dataBrowser.Tabs()))
	t.w.SetContent(c)
}

// Run shows the window and enters the event loop.
func (t *MainWindow) Run() {
	t.w.ShowAndRun()
}

func (t *MainWindow) createMainMenu() *fyne.MainMenu {
	newSessionItem := fyne.NewMenuItem("New Session", t.newSession)

	// Present in the UI but wired to nothing
	importItem := fyne.NewMenuItem("Import", func() {})
	importItem.Disabled = true

	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("CSV...", func() { t.dataBrowser.ExportCurrent(store.FormatCSV) }),
		fyne.NewMenuItem("JSON...", func() { t.dataBrowser.ExportCurrent(store.FormatJSON) }),
		fyne.NewMenuItem("Parquet...", func() { t.dataBrowser.ExportCurrent(store.FormatParquet) }),
	)

	exitItem := fyne.NewMenuItem("Exit", func() { t.w.Close() })

	fileMenu := fyne.NewMenu("File",
		newSessionItem,
		importItem,
		fyne.NewMenuItemSeparator(),
		exportItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	optionsMenu := fyne.NewMenu("Options")
	helpMenu := fyne.NewMenu("Help")

	return fyne.NewMainMenu(fileMenu, optionsMenu, helpMenu)
}

func (t *MainWindow) createToolbar() fyne.CanvasObject {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), func() {
			if !t.left.Visible() {
				t.left.Show()
			} else {
				t.left.Hide()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.newSession),
		widget.NewToolbarAction(theme.DownloadIcon(), func() {}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {}),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.CancelIcon(), t.dataBrowser.CloseCurrentTab),
		widget.NewToolbarAction(theme.ContentClearIcon(), t.dataBrowser.CloseAllTabs),
		widget.NewToolbarSpacer(),
	)
}

// newSession opens the database file picker and loads the chosen file.
func (t *MainWindow) newSession() {
	dd := NewDatabaseDialog(t.w, func(path string) {
		if path == "" {
			return
		}
		t.loadDatabase(filepath.Base(path), path)
	})
	dd.Show()
}

// loadDatabase registers the database and starts a background table
// listing. A name that is already registered is silently ignored and does
// not trigger a second load.
func (t *MainWindow) loadDatabase(name, path string) {
	if !t.session.Register(name, path) {
		slog.Debug("database already loaded", "name", name)
		return
	}

	t.progressBar.SetValue(0)
	t.progressBar.Show()
	t.SetStatus("Loading " + name + "...")

	events := store.ListTables(path)
	go t.consumeLoadEvents(name, events)
}

// consumeLoadEvents drains one listing's event channel, applying every UI
// mutation on the event context via fyne.Do.
func (t *MainWindow) consumeLoadEvents(name string, events <-chan store.LoadEvent) {
	for ev := range events {
		if !ev.Done {
			fyne.Do(func() {
				t.progressBar.SetValue(float64(ev.Percent) / 100)
			})
			continue
		}
		fyne.Do(func() {
			t.finishLoad(name, ev)
		})
	}
}

// finishLoad applies a completed listing to the tree, or reports the error.
func (t *MainWindow) finishLoad(name string, ev store.LoadEvent) {
	t.progressBar.Hide()

	if ev.Err != nil {
		t.SetStatus("Error loading " + name)
		dialog.ShowError(ev.Err, t.w)
		return
	}

	t.SetStatus("Loaded " + name)
	t.tree.AddDatabase(name)
	t.tree.AddTables(name, ev.Tables)
	t.treeWidget.Refresh()
	t.treeWidget.OpenBranch(t.tree.GenerateNodeID(NodeTypeDatabase, name, ""))
}

// onNodeActivated handles tree selection: a table node opens a viewer tab,
// a database node only updates the status text. The node record is used
// directly so database names containing ID separator characters resolve
// correctly.
func (t *MainWindow) onNodeActivated(id widget.TreeNodeID) {
	node := t.tree.GetNode(id)
	if node == nil {
		return
	}

	switch node.NodeType {
	case NodeTypeTable:
		t.SetStatus("Table: " + node.Name + " (" + node.Database + ")")
		t.dataBrowser.OpenTable(node.Database, node.Name)
	case NodeTypeDatabase:
		t.SetStatus("Database: " + node.Name)
	}

	// Allow the same node to be activated again
	t.treeWidget.UnselectAll()
}
