package windows

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// databaseExtensions are the file suffixes shown by the picker.
var databaseExtensions = []string{".db", ".sqlite", ".sqlite3"}

// DatabaseDialog is a file picker for SQLite database files with simple
// directory navigation.
type DatabaseDialog struct {
	dialog      dialog.Dialog
	window      fyne.Window
	callback    func(string)
	fileList    *widget.List
	files       []string
	homeDir     string
	currentPath string
	pathLabel   *widget.Label
}

// NewDatabaseDialog creates a picker rooted at the user's home directory.
// The callback receives the selected file path.
func NewDatabaseDialog(w fyne.Window, callback func(string)) *DatabaseDialog {
	dd := &DatabaseDialog{
		window:   w,
		callback: callback,
		files:    make([]string, 0),
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	dd.homeDir = homeDir
	dd.currentPath = homeDir

	return dd
}

func isDatabaseFile(name string) bool {
	for _, ext := range databaseExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (dd *DatabaseDialog) Show() {
	dd.pathLabel = widget.NewLabel(dd.currentPath)
	dd.pathLabel.Wrapping = fyne.TextTruncate
	dd.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	dd.fileList = widget.NewList(
		func() int {
			return len(dd.files)
		},
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.DocumentIcon())
			label := widget.NewLabel("template")
			return container.NewHBox(icon, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cont := obj.(*fyne.Container)
			icon := cont.Objects[0].(*widget.Icon)
			label := cont.Objects[1].(*widget.Label)

			fileName := dd.files[id]
			label.SetText(fileName)

			fullPath := filepath.Join(dd.currentPath, fileName)
			fileInfo, err := os.Stat(fullPath)
			if err == nil && fileInfo.IsDir() {
				icon.SetResource(theme.FolderIcon())
			} else if isDatabaseFile(fileName) {
				icon.SetResource(theme.StorageIcon())
			} else {
				icon.SetResource(theme.FileIcon())
			}
		},
	)

	dd.fileList.OnSelected = func(id widget.ListItemID) {
		fileName := dd.files[id]
		fullPath := filepath.Join(dd.currentPath, fileName)

		fileInfo, err := os.Stat(fullPath)
		if err != nil {
			return
		}

		if fileInfo.IsDir() {
			// Navigate into directory
			dd.currentPath = fullPath
			dd.loadDirectory()
			dd.fileList.UnselectAll()
		} else {
			dd.callback(fullPath)
			dd.dialog.Hide()
		}
	}

	homeButton := widget.NewButtonWithIcon("Home", theme.HomeIcon(), func() {
		dd.currentPath = dd.homeDir
		dd.loadDirectory()
	})

	upButton := widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() {
		parent := filepath.Dir(dd.currentPath)
		if parent != dd.currentPath {
			dd.currentPath = parent
			dd.loadDirectory()
		}
	})

	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		dd.loadDirectory()
	})

	filterInfo := widget.NewLabel("Showing: .db, .sqlite, and .sqlite3 files, and directories")
	filterInfo.TextStyle = fyne.TextStyle{Italic: true}

	navToolbar := container.NewBorder(
		nil, nil,
		container.NewHBox(homeButton, upButton, refreshButton),
		nil,
		dd.pathLabel,
	)

	instructions := widget.NewRichTextFromMarkdown("**Select a SQLite database file (.db, .sqlite, or .sqlite3)**\n\nClick a folder to navigate, or click a file to open it.")
	instructions.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(
		container.NewVBox(
			instructions,
			widget.NewSeparator(),
			navToolbar,
			widget.NewSeparator(),
			filterInfo,
		),
		nil, nil, nil,
		dd.fileList,
	)

	dd.dialog = dialog.NewCustom("Open Database", "Close", content, dd.window)
	dd.dialog.Resize(fyne.NewSize(800, 600))

	dd.loadDirectory()

	dd.dialog.Show()
}

func (dd *DatabaseDialog) loadDirectory() {
	entries, err := os.ReadDir(dd.currentPath)
	if err != nil {
		dialog.ShowError(err, dd.window)
		return
	}

	dd.files = make([]string, 0)

	// Directories first
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dd.files = append(dd.files, entry.Name())
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() && isDatabaseFile(entry.Name()) {
			dd.files = append(dd.files, entry.Name())
		}
	}

	dd.pathLabel.SetText(dd.currentPath)
	dd.fileList.Refresh()
}
