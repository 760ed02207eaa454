package main

import (
	"log/slog"
	"os"

	"github.com/lepinkainen/humanlog"

	"sdb/windows"
)

func main() {
	initLogging()

	w := windows.CreateMainWindow()
	w.Run()
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
