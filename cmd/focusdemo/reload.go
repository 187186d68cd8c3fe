package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/oligo/gvfocus/view"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// fileChangedMsg is sent when a shown file was written on disk.
type fileChangedMsg struct {
	path string
}

// watchFiles forwards writes of files to p. The directories are watched
// rather than the files so that editors replacing files on save are seen too.
func watchFiles(p *tea.Program, files []string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]string, len(files))
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			w.Close()
			return nil, err
		}
		wanted[abs] = path

		if err := w.Add(filepath.Dir(abs)); err != nil {
			w.Close()
			return nil, err
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if path, ok := wanted[filepath.Clean(event.Name)]; ok {
					p.Send(fileChangedMsg{path: path})
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("watching files", "error", err)
			}
		}
	}()

	return w, nil
}

// textEditor is the part of a view edited by a reload.
type textEditor interface {
	Text() string
	ApplyEdits(edits []view.Edit) error
}

// reload replaces the text of ed with the content of path. Only the changed
// parts are edited, so a focus area above or below a change is kept.
func reload(ed textEditor, path string) (edits int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return applyDiff(ed, string(data))
}

// applyDiff turns the difference between the text of ed and text into
// insertions and deletions, applied to ed as a single change.
func applyDiff(ed textEditor, text string) (edits int, err error) {
	d := dmp.New()
	diffs := d.DiffMain(ed.Text(), text, true)
	d.DiffCleanupEfficiency(diffs)

	var changes []view.Edit
	offset := 0
	for _, df := range diffs {
		n := utf8.RuneCountInString(df.Text)
		switch df.Type {
		case dmp.DiffEqual:
			offset += n
		case dmp.DiffDelete:
			changes = append(changes, view.Edit{Offset: offset, Length: n})
		case dmp.DiffInsert:
			changes = append(changes, view.Edit{Offset: offset, Text: df.Text})
			offset += n
		}
	}

	if err := ed.ApplyEdits(changes); err != nil {
		return 0, err
	}
	return len(changes), nil
}
