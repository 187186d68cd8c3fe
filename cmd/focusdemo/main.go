// Command focusdemo shows files in the terminal and runs focus mode on them.
//
//	focusdemo [-config focus.toml] [-log focus.log] file...
//
// Files are watched and reloaded when they change on disk.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oligo/gvfocus/config"
	"github.com/oligo/gvfocus/focus"
	"github.com/oligo/gvfocus/view"
)

func main() {
	configPath := flag.String("config", "focus.toml", "config file, TOML or YAML")
	logPath := flag.String("log", "", "write debug logs to this file")
	dumpConfig := flag.Bool("dump-config", false, "print the effective config as TOML and exit")
	flag.Parse()

	if err := run(*configPath, *logPath, *dumpConfig, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "focusdemo:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, dumpConfig bool, files []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if dumpConfig {
		return cfg.Encode(os.Stdout, config.TOML)
	}

	if len(files) == 0 {
		return fmt.Errorf("no file to show")
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		focus.SetLogger(logger)
		view.SetLogger(logger)
	}

	ws := view.NewWorkspace()
	docs := make([]*fileView, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, &fileView{path: path, view: ws.Open(string(data))})
	}

	var program *tea.Program
	m := newModel(ws, docs)
	m.ctrl = focus.New(ws, ws, m.notices,
		focus.WithConfig(cfg),
		focus.WithDispatcher(func(fn func()) {
			program.Send(dispatchMsg(fn))
		}),
	)
	m.commands = m.ctrl.Commands(m)

	program = tea.NewProgram(m, tea.WithAltScreen())

	w, err := watchFiles(program, files)
	if err != nil {
		slog.Warn("file watching disabled", "error", err)
	} else {
		defer w.Close()
	}

	_, err = program.Run()
	if m.ctrl.Mode() == focus.Active {
		m.ctrl.Deactivate()
	}
	return err
}
