package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/engines/chrome"
	"github.com/jonathan/resume-builder/internal/engines/fpdf"
	"github.com/jonathan/resume-builder/internal/engines/ooxml"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
)

// app bundles what a command needs to act on the saved builder
type app struct {
	ctrl    *builder.Controller
	printer *observability.Printer
	close   func() error
}

// openApp restores the builder from the configured store
func openApp(cmd *cobra.Command) (*app, error) {
	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	ctrl := builder.New(cmd.Context(), store, builder.WithKey(cfg.Store.Key))
	return &app{
		ctrl:    ctrl,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		close:   closeStore,
	}, nil
}

// done prints the state in verbose mode and releases the store
func (a *app) done() error {
	if cfg.Verbose {
		a.printer.PrintState(a.ctrl.Snapshot())
	}
	return a.close()
}

func openStore(c config.StoreConfig) (storage.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), noop, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		s, err := storage.OpenSQLite(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendFile, "":
		s, err := storage.NewFileStore(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", c.Backend)
}

// newRenderers builds the PDF and DOCX backends over the configured page engine
func newRenderers(c config.ExportConfig, verbose bool) rendering.Set {
	var pages rendering.PageEngine = fpdf.New()
	if c.Engine == config.EngineChrome {
		engine := chrome.New(c.ChromePath)
		if c.ChromeTimeout > 0 {
			engine.Timeout = c.ChromeTimeout
		}
		engine.Verbose = verbose
		pages = engine
	}
	return rendering.NewSet(pages, ooxml.New())
}

// newOrchestrator saves exports into dir and previews under the state directory
func newOrchestrator(dir string) *generation.Orchestrator {
	return generation.New(
		newRenderers(cfg.Export, cfg.Verbose),
		generation.DirSaver{Dir: dir},
		generation.WithPreviewStore(generation.FilePreviewStore{Dir: filepath.Join(cfg.StateDir, "previews")}),
		generation.WithVerbose(cfg.Verbose),
	)
}

// userError prefers the message written for users over the wrapped cause
func userError(err error) error {
	var genErr *generation.GenerationError
	if errors.As(err, &genErr) && genErr.UserMessage != "" {
		return fmt.Errorf("%s: %w", genErr.UserMessage, err)
	}
	return err
}
