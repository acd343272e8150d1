package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/osse101/MagicGarden_Go/internal/bootstrap"
	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/config"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/savestore"
	"github.com/osse101/MagicGarden_Go/internal/utils"
)

const exportFilePerm = 0o600

// withStore opens the configured save backend for the duration of fn
func withStore(fn func(ctx context.Context, store *savestore.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := logger.NewTrace(context.Background())
	backend, err := bootstrap.OpenSaveBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	store := savestore.New(backend.Repo, clock.NewRealClockIn(loc)).WithSlot(cfg.SaveSlot)
	return fn(ctx, store)
}

type ExportSaveCommand struct{}

func (c *ExportSaveCommand) Name() string {
	return "export-save"
}

func (c *ExportSaveCommand) Description() string {
	return "Write the configured save slot as JSON (stdout or [path])"
}

func (c *ExportSaveCommand) Run(args []string) error {
	return withStore(func(ctx context.Context, store *savestore.Store) error {
		if len(args) == 0 {
			return exportSave(ctx, store, os.Stdout)
		}
		text, err := store.Export(ctx)
		if err != nil {
			return err
		}
		if err := utils.WriteFileAtomic(args[0], []byte(text), exportFilePerm); err != nil {
			return err
		}
		PrintSuccess("Slot %s exported to %s", store.Slot(), args[0])
		return nil
	})
}

func exportSave(ctx context.Context, store *savestore.Store, w io.Writer) error {
	text, err := store.Export(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

type ImportSaveCommand struct{}

func (c *ImportSaveCommand) Name() string {
	return "import-save"
}

func (c *ImportSaveCommand) Description() string {
	return "Replace the configured save slot with an exported file"
}

func (c *ImportSaveCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: import-save <path>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	return withStore(func(ctx context.Context, store *savestore.Store) error {
		summary, err := importSave(ctx, store, f)
		if err != nil {
			return err
		}
		PrintSuccess("%s", summary)
		return nil
	})
}

func importSave(ctx context.Context, store *savestore.Store, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read import: %w", err)
	}
	doc, err := store.Import(ctx, string(data))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("slot %s imported: %d plants, %d residents", store.Slot(), len(doc.Plants()), len(doc.Residents)), nil
}

type BackupCommand struct{}

func (c *BackupCommand) Name() string {
	return "backup"
}

func (c *BackupCommand) Description() string {
	return "Copy the configured save slot to its backup key"
}

func (c *BackupCommand) Run(args []string) error {
	return withStore(func(ctx context.Context, store *savestore.Store) error {
		if err := store.Backup(ctx); err != nil {
			return err
		}
		PrintSuccess("Slot %s backed up", store.Slot())
		return nil
	})
}
