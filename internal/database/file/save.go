package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/utils"
)

const (
	fileExt  = ".json"
	dirPerm  = 0o755
	filePerm = 0o644
)

// SaveRepository stores one file per key under a directory
type SaveRepository struct {
	dir string
}

// NewSaveRepository creates the directory if needed
func NewSaveRepository(dir string) (*SaveRepository, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}
	return &SaveRepository{dir: dir}, nil
}

func (r *SaveRepository) path(key string) string {
	return filepath.Join(r.dir, url.PathEscape(key)+fileExt)
}

func (r *SaveRepository) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return data, nil
}

func (r *SaveRepository) Put(_ context.Context, key string, value []byte) error {
	if err := utils.WriteFileAtomic(r.path(key), value, filePerm); err != nil {
		if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
			return fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return err
	}
	return nil
}

func (r *SaveRepository) Delete(_ context.Context, key string) error {
	if err := os.Remove(r.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

func (r *SaveRepository) Keys(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list save directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
