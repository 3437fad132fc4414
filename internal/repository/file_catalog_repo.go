package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"rentcatalog/internal/domain"
)

const (
	EquipmentKey  = "equipment"
	CategoriesKey = "categories"

	lockTimeout   = 3 * time.Second
	lockRetryWait = 100 * time.Millisecond
)

// yamlCollection is one collection living in its own YAML data file.
// Writes are serialized in-process by mu and across processes by a
// "<file>.lock" flock, and land on disk through a temp file + rename.
type yamlCollection[T any] struct {
	path string
	key  string
	mu   sync.Mutex
	lock *flock.Flock
}

func newYAMLCollection[T any](path, key string) *yamlCollection[T] {
	return &yamlCollection[T]{
		path: path,
		key:  key,
		lock: flock.New(path + ".lock"),
	}
}

func (c *yamlCollection[T]) list() ([]T, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	items, err := DecodeCollection[T](content, c.key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return items, nil
}

func (c *yamlCollection[T]) update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := c.lock.TryLockContext(lockCtx, lockRetryWait)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", c.path, err)
	}
	if !locked {
		return fmt.Errorf("could not acquire file lock for %s", c.path)
	}
	defer func() { _ = c.lock.Unlock() }()

	content, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.path, err)
	}

	items, err := DecodeCollection[T](content, c.key)
	if err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}

	next, err := fn(items)
	if err != nil {
		return err
	}

	updated, err := SpliceCollection(content, c.key, next)
	if err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}

	return writeFileAtomic(c.path, updated)
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// FileCatalogRepository keeps equipment and categories in two YAML files.
type FileCatalogRepository struct {
	equipment  *yamlCollection[domain.Equipment]
	categories *yamlCollection[domain.Category]
}

func NewFileCatalogRepository(equipmentPath, categoryPath string) *FileCatalogRepository {
	return &FileCatalogRepository{
		equipment:  newYAMLCollection[domain.Equipment](equipmentPath, EquipmentKey),
		categories: newYAMLCollection[domain.Category](categoryPath, CategoriesKey),
	}
}

func (r *FileCatalogRepository) ListEquipment(_ context.Context) ([]domain.Equipment, error) {
	return r.equipment.list()
}

func (r *FileCatalogRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	return r.categories.list()
}

func (r *FileCatalogRepository) UpdateEquipment(ctx context.Context, fn func([]domain.Equipment) ([]domain.Equipment, error)) error {
	return r.equipment.update(ctx, fn)
}

func (r *FileCatalogRepository) UpdateCategories(ctx context.Context, fn func([]domain.Category) ([]domain.Category, error)) error {
	return r.categories.update(ctx, fn)
}

func (r *FileCatalogRepository) Close() error {
	return nil
}
