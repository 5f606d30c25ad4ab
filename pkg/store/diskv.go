// Package store persists whole documents under string keys on local disk.
// Each key maps to one file and a write replaces the whole file. The
// meeting collection lives in a single document; the queue in front of
// this store decides when writes happen.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Persistence is the durable key-value contract handed to the update
// queue: opaque document bytes under string keys.
type Persistence interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, bool, error)
	Remove(key string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config,
// falling back to LoadConfig when cfg is nil.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path required")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Put(key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

func (p *persistence) Get(key string) ([]byte, bool, error) {
	if err := validKey(key); err != nil {
		return nil, false, err
	}
	if !p.d.Has(key) {
		return nil, false, nil
	}
	data, err := p.d.Read(key)
	if err != nil {
		return nil, false, fmt.Errorf("store: read %q: %w", key, err)
	}
	return data, true, nil
}

func (p *persistence) Remove(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %q: %w", key, err)
	}
	return nil
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	if strings.ContainsAny(key, "/\\") {
		return fmt.Errorf("store: key %q contains path separators", key)
	}
	return nil
}

const documentSuffix = ".json"

// Documents live flat under the base path, one file per key.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key + documentSuffix}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, documentSuffix)
}
