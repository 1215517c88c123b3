package pricelist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// WorkbookSource loads the workbook payload of a catalog.
type WorkbookSource interface {
	Load(ctx context.Context, spec models.CatalogSpec) ([]byte, error)
}

// DirSource reads workbooks from a directory by CatalogSpec.FileName.
// Several catalogs often share one workbook (one sheet each), so payloads
// are read once and cached. Concurrent loads of the same file share one read.
type DirSource struct {
	Dir string

	mu       sync.Mutex
	cache    map[string][]byte
	group    singleflight.Group
	readFile func(name string) ([]byte, error)
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir, cache: make(map[string][]byte)}
}

// Load implements WorkbookSource.
func (s *DirSource) Load(ctx context.Context, spec models.CatalogSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.FileName == "" {
		return nil, fmt.Errorf("catalog %q has no workbook file", spec.Name)
	}

	if data, ok := s.cached(spec.FileName); ok {
		return data, nil
	}
	v, err, _ := s.group.Do(spec.FileName, func() (interface{}, error) {
		if data, ok := s.cached(spec.FileName); ok {
			return data, nil
		}
		read := s.readFile
		if read == nil {
			read = os.ReadFile
		}
		data, err := read(filepath.Join(s.Dir, spec.FileName))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.cache == nil {
			s.cache = make(map[string][]byte)
		}
		s.cache[spec.FileName] = data
		s.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *DirSource) cached(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.cache[name]
	return data, ok
}

// MemorySource serves payloads keyed by catalog name.
type MemorySource map[string][]byte

// Load implements WorkbookSource.
func (m MemorySource) Load(_ context.Context, spec models.CatalogSpec) ([]byte, error) {
	data, ok := m[spec.Name]
	if !ok {
		return nil, fmt.Errorf("no workbook for catalog %q: %w", spec.Name, os.ErrNotExist)
	}
	return data, nil
}
