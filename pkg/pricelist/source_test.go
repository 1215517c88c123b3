package pricelist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "continental.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	src := NewDirSource(dir)
	ctx := context.Background()

	summer := models.CatalogSpec{Name: "Continental summer", FileName: "continental.xlsx"}
	winter := models.CatalogSpec{Name: "Continental winter", FileName: "continental.xlsx", SheetIndex: 1}

	data, err := src.Load(ctx, summer)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// shared workbooks are read once
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	data, err = src.Load(ctx, winter)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	_, err = src.Load(ctx, models.CatalogSpec{Name: "Nokian", FileName: "nokian.xlsx"})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = src.Load(ctx, models.CatalogSpec{Name: "Nokian"})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.Load(cancelled, summer)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDirSourceConcurrentLoads(t *testing.T) {
	var (
		mu    sync.Mutex
		reads = map[string]int{}
	)
	otherRead := make(chan struct{})

	src := NewDirSource("/pricelists")
	src.readFile = func(name string) ([]byte, error) {
		mu.Lock()
		reads[filepath.Base(name)]++
		mu.Unlock()

		switch filepath.Base(name) {
		case "conti.xlsx":
			// blocks until another workbook is read in parallel
			select {
			case <-otherRead:
			case <-time.After(2 * time.Second):
				return nil, errors.New("workbooks are read one at a time")
			}
		case "pirelli.xlsx":
			close(otherRead)
		}
		return []byte(filepath.Base(name)), nil
	}

	ctx := context.Background()
	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			data, err := src.Load(ctx, models.CatalogSpec{Name: "Continental", FileName: "conti.xlsx", SheetIndex: i})
			if err == nil && string(data) != "conti.xlsx" {
				err = fmt.Errorf("unexpected payload %q", data)
			}
			return err
		})
	}
	time.Sleep(20 * time.Millisecond)

	data, err := src.Load(ctx, models.CatalogSpec{Name: "Pirelli", FileName: "pirelli.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "pirelli.xlsx", string(data))
	require.NoError(t, g.Wait())

	_, err = src.Load(ctx, models.CatalogSpec{Name: "Barum", FileName: "conti.xlsx", SheetIndex: 3})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"conti.xlsx": 1, "pirelli.xlsx": 1}, reads, "shared workbooks are read once")
}

func TestMemorySource(t *testing.T) {
	src := MemorySource{"Pirelli": []byte("payload")}

	data, err := src.Load(context.Background(), models.CatalogSpec{Name: "Pirelli"})
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = src.Load(context.Background(), models.CatalogSpec{Name: "Michelin"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
