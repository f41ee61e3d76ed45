package keyval

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/2beens/vitalstats/internal/telemetry/tracing"
	"github.com/2beens/vitalstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// DiskStore keeps one file per key under its root dir.
// Writes replace the whole file, mirroring the engine's
// whole-collection persistence model.
type DiskStore struct {
	rootPath string
	mutex    sync.RWMutex
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	exists, err := pkg.PathExists(rootPath, true)
	if err != nil {
		return nil, fmt.Errorf("check root path %s: %w", rootPath, err)
	}
	if !exists {
		if err := os.MkdirAll(rootPath, 0o755); err != nil {
			return nil, fmt.Errorf("create root path %s: %w", rootPath, err)
		}
		log.Debugf("disk store: created root path %s", rootPath)
	}
	return &DiskStore{
		rootPath: rootPath,
	}, nil
}

func (ds *DiskStore) filePath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "./\\") {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return path.Join(ds.rootPath, key+".json"), nil
}

func (ds *DiskStore) Load(ctx context.Context, key string) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("store.key", key))

	filePath, err := ds.filePath(key)
	if err != nil {
		return nil, err
	}

	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	log.Debugf("disk store: loaded %d bytes for key [%s]", len(data), key)
	return data, nil
}

func (ds *DiskStore) Save(ctx context.Context, key string, data []byte) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("store.key", key))
	span.SetAttributes(attribute.Int("store.bytes", len(data)))

	filePath, err := ds.filePath(key)
	if err != nil {
		return err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	// write to a temp file first, then rename, so a failed
	// write cannot clobber the last good state
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}

	log.Debugf("disk store: saved %d bytes for key [%s]", len(data), key)
	return nil
}

func (ds *DiskStore) Delete(ctx context.Context, key string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("store.key", key))

	filePath, err := ds.filePath(key)
	if err != nil {
		return err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", filePath, err)
	}

	log.Debugf("disk store: deleted key [%s]", key)
	return nil
}
