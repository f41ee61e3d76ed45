package keyval

import (
	"context"
	"sync"
)

// TestStore is a map-backed gateway for tests in other packages.
// SaveErr / LoadCorrupt allow exercising the failure paths.
type TestStore struct {
	mutex sync.Mutex
	data  map[string][]byte

	SaveErr     error
	LoadCorrupt bool
	SaveCalls   int
}

func NewTestStore() *TestStore {
	return &TestStore{
		data: make(map[string][]byte),
	}
}

func (ts *TestStore) Load(_ context.Context, key string) ([]byte, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	if ts.LoadCorrupt {
		return []byte("not really json {"), nil
	}
	data, ok := ts.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return data, nil
}

func (ts *TestStore) Save(_ context.Context, key string, data []byte) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	ts.SaveCalls++
	if ts.SaveErr != nil {
		return ts.SaveErr
	}
	ts.data[key] = data
	return nil
}

func (ts *TestStore) Delete(_ context.Context, key string) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	delete(ts.data, key)
	return nil
}

func (ts *TestStore) Stored(key string) ([]byte, bool) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	data, ok := ts.data[key]
	return data, ok
}
