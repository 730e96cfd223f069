package blob

import (
	"bytes"
	"context"
	"io"
	"sync"

	"health-records-portal/internal/domain/reports"
)

type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

func (m *Memory) Save(ctx context.Context, originalName, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	ref := newKey(originalName)

	m.mu.Lock()
	m.files[ref] = data
	m.mu.Unlock()
	return ref, nil
}

func (m *Memory) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.files[ref]
	m.mu.RUnlock()
	if !ok {
		return nil, reports.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	delete(m.files, ref)
	m.mu.Unlock()
	return nil
}
