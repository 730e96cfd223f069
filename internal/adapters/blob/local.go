package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"health-records-portal/internal/domain/reports"
)

// Local guarda cada archivo bajo dir con nombre <uuid><ext>.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(ctx context.Context, originalName, contentType string, body io.Reader) (string, error) {
	ref := newKey(originalName)
	path := filepath.Join(l.dir, ref)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return ref, nil
}

func (l *Local) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	path, ok := l.path(ref)
	if !ok {
		return nil, reports.ErrFileNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, reports.ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

func (l *Local) Delete(ctx context.Context, ref string) error {
	path, ok := l.path(ref)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// path sólo acepta refs generados por Save (un nombre, sin directorios).
func (l *Local) path(ref string) (string, bool) {
	name := filepath.Base(ref)
	if name == "." || name == string(filepath.Separator) || name != ref {
		return "", false
	}
	return filepath.Join(l.dir, name), true
}
