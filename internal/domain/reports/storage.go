package reports

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("report file not found")

// FileStorage guarda los binarios subidos. Save genera una clave única
// (no usa el nombre del cliente como path) y la devuelve como ref.
type FileStorage interface {
	Save(ctx context.Context, originalName, contentType string, body io.Reader) (ref string, err error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	// Delete es idempotente: un ref inexistente no es error.
	Delete(ctx context.Context, ref string) error
}
