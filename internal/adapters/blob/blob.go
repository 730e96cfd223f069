// Package blob implementa reports.FileStorage sobre memoria, disco local y S3.
package blob

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// newKey genera una clave opaca; del nombre original sólo se conserva la extensión.
func newKey(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(originalName)))
}
