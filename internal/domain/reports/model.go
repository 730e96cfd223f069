package reports

import (
	"sort"
	"time"
)

// Report es un reporte médico subido por un paciente.
// FileRef es la clave opaca del FileStorage; FileName el nombre original.
type Report struct {
	ID          int64
	PatientID   int64
	DiseaseName string
	Description string
	FileRef     string
	FileName    string
	FileType    string
	UploadedAt  time.Time
}

// Label es el texto con el que se muestra/agrupa el reporte.
func (r Report) Label() string {
	if r.DiseaseName != "" {
		return r.DiseaseName
	}
	return r.Description
}

// NewestFirst devuelve una copia ordenada por fecha de subida desc (ID desc en empate).
func NewestFirst(items []Report) []Report {
	out := make([]Report, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
