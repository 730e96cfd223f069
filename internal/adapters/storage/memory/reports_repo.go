package memory

import (
	"context"
	"sort"
	"sync"

	"health-records-portal/internal/domain/reports"
)

type reportRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]reports.Report
}

func NewReportRepo() reports.Repository {
	return &reportRepo{
		byID: make(map[int64]reports.Report),
	}
}

func (r *reportRepo) Create(ctx context.Context, rep reports.Report) (reports.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rep.ID = r.nextID
	r.byID[rep.ID] = rep
	return rep, nil
}

func (r *reportRepo) GetByID(ctx context.Context, id int64) (reports.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.byID[id]
	if !ok {
		return reports.Report{}, reports.ErrNotFound
	}
	return rep, nil
}

func (r *reportRepo) ListByPatient(ctx context.Context, patientID int64) ([]reports.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reports.Report, 0)
	for _, rep := range r.byID {
		if rep.PatientID == patientID {
			out = append(out, rep)
		}
	}

	// Mismo orden que el repo SQL: uploaded_at asc, id asc.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.Before(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
