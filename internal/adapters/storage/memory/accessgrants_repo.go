package memory

import (
	"context"
	"sort"
	"sync"

	"health-records-portal/internal/domain/accessgrants"
)

type pairKey struct {
	patientID int64
	doctorID  int64
}

// grantRepo indexa por par (paciente, médico): la unicidad sale del propio map.
type grantRepo struct {
	mu     sync.RWMutex
	nextID int64
	byPair map[pairKey]accessgrants.Grant
}

func NewAccessGrantsRepo() accessgrants.Repository {
	return &grantRepo{
		byPair: make(map[pairKey]accessgrants.Grant),
	}
}

func (r *grantRepo) Create(ctx context.Context, g accessgrants.Grant) (accessgrants.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{g.PatientID, g.DoctorID}
	if _, exists := r.byPair[k]; exists {
		return accessgrants.Grant{}, accessgrants.ErrDuplicate
	}
	r.nextID++
	g.ID = r.nextID
	r.byPair[k] = g
	return g, nil
}

func (r *grantRepo) Get(ctx context.Context, patientID, doctorID int64) (accessgrants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byPair[pairKey{patientID, doctorID}]
	if !ok {
		return accessgrants.Grant{}, accessgrants.ErrNotFound
	}
	return g, nil
}

func (r *grantRepo) Delete(ctx context.Context, patientID, doctorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{patientID, doctorID}
	if _, ok := r.byPair[k]; !ok {
		return accessgrants.ErrNotFound
	}
	delete(r.byPair, k)
	return nil
}

func (r *grantRepo) ListByPatient(ctx context.Context, patientID int64) ([]accessgrants.Grant, error) {
	return r.list(func(g accessgrants.Grant) bool { return g.PatientID == patientID }), nil
}

func (r *grantRepo) ListByDoctor(ctx context.Context, doctorID int64) ([]accessgrants.Grant, error) {
	return r.list(func(g accessgrants.Grant) bool { return g.DoctorID == doctorID }), nil
}

func (r *grantRepo) list(match func(accessgrants.Grant) bool) []accessgrants.Grant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessgrants.Grant, 0)
	for _, g := range r.byPair {
		if match(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GrantedAt.Equal(out[j].GrantedAt) {
			return out[i].GrantedAt.Before(out[j].GrantedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
