package chatbot

import (
	"context"
	"errors"
	"sort"

	"health-records-portal/internal/domain/accessgrants"
	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/domain/users"
)

type fakeStore struct {
	users   map[int64]users.User
	reports []reports.Report
	grants  []accessgrants.Grant

	reportsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]users.User{}}
}

func (s *fakeStore) addUser(u users.User) users.User {
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) grant(patientID, doctorID int64, daysAfter int) {
	s.grants = append(s.grants, accessgrants.Grant{
		ID:        int64(len(s.grants) + 1),
		PatientID: patientID,
		DoctorID:  doctorID,
		GrantedAt: day0.AddDate(0, 0, daysAfter),
	})
	sort.SliceStable(s.grants, func(i, j int) bool { return s.grants[i].GrantedAt.Before(s.grants[j].GrantedAt) })
}

func (s *fakeStore) revoke(patientID, doctorID int64) {
	out := s.grants[:0]
	for _, g := range s.grants {
		if g.PatientID == patientID && g.DoctorID == doctorID {
			continue
		}
		out = append(out, g)
	}
	s.grants = out
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) ListByPatient(_ context.Context, patientID int64) ([]reports.Report, error) {
	if s.reportsErr != nil {
		return nil, s.reportsErr
	}
	var out []reports.Report
	for _, r := range s.reports {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeGrants struct{ s *fakeStore }

func (g fakeGrants) ListByPatient(_ context.Context, patientID int64) ([]accessgrants.Grant, error) {
	var out []accessgrants.Grant
	for _, gr := range g.s.grants {
		if gr.PatientID == patientID {
			out = append(out, gr)
		}
	}
	return out, nil
}

func (g fakeGrants) ListByDoctor(_ context.Context, doctorID int64) ([]accessgrants.Grant, error) {
	var out []accessgrants.Grant
	for _, gr := range g.s.grants {
		if gr.DoctorID == doctorID {
			out = append(out, gr)
		}
	}
	return out, nil
}

var errBoom = errors.New("boom")

func (s *fakeStore) resolver() *Resolver {
	return NewResolver(s, fakeGrants{s}, s)
}
