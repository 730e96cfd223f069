package accessgrants

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"health-records-portal/internal/domain/users"
	"health-records-portal/internal/ports/audit"
)

// -------------------------
// Test doubles
// -------------------------

type key struct{ patient, doctor int64 }

type testRepo struct {
	nextID int64
	grants map[key]Grant

	// raceOnce simula que otro request insertó el grant entre Get y Create.
	raceOnce bool
}

func newTestRepo() *testRepo {
	return &testRepo{grants: map[key]Grant{}}
}

func (r *testRepo) Create(_ context.Context, g Grant) (Grant, error) {
	k := key{g.PatientID, g.DoctorID}
	if r.raceOnce {
		r.raceOnce = false
		r.nextID++
		winner := g
		winner.ID = r.nextID
		r.grants[k] = winner
		return Grant{}, ErrDuplicate
	}
	if _, ok := r.grants[k]; ok {
		return Grant{}, ErrDuplicate
	}
	r.nextID++
	g.ID = r.nextID
	r.grants[k] = g
	return g, nil
}

func (r *testRepo) Get(_ context.Context, patientID, doctorID int64) (Grant, error) {
	g, ok := r.grants[key{patientID, doctorID}]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *testRepo) Delete(_ context.Context, patientID, doctorID int64) error {
	k := key{patientID, doctorID}
	if _, ok := r.grants[k]; !ok {
		return ErrNotFound
	}
	delete(r.grants, k)
	return nil
}

func (r *testRepo) list(match func(Grant) bool) []Grant {
	out := make([]Grant, 0)
	for _, g := range r.grants {
		if match(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *testRepo) ListByPatient(_ context.Context, patientID int64) ([]Grant, error) {
	return r.list(func(g Grant) bool { return g.PatientID == patientID }), nil
}

func (r *testRepo) ListByDoctor(_ context.Context, doctorID int64) ([]Grant, error) {
	return r.list(func(g Grant) bool { return g.DoctorID == doctorID }), nil
}

type testDirectory map[int64]users.User

func (d testDirectory) GetByID(_ context.Context, id int64) (users.User, error) {
	u, ok := d[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (d testDirectory) GetByEmail(_ context.Context, email string) (users.User, error) {
	for _, u := range d {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

type recordingPublisher struct {
	events []audit.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e audit.Event) error {
	p.events = append(p.events, e)
	return p.err
}

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo, *recordingPublisher) {
	repo := newTestRepo()
	dir := testDirectory{
		1: {ID: 1, Email: "pat@example.com", Role: users.RolePatient},
		2: {ID: 2, Email: "doc@example.com", Role: users.RoleDoctor},
		3: {ID: 3, Email: "other-patient@example.com", Role: users.RolePatient},
	}
	pub := &recordingPublisher{}
	svc := NewService(repo, dir, pub)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, pub
}

// -------------------------
// Tests
// -------------------------

func TestService_GrantByEmail_CreatesThenIsIdempotent(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	g, created, err := svc.GrantByEmail(ctx, 1, "doc@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || g.ID == 0 || g.DoctorID != 2 || !g.GrantedAt.Equal(fixedNow) {
		t.Fatalf("unexpected grant: %+v created=%v", g, created)
	}

	again, created, err := svc.GrantByEmail(ctx, 1, "doc@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || again.ID != g.ID {
		t.Fatalf("expected same grant without creating, got %+v created=%v", again, created)
	}

	if len(pub.events) != 1 || pub.events[0].Type != audit.EventAccessGranted {
		t.Fatalf("expected exactly one granted event, got %+v", pub.events)
	}
}

func TestService_GrantByEmail_RaceReturnsWinner(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.raceOnce = true

	g, created, err := svc.GrantByEmail(context.Background(), 1, "doc@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || g.ID == 0 {
		t.Fatalf("expected existing grant from race, got %+v created=%v", g, created)
	}
	if len(repo.grants) != 1 {
		t.Fatalf("expected single grant row, got %d", len(repo.grants))
	}
}

func TestService_GrantByEmail_Rejects(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name  string
		email string
		want  error
	}{
		{"empty", "  ", ErrInvalidInput},
		{"unknown", "ghost@example.com", ErrDoctorNotFound},
		{"not a doctor", "other-patient@example.com", ErrDoctorNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.GrantByEmail(context.Background(), 1, tc.email)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_Revoke(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	if err := svc.Revoke(ctx, 1, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without grant, got %v", err)
	}

	if _, _, err := svc.GrantByEmail(ctx, 1, "doc@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, 1, 2); !ok {
		t.Fatalf("expected access after grant")
	}

	if err := svc.Revoke(ctx, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, 1, 2); ok {
		t.Fatalf("expected no access after revoke")
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != audit.EventAccessRevoked || last.DoctorID != 2 {
		t.Fatalf("expected revoked event, got %+v", last)
	}
}

func TestService_PublishFailureDoesNotFailGrant(t *testing.T) {
	svc, _, pub := newTestService()
	pub.err = errors.New("broker down")

	if _, created, err := svc.GrantByEmail(context.Background(), 1, "doc@example.com"); err != nil || !created {
		t.Fatalf("expected grant despite publish failure, got err=%v created=%v", err, created)
	}
}

func TestService_ListByDoctor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, _ = svc.GrantByEmail(ctx, 1, "doc@example.com")
	_, _, _ = svc.GrantByEmail(ctx, 3, "doc@example.com")

	got, err := svc.ListByDoctor(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].PatientID != 1 || got[1].PatientID != 3 {
		t.Fatalf("unexpected grants: %+v", got)
	}
}
