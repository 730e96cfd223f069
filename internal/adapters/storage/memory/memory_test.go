package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-records-portal/internal/domain/accessgrants"
	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/domain/users"
)

func TestUserRepo_UniqueUsernameAndEmail(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	u, err := repo.Create(ctx, users.User{Username: "alice", Email: "alice@example.com", Role: users.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = repo.Create(ctx, users.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, users.ErrDuplicate)
	_, err = repo.Create(ctx, users.User{Username: "alice2", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, users.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestReportRepo_ListOrder(t *testing.T) {
	repo := NewReportRepo()
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _ = repo.Create(ctx, reports.Report{PatientID: 1, DiseaseName: "late", UploadedAt: t0.Add(time.Hour)})
	_, _ = repo.Create(ctx, reports.Report{PatientID: 1, DiseaseName: "early", UploadedAt: t0})
	_, _ = repo.Create(ctx, reports.Report{PatientID: 2, DiseaseName: "other", UploadedAt: t0})

	got, err := repo.ListByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].DiseaseName)
	assert.Equal(t, "late", got[1].DiseaseName)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, reports.ErrNotFound)
}

func TestGrantRepo_ConcurrentCreateKeepsOneRow(t *testing.T) {
	repo := NewAccessGrantsRepo()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, accessgrants.Grant{PatientID: 1, DoctorID: 2, GrantedAt: time.Now()})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			if !errors.Is(err, accessgrants.ErrDuplicate) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	list, err := repo.ListByDoctor(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGrantRepo_DeleteAndOrder(t *testing.T) {
	repo := NewAccessGrantsRepo()
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _ = repo.Create(ctx, accessgrants.Grant{PatientID: 3, DoctorID: 9, GrantedAt: t0.Add(time.Minute)})
	_, _ = repo.Create(ctx, accessgrants.Grant{PatientID: 1, DoctorID: 9, GrantedAt: t0})

	list, _ := repo.ListByDoctor(ctx, 9)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].PatientID)

	require.NoError(t, repo.Delete(ctx, 1, 9))
	assert.ErrorIs(t, repo.Delete(ctx, 1, 9), accessgrants.ErrNotFound)
	_, err := repo.Get(ctx, 1, 9)
	assert.ErrorIs(t, err, accessgrants.ErrNotFound)
}
