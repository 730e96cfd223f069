package chatbot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/domain/users"
)

var day0 = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func patient(id int64, name string) users.User {
	return users.User{ID: id, Username: fmt.Sprintf("p%d", id), FullName: name, Role: users.RolePatient}
}

func rep(id int64, patientID int64, disease string, daysAfter int) reports.Report {
	return reports.Report{ID: id, PatientID: patientID, DiseaseName: disease, UploadedAt: day0.AddDate(0, 0, daysAfter)}
}

type fakeFallback struct {
	calls []string
	role  users.Role
}

func (f *fakeFallback) Complete(_ context.Context, query string, role users.Role) string {
	f.calls = append(f.calls, query)
	f.role = role
	return "llm says hi"
}

func respond(t *testing.T, query string, data Dataset, role users.Role) string {
	t.Helper()
	return NewResponder(nil).Respond(context.Background(), Classify(query, role), data, role, query)
}

func TestRespond_SearchByDisease_OnlyRelevantReports(t *testing.T) {
	data := Dataset{
		{Subject: patient(1, "Pat One"), Reports: []reports.Report{rep(1, 1, "Flu", 0)}},
		{Subject: patient(2, "Pat Two"), Reports: []reports.Report{rep(2, 2, "Cancer", 0), rep(3, 2, "Flu", 1)}},
	}

	got := respond(t, "Show patients with cancer", data, users.RoleDoctor)

	assert.True(t, strings.HasPrefix(got, "Found 1 patients with cancer:"), got)
	assert.Contains(t, got, "• Patient ID 2: Pat Two")
	assert.NotContains(t, got, "Patient ID 1")
	assert.Contains(t, got, "Relevant reports: 1")
	assert.Contains(t, got, "Diseases: Cancer")
	assert.NotContains(t, got, "Flu")
}

func TestRespond_SearchByDisease_TruncatesPositionally(t *testing.T) {
	var data Dataset
	for i := int64(1); i <= 7; i++ {
		data = append(data, Entry{Subject: patient(i, fmt.Sprintf("P%d", i)), Reports: []reports.Report{rep(i, i, "Lung cancer", 0)}})
	}

	got := respond(t, "find cancer", data, users.RoleDoctor)

	assert.Equal(t, 5, strings.Count(got, "• Patient ID"))
	assert.Contains(t, got, "• Patient ID 5: P5")
	assert.NotContains(t, got, "Patient ID 6")
	assert.True(t, strings.HasSuffix(got, "...and 2 more patients."), got)
}

func TestRespond_SearchByDisease_NoMatch(t *testing.T) {
	data := Dataset{{Subject: patient(1, "Pat"), Reports: []reports.Report{rep(1, 1, "Flu", 0)}}}
	assert.Equal(t, "No patients found with asthma, anxiety", respond(t, "show asthma anxiety", data, users.RoleDoctor))
}

func TestRespond_SearchByID(t *testing.T) {
	data := Dataset{
		{Subject: patient(102, "Jane Roe"), Reports: []reports.Report{rep(1, 102, "Flu", 0), rep(2, 102, "Asthma", 1), rep(3, 102, "Flu", 2)}},
	}

	assert.Equal(t,
		"Found Patient ID 102: Jane Roe\nReports: 3 medical reports\nDiseases: Flu, Asthma",
		respond(t, "Find patient ID 102", data, users.RoleDoctor))
	assert.Equal(t, "No patient found with ID 7", respond(t, "find patient 7", data, users.RoleDoctor))
}

func TestRespond_ListAll(t *testing.T) {
	assert.Equal(t, "No patients have granted you access yet.", respond(t, "show all patients", nil, users.RoleDoctor))

	data := Dataset{
		{Subject: patient(1, "Many Labels"), Reports: []reports.Report{
			rep(1, 1, "A", 0), rep(2, 1, "B", 0), rep(3, 1, "C", 0), rep(4, 1, "D", 0), rep(5, 1, "E", 0), rep(6, 1, "A", 0),
		}},
		{Subject: patient(2, "No Reports")},
	}
	got := respond(t, "list all patients", data, users.RoleDoctor)

	assert.True(t, strings.HasPrefix(got, "You have access to 2 patients:"), got)
	assert.Contains(t, got, "  Reports: 6\n  Diseases: A, B, C and 2 more")
	assert.Contains(t, got, "• Patient ID 2: No Reports\n  Reports: 0")
}

func TestRespond_Count(t *testing.T) {
	data := Dataset{
		{Subject: patient(1, "One"), Reports: []reports.Report{rep(1, 1, "Cancer", 0), rep(2, 1, "Flu", 0)}},
		{Subject: patient(2, "Two"), Reports: []reports.Report{rep(3, 2, "Flu", 0), rep(4, 2, "Flu", 0)}},
	}

	assert.Equal(t, "You have 2 patients with flu", respond(t, "how many with flu", data, users.RoleDoctor))
	assert.Equal(t, "You have 1 patients with cancer", respond(t, "count cancer", data, users.RoleDoctor))

	got := respond(t, "count patients", data, users.RoleDoctor)
	assert.Equal(t, "Total Statistics:\n• Patients: 2\n• Total Reports: 4\n• Top Diseases:\n  - Flu: 3 cases\n  - Cancer: 1 cases", got)
}

func TestTopDiseases_TiesKeepFirstSeen(t *testing.T) {
	data := Dataset{{Subject: patient(1, "x"), Reports: []reports.Report{
		rep(1, 1, "Zeta", 0), rep(2, 1, "Alpha", 0), rep(3, 1, "Mid", 0), rep(4, 1, "Mid", 0),
		rep(5, 1, "B", 0), rep(6, 1, "C", 0), rep(7, 1, "D", 0),
	}}}

	top := topDiseases(data, 5)
	require.Len(t, top, 5)
	var labels []string
	for _, d := range top {
		labels = append(labels, d.label)
	}
	assert.Equal(t, []string{"Mid", "Zeta", "Alpha", "B", "C"}, labels)
}

func TestRespond_Help(t *testing.T) {
	assert.Equal(t, doctorHelp, respond(t, "help", nil, users.RoleDoctor))
	assert.Equal(t, patientHelp, respond(t, "help", nil, users.RolePatient))
}

func TestRespond_MyReports(t *testing.T) {
	me := patient(1, "Me")
	assert.Equal(t, "You haven't uploaded any reports yet.", respond(t, "my reports", Dataset{{Subject: me}}, users.RolePatient))

	var reps []reports.Report
	for i := int64(1); i <= 7; i++ {
		reps = append(reps, rep(i, 1, fmt.Sprintf("R%d", i), int(i)))
	}
	got := respond(t, "my reports", Dataset{{Subject: me, Reports: reps}}, users.RolePatient)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Your recent reports:", lines[0])
	assert.Equal(t, "• R7 — Jan 17, 2025", lines[1])
	assert.Equal(t, "• R3 — Jan 13, 2025", lines[5])
	assert.Equal(t, "...and 2 more reports.", lines[6])
}

func TestRespond_AccessList(t *testing.T) {
	me := patient(1, "Me")
	assert.Equal(t, "No doctors currently have access to your records.", respond(t, "who has access", Dataset{{Subject: me}}, users.RolePatient))

	data := Dataset{{Subject: me, Doctors: []GrantedDoctor{
		{Doctor: users.User{ID: 9, FullName: "Gregory House", Email: "house@example.com", Role: users.RoleDoctor}},
		{Doctor: users.User{ID: 10, Username: "wilson", Email: "wilson@example.com", Role: users.RoleDoctor}},
	}}}
	assert.Equal(t,
		"Doctors with access to your records:\n• Gregory House (house@example.com)\n• wilson (wilson@example.com)",
		respond(t, "which doctors", data, users.RolePatient))
}

func TestRespond_General(t *testing.T) {
	data := Dataset{{Subject: patient(4, "Four"), Reports: []reports.Report{rep(1, 4, "Asthma", 0)}}}

	t.Run("entities override to search", func(t *testing.T) {
		fb := &fakeFallback{}
		r := NewResponder(fb)
		q := "tell me about patient 4"
		got := r.Respond(context.Background(), Classify(q, users.RoleDoctor), data, users.RoleDoctor, q)
		assert.True(t, strings.HasPrefix(got, "Found Patient ID 4: Four"), got)
		assert.Empty(t, fb.calls)
	})

	t.Run("defers raw query to fallback", func(t *testing.T) {
		fb := &fakeFallback{}
		r := NewResponder(fb)
		q := "What is a normal resting pulse?"
		got := r.Respond(context.Background(), Classify(q, users.RolePatient), data, users.RolePatient, q)
		assert.Equal(t, "llm says hi", got)
		assert.Equal(t, []string{q}, fb.calls)
		assert.Equal(t, users.RolePatient, fb.role)
	})

	t.Run("without fallback returns suggestions", func(t *testing.T) {
		assert.Equal(t, suggestions, respond(t, "hello", data, users.RoleDoctor))
	})
}
