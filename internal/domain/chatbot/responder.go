package chatbot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/domain/users"
)

const (
	maxSearchResults  = 5
	maxListedDiseases = 3
	maxTopDiseases    = 5
	maxRecentReports  = 5

	reportDateLayout = "Jan 02, 2006"
)

// Fallback responde queries abiertas. Nunca falla: los errores vuelven como texto.
type Fallback interface {
	Complete(ctx context.Context, query string, role users.Role) string
}

type Responder struct {
	fallback Fallback
}

// NewResponder acepta fallback nil: General sin entidades devuelve sugerencias.
func NewResponder(f Fallback) *Responder {
	return &Responder{fallback: f}
}

func (r *Responder) Respond(ctx context.Context, in Intent, data Dataset, role users.Role, query string) string {
	switch in.Kind {
	case KindSearch:
		return search(in, data, role)
	case KindCount:
		if len(in.DiseaseKeywords) > 0 {
			return countByDisease(in.DiseaseKeywords, data)
		}
		return countAll(data)
	case KindHelp:
		return helpMessage(role)
	case KindMyReports:
		return myReports(data)
	case KindAccessList:
		return accessList(data)
	default:
		if in.HasEntities() {
			return search(in, data, role)
		}
		if r.fallback == nil {
			return suggestions
		}
		return r.fallback.Complete(ctx, query, role)
	}
}

func search(in Intent, data Dataset, role users.Role) string {
	switch {
	case in.HasPatientID:
		return searchByID(in.PatientID, data)
	case len(in.DiseaseKeywords) > 0:
		return searchByDisease(in.DiseaseKeywords, data)
	default:
		return listAll(data, role)
	}
}

func searchByID(id int64, data Dataset) string {
	for _, e := range data {
		if e.Subject.ID != id {
			continue
		}
		return fmt.Sprintf("Found Patient ID %d: %s\nReports: %d medical reports\nDiseases: %s",
			e.Subject.ID, e.Subject.DisplayName(), len(e.Reports), joinOrNone(distinctLabels(e.Reports)))
	}
	return fmt.Sprintf("No patient found with ID %d", id)
}

type diseaseMatch struct {
	entry    Entry
	relevant []reports.Report
}

func matchDisease(keywords []string, data Dataset) []diseaseMatch {
	var out []diseaseMatch
	for _, e := range data {
		var relevant []reports.Report
		for _, rep := range e.Reports {
			if labelMatches(rep.DiseaseName, keywords) {
				relevant = append(relevant, rep)
			}
		}
		if len(relevant) > 0 {
			out = append(out, diseaseMatch{entry: e, relevant: relevant})
		}
	}
	return out
}

func labelMatches(label string, keywords []string) bool {
	l := strings.ToLower(label)
	for _, kw := range keywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

func searchByDisease(keywords []string, data Dataset) string {
	kw := strings.Join(keywords, ", ")
	matches := matchDisease(keywords, data)
	if len(matches) == 0 {
		return "No patients found with " + kw
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d patients with %s:\n\n", len(matches), kw)
	for i, m := range matches {
		if i == maxSearchResults {
			break
		}
		fmt.Fprintf(&b, "• Patient ID %d: %s\n", m.entry.Subject.ID, m.entry.Subject.DisplayName())
		fmt.Fprintf(&b, "  Relevant reports: %d\n", len(m.relevant))
		fmt.Fprintf(&b, "  Diseases: %s\n\n", strings.Join(distinctLabels(m.relevant), ", "))
	}
	if extra := len(matches) - maxSearchResults; extra > 0 {
		fmt.Fprintf(&b, "...and %d more patients.", extra)
	}
	return strings.TrimRight(b.String(), "\n")
}

func listAll(data Dataset, role users.Role) string {
	if len(data) == 0 {
		return "No patients have granted you access yet."
	}

	var b strings.Builder
	if role == users.RolePatient {
		b.WriteString("Your health record:\n\n")
	} else {
		fmt.Fprintf(&b, "You have access to %d patients:\n\n", len(data))
	}

	for _, e := range data {
		fmt.Fprintf(&b, "• Patient ID %d: %s\n", e.Subject.ID, e.Subject.DisplayName())
		fmt.Fprintf(&b, "  Reports: %d\n", len(e.Reports))
		if labels := distinctLabels(e.Reports); len(labels) > 0 {
			shown := labels
			if len(shown) > maxListedDiseases {
				shown = shown[:maxListedDiseases]
			}
			fmt.Fprintf(&b, "  Diseases: %s", strings.Join(shown, ", "))
			if extra := len(labels) - maxListedDiseases; extra > 0 {
				fmt.Fprintf(&b, " and %d more", extra)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func countByDisease(keywords []string, data Dataset) string {
	return fmt.Sprintf("You have %d patients with %s", len(matchDisease(keywords, data)), strings.Join(keywords, ", "))
}

type diseaseCount struct {
	label string
	count int
}

// topDiseases ordena por ocurrencias desc; empate => primero en aparecer.
func topDiseases(data Dataset, limit int) []diseaseCount {
	var out []diseaseCount
	index := map[string]int{}
	for _, e := range data {
		for _, rep := range e.Reports {
			if i, ok := index[rep.DiseaseName]; ok {
				out[i].count++
				continue
			}
			index[rep.DiseaseName] = len(out)
			out = append(out, diseaseCount{label: rep.DiseaseName, count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func countAll(data Dataset) string {
	total := 0
	for _, e := range data {
		total += len(e.Reports)
	}

	var b strings.Builder
	b.WriteString("Total Statistics:\n")
	fmt.Fprintf(&b, "• Patients: %d\n", len(data))
	fmt.Fprintf(&b, "• Total Reports: %d\n", total)
	if top := topDiseases(data, maxTopDiseases); len(top) > 0 {
		b.WriteString("• Top Diseases:\n")
		for _, d := range top {
			fmt.Fprintf(&b, "  - %s: %d cases\n", d.label, d.count)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func myReports(data Dataset) string {
	if len(data) == 0 || len(data[0].Reports) == 0 {
		return "You haven't uploaded any reports yet."
	}

	recent := reports.NewestFirst(data[0].Reports)

	var b strings.Builder
	b.WriteString("Your recent reports:\n")
	for i, rep := range recent {
		if i == maxRecentReports {
			break
		}
		fmt.Fprintf(&b, "• %s — %s\n", rep.Label(), rep.UploadedAt.Format(reportDateLayout))
	}
	if extra := len(recent) - maxRecentReports; extra > 0 {
		fmt.Fprintf(&b, "...and %d more reports.", extra)
	}
	return strings.TrimRight(b.String(), "\n")
}

func accessList(data Dataset) string {
	if len(data) == 0 || len(data[0].Doctors) == 0 {
		return "No doctors currently have access to your records."
	}

	var b strings.Builder
	b.WriteString("Doctors with access to your records:\n")
	for _, d := range data[0].Doctors {
		fmt.Fprintf(&b, "• %s (%s)\n", d.Doctor.DisplayName(), d.Doctor.Email)
	}
	return strings.TrimRight(b.String(), "\n")
}

// distinctLabels colapsa duplicados conservando el primer orden de aparición.
func distinctLabels(reps []reports.Report) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, rep := range reps {
		if _, ok := seen[rep.DiseaseName]; ok {
			continue
		}
		seen[rep.DiseaseName] = struct{}{}
		out = append(out, rep.DiseaseName)
	}
	return out
}

func joinOrNone(labels []string) string {
	if len(labels) == 0 {
		return "none"
	}
	return strings.Join(labels, ", ")
}
