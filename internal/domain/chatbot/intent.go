package chatbot

import (
	"regexp"
	"strconv"
	"strings"

	"health-records-portal/internal/domain/users"
)

type Kind string

const (
	KindSearch     Kind = "search"
	KindCount      Kind = "count"
	KindHelp       Kind = "help"
	KindMyReports  Kind = "my_reports"
	KindAccessList Kind = "access_list"
	KindGeneral    Kind = "general"
)

type Intent struct {
	Kind            Kind
	PatientID       int64
	HasPatientID    bool
	DiseaseKeywords []string
}

func (i Intent) HasEntities() bool {
	return i.HasPatientID || len(i.DiseaseKeywords) > 0
}

var patientIDPattern = regexp.MustCompile(`\b(?:patient\s+)?(?:id\s+)?(\d+)\b`)

// Vocabulario cerrado; el orden define el orden de DiseaseKeywords.
var diseaseVocabulary = []string{
	"cancer", "diabetes", "hypertension", "heart", "lung", "kidney",
	"liver", "brain", "blood", "infection", "fever", "flu", "covid",
	"pneumonia", "asthma", "arthritis", "depression", "anxiety",
}

// Classify es puro: misma query y rol => mismo Intent.
// Matching por substring a propósito ("total" matchea dentro de otras palabras).
func Classify(query string, role users.Role) Intent {
	q := strings.ToLower(strings.TrimSpace(query))

	var in Intent
	if m := patientIDPattern.FindStringSubmatch(q); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			in.PatientID = id
			in.HasPatientID = true
		}
	}

	for _, d := range diseaseVocabulary {
		if strings.Contains(q, d) {
			in.DiseaseKeywords = append(in.DiseaseKeywords, d)
		}
	}

	switch {
	case containsAny(q, "show", "find", "list"):
		in.Kind = KindSearch
	case containsAny(q, "count", "how many", "total"):
		in.Kind = KindCount
	case containsAny(q, "help", "commands"):
		in.Kind = KindHelp
	case role == users.RolePatient && containsAny(q, "my reports", "my records"):
		in.Kind = KindMyReports
	case role == users.RolePatient && containsAny(q, "which doctors", "who has access"):
		in.Kind = KindAccessList
	default:
		in.Kind = KindGeneral
	}
	return in
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
