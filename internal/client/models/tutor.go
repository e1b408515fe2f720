package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Availability is the coarse schedule indicator shown in the tutor directory.
type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityLimited     Availability = "Limited"
	AvailabilityUnavailable Availability = "Unavailable"
)

// TutorProfile is a tutor directory record. Created and edited by the tutor
// (full-replace PUT), read by students for discovery.
//
// Rating is nil until the tutor has at least one review.
type TutorProfile struct {
	TutorID      int64           `json:"tutorId"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Institution  string          `json:"institution"`
	HourlyRate   decimal.Decimal `json:"hourlyRate"`
	Rating       *float64        `json:"rating,omitempty"`
	Reviews      int             `json:"reviews"`
	Subjects     []string        `json:"subjects"`
	Location     string          `json:"location,omitempty"`
	Schedule     string          `json:"schedule,omitempty"`
	Availability Availability    `json:"availability,omitempty"`
	Experience   int             `json:"experience"`
}

// PrimarySubject returns the first subject label, or a generic fallback.
// Used as the counterpart role label when opening a conversation.
func (t TutorProfile) PrimarySubject() string {
	if len(t.Subjects) > 0 {
		return t.Subjects[0]
	}
	return "Tutor"
}

// NormalizeSubjects deduplicates the subject set in place. Subject labels are
// unique and order-insignificant; a stable sort keeps rendering deterministic.
func (t *TutorProfile) NormalizeSubjects() {
	seen := make(map[string]struct{}, len(t.Subjects))
	out := t.Subjects[:0]
	for _, s := range t.Subjects {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	t.Subjects = out
}

// TutorStats is the aggregate read behind GET /api/tutors/stats. All fields
// are optional on the wire; a missing or forbidden response degrades to the
// zero value.
type TutorStats struct {
	TotalSessions int             `json:"totalSessions"`
	TotalStudents int             `json:"totalStudents"`
	TotalHours    float64         `json:"totalHours"`
	AverageRating float64         `json:"averageRating"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
}

// DashboardStats is the aggregate read behind GET /api/dashboard/stats.
type DashboardStats struct {
	TotalSessions   int     `json:"totalSessions"`
	ActiveTutors    int     `json:"activeTutors"`
	SubjectsCovered int     `json:"subjectsCovered"`
	AverageRating   float64 `json:"averageRating"`
}
