package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle state of a tutoring session.
//
// "upcoming" is a legacy synonym of "scheduled" still emitted by the backend
// for older rows; both group under the upcoming views.
type SessionStatus string

const (
	StatusScheduled     SessionStatus = "scheduled"
	StatusUpcoming      SessionStatus = "upcoming"
	StatusActive        SessionStatus = "active"
	StatusCompleted     SessionStatus = "completed"
	StatusRoomCompleted SessionStatus = "room_completed"
	StatusCancelled     SessionStatus = "cancelled"
)

// Session is a tutoring engagement between one student and one tutor.
//
// The backend update endpoint replaces the whole record, so a Session sent to
// ReplaceSession must always be complete; see MissingReplaceFields.
type Session struct {
	ID          string           `json:"sessionId"`
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName,omitempty"`
	TutorID     string           `json:"tutorId"`
	TutorName   string           `json:"tutorName,omitempty"`
	Subject     string           `json:"subject"`
	Topic       string           `json:"topic,omitempty"`
	DateTime    time.Time        `json:"dateTime"`
	Duration    int              `json:"duration"` // minutes
	SessionType string           `json:"sessionType,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Status      SessionStatus    `json:"status"`
	Rating      int              `json:"rating,omitempty"` // 1..5, 0 = unrated
	Feedback    string           `json:"feedback,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// IsUpcoming reports whether the session belongs to the upcoming views.
func (s Session) IsUpcoming() bool {
	switch s.Status {
	case StatusScheduled, StatusUpcoming, StatusActive:
		return true
	}
	return false
}

// IsCompletedFor reports whether the session counts as completed in the given
// viewer's list. Tutors see room-exit states as completed even before the
// student has rated; students only see fully completed sessions.
func (s Session) IsCompletedFor(viewer Role) bool {
	if s.Status == StatusCompleted {
		return true
	}
	return viewer == RoleTutor && s.Status == StatusRoomCompleted
}

// IsTerminal reports whether the session can never re-enter scheduling.
func (s Session) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}

// CanStart reports whether the session is actionable ("join/start now") at
// the given time: either it is already active, or it is scheduled for the
// current calendar day. Same-day sessions are joinable even before their
// exact time.
func (s Session) CanStart(now time.Time) bool {
	if s.Status == StatusActive {
		return true
	}
	if s.Status != StatusScheduled && s.Status != StatusUpcoming {
		return false
	}
	return sameCalendarDay(s.DateTime, now)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// Hours returns the session length in hours, treating a missing duration as
// zero rather than an error.
func (s Session) Hours() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Duration) / 60
}

// MissingReplaceFields returns the names of required fields that are absent.
// A non-empty result means the record must not be sent to the full-replace
// update endpoint: the backend would silently erase the missing fields.
func (s Session) MissingReplaceFields() []string {
	var missing []string
	if s.ID == "" {
		missing = append(missing, "sessionId")
	}
	if s.StudentID == "" {
		missing = append(missing, "studentId")
	}
	if s.TutorID == "" {
		missing = append(missing, "tutorId")
	}
	if s.Subject == "" {
		missing = append(missing, "subject")
	}
	if s.DateTime.IsZero() {
		missing = append(missing, "dateTime")
	}
	if s.Duration <= 0 {
		missing = append(missing, "duration")
	}
	if s.Status == "" {
		missing = append(missing, "status")
	}
	return missing
}

// Counterpart returns the identifier of the other participant from the
// viewer's perspective.
func (s Session) Counterpart(viewer Role) string {
	if viewer == RoleTutor {
		return s.StudentID
	}
	return s.TutorID
}
