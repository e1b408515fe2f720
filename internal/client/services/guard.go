package services

import "github.com/dmitrijs2005/tutorit/internal/client/models"

// View names a client screen that can be guarded by the identity gate.
type View string

const (
	ViewLogin           View = "login"
	ViewRegister        View = "register"
	ViewDashboard       View = "dashboard"
	ViewFindTutors      View = "find-tutors"
	ViewSessions        View = "sessions"
	ViewStudentSessions View = "student-sessions"
	ViewTutorSessions   View = "tutor-sessions"
	ViewStudents        View = "students"
	ViewMessages        View = "messages"
	ViewSessionRoom     View = "session-room"
	ViewSettings        View = "settings"
)

// Redirect is the guard's verdict for a view request.
type Redirect int

const (
	// RedirectNone allows the view as requested.
	RedirectNone Redirect = iota
	// RedirectLogin sends an unauthenticated actor to the login screen.
	RedirectLogin
	// RedirectDashboard softly bounces a wrong-role request home.
	RedirectDashboard
	// RedirectStudentSessions resolves a sessions route for a student.
	RedirectStudentSessions
	// RedirectTutorSessions resolves a sessions route for a tutor.
	RedirectTutorSessions
)

// GuardView decides whether the given identity may open the given view.
// Unauthenticated actors are always sent to login (except for login and
// registration themselves). The generic sessions view resolves to the
// role-specific one, role-specific session views cross-redirect, and
// tutor-only views bounce other roles to the dashboard.
func GuardView(id Identity, view View) Redirect {
	if view == ViewLogin || view == ViewRegister {
		return RedirectNone
	}
	if !id.Authenticated {
		return RedirectLogin
	}

	sessionsFor := RedirectStudentSessions
	if id.Role == models.RoleTutor {
		sessionsFor = RedirectTutorSessions
	}

	switch view {
	case ViewSessions:
		return sessionsFor
	case ViewStudentSessions:
		if id.Role != models.RoleStudent {
			return sessionsFor
		}
	case ViewTutorSessions:
		if id.Role != models.RoleTutor {
			return sessionsFor
		}
	case ViewStudents:
		if id.Role != models.RoleTutor {
			return RedirectDashboard
		}
	}
	return RedirectNone
}
