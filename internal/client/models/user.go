// Package models defines the domain entities the client works with: users,
// tutor profiles, tutoring sessions, conversations and messages. Field names
// and JSON tags follow the backend wire format.
package models

// Role classifies the authenticated actor.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTutor
}

// User is the profile of the current actor as reported by
// GET /api/auth/current-user. It is resolved once per client session and
// treated as immutable until the identity is invalidated.
type User struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       Role     `json:"role"`
	Education  string   `json:"education,omitempty"`
	Experience int      `json:"yearsOfExperience,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
}

// AuthStatus is the response of GET /api/auth/status.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role,omitempty"`
	UserID        int64  `json:"userId,omitempty"`
	Name          string `json:"name,omitempty"`
}

// StudentRegistration is the payload for POST /api/auth/register/student.
// Password confirmation is checked client-side before any network call.
type StudentRegistration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// TutorRegistration is the payload for POST /api/auth/register/tutor.
type TutorRegistration struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"-" validate:"required,eqfield=Password"`
	Institution     string   `json:"institution,omitempty"`
	Subjects        []string `json:"expertiseSubjects,omitempty"`
}
