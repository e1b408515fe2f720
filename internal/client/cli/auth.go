package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the backend. On
// success the resolved identity drives the prompt and the role-aware menus.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ctx, ModeOffline)
			return fmt.Errorf("server unavailable, try again later")
		}
		return err
	}

	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Welcome, %s! You are logged in as a %s.\n", id.User.Name, id.Role)
	return nil
}

// Register creates a new account. The account type comes either from the
// command argument ("register student" / "register tutor") or from a prompt.
func (a *App) Register(ctx context.Context, args []string) error {
	role := ""
	if len(args) > 0 {
		role = strings.ToLower(args[0])
	} else {
		answer, err := getSimpleText(a.reader, "Register as (student/tutor)", a.out)
		if err != nil {
			return err
		}
		role = strings.ToLower(answer)
	}

	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	switch models.Role(role) {
	case models.RoleStudent:
		err = a.auth.RegisterStudent(ctx, models.StudentRegistration{
			Name:            name,
			Email:           email,
			Password:        string(password),
			ConfirmPassword: string(confirm),
		})
	case models.RoleTutor:
		institution, ierr := getSimpleText(a.reader, "Enter institution", a.out)
		if ierr != nil {
			return ierr
		}
		subjects, serr := getSimpleText(a.reader, "Enter subjects (comma separated)", a.out)
		if serr != nil {
			return serr
		}
		err = a.auth.RegisterTutor(ctx, models.TutorRegistration{
			Name:            name,
			Email:           email,
			Password:        string(password),
			ConfirmPassword: string(confirm),
			Institution:     institution,
			Subjects:        splitList(subjects),
		})
	default:
		return fmt.Errorf("unknown account type %q, expected student or tutor", role)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful! You can now log in.")
	return nil
}

// Logout ends the server session and drops all local identity state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed, local state cleared anyway", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
