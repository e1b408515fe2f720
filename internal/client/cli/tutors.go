package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

func (a *App) listTutors(ctx context.Context) error {
	tutors, err := a.tutors.List(ctx)
	if err != nil {
		return err
	}
	if len(tutors) == 0 {
		fmt.Fprintln(a.out, "No tutors found.")
		return nil
	}
	for _, t := range tutors {
		fmt.Fprintf(a.out, "%d  %s  %s  %s  rating %s (%d reviews)\n",
			t.TutorID, t.Name, strings.Join(t.Subjects, ", "), formatRate(t.HourlyRate), formatRating(t.Rating), t.Reviews)
	}
	return nil
}

func (a *App) showTutor(ctx context.Context, args []string) error {
	id, err := needInt64Arg(args, "tutor <id>")
	if err != nil {
		return err
	}
	t, err := a.tutors.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", t.Name, t.Institution)
	fmt.Fprintf(a.out, "Subjects: %s\n", strings.Join(t.Subjects, ", "))
	fmt.Fprintf(a.out, "Rate: %s  Rating: %s (%d reviews)  Experience: %d years\n",
		formatRate(t.HourlyRate), formatRating(t.Rating), t.Reviews, t.Experience)
	if t.Availability != "" {
		fmt.Fprintf(a.out, "Availability: %s\n", t.Availability)
	}
	return nil
}

// editProfile walks a tutor through updating their directory entry. Empty
// answers keep the current value; the record is replaced wholesale so
// untouched fields survive unchanged.
func (a *App) editProfile(ctx context.Context) error {
	id := a.identity()
	if id.Role != models.RoleTutor {
		return fmt.Errorf("only tutors have a directory profile")
	}

	current, err := a.tutors.Get(ctx, id.User.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Editing profile (empty answer keeps the current value)\n")

	rate, err := getSimpleText(a.reader, fmt.Sprintf("Hourly rate [%s]", current.HourlyRate.StringFixed(2)), a.out)
	if err != nil {
		return err
	}
	institution, err := getSimpleText(a.reader, fmt.Sprintf("Institution [%s]", current.Institution), a.out)
	if err != nil {
		return err
	}
	subjects, err := getSimpleText(a.reader, fmt.Sprintf("Subjects [%s]", strings.Join(current.Subjects, ", ")), a.out)
	if err != nil {
		return err
	}

	updated, err := a.tutors.UpdateProfile(ctx, id.User.ID, func(p *models.TutorProfile) {
		if rate != "" {
			if d, derr := decimal.NewFromString(rate); derr == nil {
				p.HourlyRate = d
			}
		}
		if institution != "" {
			p.Institution = institution
		}
		if subjects != "" {
			p.Subjects = splitList(subjects)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Profile updated: %s, %s\n", formatRate(updated.HourlyRate), strings.Join(updated.Subjects, ", "))
	return nil
}

// listStudents shows a tutor the students they have sessions with.
func (a *App) listStudents(ctx context.Context) error {
	if _, err := a.sessions.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "showing cached sessions", "error", err)
	}

	seen := make(map[string]string)
	for _, s := range a.sessions.Cached() {
		if s.StudentID != "" && seen[s.StudentID] == "" {
			name := s.StudentName
			if name == "" {
				name = "student " + s.StudentID
			}
			seen[s.StudentID] = name
		}
	}
	if len(seen) == 0 {
		fmt.Fprintln(a.out, "No students yet.")
		return nil
	}
	for id, name := range seen {
		fmt.Fprintf(a.out, "%s  %s\n", id, name)
	}
	return nil
}
