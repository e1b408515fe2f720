package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

// listSessions renders the role-specific sessions screen: upcoming sessions
// with join hints, the viewer's completed list and the summary figures.
func (a *App) listSessions(ctx context.Context, viewer models.Role) error {
	if _, err := a.sessions.Refresh(ctx); err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
		fmt.Fprintln(a.out, "Server unreachable, showing cached sessions.")
	}

	now := time.Now()
	upcoming := a.sessions.Upcoming()
	fmt.Fprintf(a.out, "Upcoming sessions (%d):\n", len(upcoming))
	for _, s := range upcoming {
		line := formatSessionLine(s, viewer)
		if s.Status == models.StatusActive {
			line += "  [in progress]"
		} else if s.CanStart(now) {
			line += "  [ready today]"
		}
		fmt.Fprintln(a.out, " ", line)
	}

	completed := a.sessions.Completed(viewer)
	fmt.Fprintf(a.out, "Completed sessions (%d):\n", len(completed))
	for _, s := range completed {
		line := formatSessionLine(s, viewer)
		if s.Rating > 0 {
			line += fmt.Sprintf("  rated %d/5", s.Rating)
		} else if viewer == models.RoleStudent && s.Status == models.StatusRoomCompleted {
			line += "  [awaiting your rating]"
		}
		fmt.Fprintln(a.out, " ", line)
	}

	stats := a.sessions.Stats(viewer)
	label := "tutors"
	if viewer == models.RoleTutor {
		label = "students"
	}
	fmt.Fprintf(a.out, "Totals: %d sessions, %d completed, %.1f hours, %d %s, avg rating %.1f\n",
		stats.TotalSessions, stats.CompletedSessions, stats.TotalHours, stats.UniqueCounterparts, label, stats.AverageRating)
	return nil
}

func (a *App) startSession(ctx context.Context, args []string) error {
	id, err := needArg(args, "start <session-id>")
	if err != nil {
		return err
	}
	sess, err := a.lifecycle.Start(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session %s is now active. Use 'end %s' when the lesson is over.\n", sess.ID, sess.ID)
	if a.identity().Role == models.RoleStudent && sess.TutorID != "" {
		fmt.Fprintf(a.out, "Message your tutor during the lesson with 'chat %s'.\n", sess.TutorID)
	}
	return nil
}

func (a *App) endSession(ctx context.Context, args []string) error {
	id, err := needArg(args, "end <session-id>")
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "End session "+id+"?", a.out) {
		return nil
	}
	res, err := a.lifecycle.EndRoom(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session %s finished.\n", res.Session.ID)
	if res.CompensationCredited {
		fmt.Fprintf(a.out, "Your earnings for this lesson (%s) have been credited.\n", formatMoney(res.Session.Price))
	} else {
		fmt.Fprintln(a.out, "You can rate this session with 'rate", res.Session.ID+"'.")
	}
	return nil
}

func (a *App) cancelSession(ctx context.Context, args []string) error {
	id, err := needArg(args, "cancel <session-id>")
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Cancel session "+id+"?", a.out) {
		return nil
	}
	sess, err := a.lifecycle.Cancel(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session %s is cancelled.\n", sess.ID)
	return nil
}

// removeSession hard-deletes a scheduled session. Unlike cancel, the record
// disappears from the history entirely.
func (a *App) removeSession(ctx context.Context, args []string) error {
	id, err := needArg(args, "remove <session-id>")
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Remove session "+id+" permanently?", a.out) {
		return nil
	}
	if err := a.lifecycle.DeleteScheduled(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session %s removed.\n", id)
	return nil
}

func (a *App) rateSession(ctx context.Context, args []string) error {
	id, err := needArg(args, "rate <session-id>")
	if err != nil {
		return err
	}
	ratingText, err := getSimpleText(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		return err
	}
	rating := 0
	if _, err := fmt.Sscanf(ratingText, "%d", &rating); err != nil {
		return fmt.Errorf("rating must be a number between 1 and 5")
	}
	feedback, err := getSimpleText(a.reader, "Feedback (optional)", a.out)
	if err != nil {
		return err
	}

	sess, err := a.lifecycle.Rate(ctx, id, rating, feedback)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Thanks! Session %s rated %d/5.\n", sess.ID, sess.Rating)
	return nil
}
