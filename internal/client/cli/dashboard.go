package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

// showDashboard renders the overview screen: platform stats, the session in
// progress if any, and featured tutors. Each block may be missing when its
// read degraded; the rest still renders.
func (a *App) showDashboard(ctx context.Context) error {
	id := a.identity()
	fmt.Fprintf(a.out, "Dashboard for %s (%s)\n", id.User.Name, id.Role)

	out := a.dashboard.Overview(ctx)

	if out.Stats != (models.DashboardStats{}) {
		fmt.Fprintf(a.out, "Platform: %d sessions, %d active tutors, %d subjects, %.1f avg rating\n",
			out.Stats.TotalSessions, out.Stats.ActiveTutors, out.Stats.SubjectsCovered, out.Stats.AverageRating)
	}

	if out.Active != nil {
		fmt.Fprintf(a.out, "Session in progress: %s\n", formatSessionLine(*out.Active, id.Role))
	} else if next := a.nextJoinable(); next != nil {
		fmt.Fprintf(a.out, "Ready today: %s\n", formatSessionLine(*next, id.Role))
	}

	if len(out.Featured) > 0 {
		fmt.Fprintln(a.out, "Featured tutors:")
		for _, t := range out.Featured {
			fmt.Fprintf(a.out, "  %d  %s  %s  %s  rating %s\n",
				t.TutorID, t.Name, t.PrimarySubject(), formatRate(t.HourlyRate), formatRating(t.Rating))
		}
	}

	if id.Role == models.RoleTutor {
		stats := a.tutors.Stats(ctx)
		fmt.Fprintf(a.out, "Your totals: %d sessions, %d students, %.1f hours, earnings %s\n",
			stats.TotalSessions, stats.TotalStudents, stats.TotalHours, "$"+stats.TotalEarnings.StringFixed(2))
	}
	return nil
}

// nextJoinable picks the first cached session that could be joined right now.
func (a *App) nextJoinable() *models.Session {
	now := time.Now()
	for _, s := range a.sessions.Upcoming() {
		if s.CanStart(now) {
			return &s
		}
	}
	return nil
}
