package services

import (
	"context"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// DashboardOverview is everything the dashboard screen renders. Each part
// comes from an independent read.
type DashboardOverview struct {
	Stats    models.DashboardStats
	Active   *models.Session
	Featured []models.TutorProfile
}

// DashboardService assembles the dashboard from its optional aggregate
// reads. A failed read degrades its own part to the zero value and never
// takes the rest of the screen down with it.
type DashboardService interface {
	Overview(ctx context.Context) DashboardOverview
}

type dashboardService struct {
	client client.Client
	tutors TutorService
	log    logging.Logger
}

func NewDashboardService(c client.Client, tutors TutorService, log logging.Logger) DashboardService {
	return &dashboardService{client: c, tutors: tutors, log: log}
}

func (s *dashboardService) Overview(ctx context.Context) DashboardOverview {
	var out DashboardOverview

	if stats, err := s.client.DashboardStats(ctx); err != nil {
		if !client.IsOptionalMiss(err) {
			s.log.Warn(ctx, "dashboard stats unavailable", "error", err)
		}
	} else {
		out.Stats = *stats
	}

	if active, err := s.client.ActiveSession(ctx); err != nil {
		if !client.IsOptionalMiss(err) {
			s.log.Warn(ctx, "active session check unavailable", "error", err)
		}
	} else {
		out.Active = active
	}

	out.Featured = s.tutors.Featured(ctx)
	return out
}
