package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// TutorService covers the tutor directory: discovery reads for students and
// the full-replace profile edit for tutors.
type TutorService interface {
	List(ctx context.Context) ([]models.TutorProfile, error)
	Get(ctx context.Context, id int64) (*models.TutorProfile, error)

	// UpdateProfile loads the tutor's complete profile, applies mutate to a
	// copy and sends the whole record back. The profile endpoint replaces the
	// record wholesale, so edits never construct a profile from scratch.
	UpdateProfile(ctx context.Context, id int64, mutate func(*models.TutorProfile)) (*models.TutorProfile, error)

	// Featured returns the dashboard's tutor highlights. The read is optional
	// and degrades to an empty list.
	Featured(ctx context.Context) []models.TutorProfile

	// Stats returns the tutor's aggregate figures, degrading to zeros when
	// the backend has none or denies the read.
	Stats(ctx context.Context) models.TutorStats
}

type tutorService struct {
	client client.Client
	log    logging.Logger
}

func NewTutorService(c client.Client, log logging.Logger) TutorService {
	return &tutorService{client: c, log: log}
}

// List returns the tutor directory, treating 403/404 as an empty directory.
func (s *tutorService) List(ctx context.Context) ([]models.TutorProfile, error) {
	list, err := s.client.ListTutors(ctx)
	if err != nil {
		if client.IsOptionalMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (s *tutorService) Get(ctx context.Context, id int64) (*models.TutorProfile, error) {
	return s.client.GetTutor(ctx, id)
}

func (s *tutorService) UpdateProfile(ctx context.Context, id int64, mutate func(*models.TutorProfile)) (*models.TutorProfile, error) {
	current, err := s.client.GetTutor(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Subjects = append([]string(nil), current.Subjects...)
	mutate(&next)
	next.TutorID = current.TutorID
	next.NormalizeSubjects()

	if next.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("hourly rate cannot be negative")
	}
	if next.Name == "" {
		return nil, fmt.Errorf("profile name cannot be empty")
	}

	updated, err := s.client.ReplaceTutor(ctx, next)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "tutor profile updated", "id", updated.TutorID)
	return updated, nil
}

func (s *tutorService) Featured(ctx context.Context) []models.TutorProfile {
	list, err := s.client.FeaturedTutors(ctx)
	if err != nil {
		if !client.IsOptionalMiss(err) {
			s.log.Warn(ctx, "featured tutors unavailable", "error", err)
		}
		return nil
	}
	return list
}

func (s *tutorService) Stats(ctx context.Context) models.TutorStats {
	stats, err := s.client.TutorStats(ctx)
	if err != nil {
		if !client.IsOptionalMiss(err) {
			s.log.Warn(ctx, "tutor stats unavailable", "error", err)
		}
		return models.TutorStats{}
	}
	return *stats
}
