package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

func sessionFixture(id string, status models.SessionStatus) models.Session {
	return models.Session{
		ID:        id,
		StudentID: "10",
		TutorID:   "20",
		TutorName: "T",
		Subject:   "Math",
		DateTime:  time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local),
		Duration:  60,
		Status:    status,
	}
}

func TestRefreshReplacesSnapshotAndMirror(t *testing.T) {
	list := []models.Session{
		sessionFixture("s1", models.StatusScheduled),
		sessionFixture("s2", models.StatusCompleted),
	}
	c := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return list, nil
		},
	}
	repo := newFakeSessionsRepo()
	svc := NewSessionService(c, repo, testLogger())

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	mirrored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, mirrored, 2)
}

func TestRefreshEmptyStateOnNotFound(t *testing.T) {
	c := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return nil, client.ErrNotFound
		},
	}
	repo := newFakeSessionsRepo()
	require.NoError(t, repo.Upsert(context.Background(), &models.Session{ID: "stale"}))

	svc := NewSessionService(c, repo, testLogger())
	got, err := svc.Refresh(context.Background())

	require.NoError(t, err, "404 on the list endpoint means no sessions, not a failure")
	assert.Empty(t, got)

	mirrored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mirrored, "mirror follows the empty snapshot")
}

func TestRefreshFallsBackToMirrorWhenOffline(t *testing.T) {
	c := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return nil, client.ErrUnavailable
		},
	}
	repo := newFakeSessionsRepo()
	cached := sessionFixture("s1", models.StatusScheduled)
	require.NoError(t, repo.Upsert(context.Background(), &cached))

	svc := NewSessionService(c, repo, testLogger())
	got, err := svc.Refresh(context.Background())

	require.ErrorIs(t, err, client.ErrUnavailable)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestGetPrefersCache(t *testing.T) {
	calls := 0
	c := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return []models.Session{sessionFixture("s1", models.StatusScheduled)}, nil
		},
		GetSessionFunc: func(ctx context.Context, id string) (*models.Session, error) {
			calls++
			s := sessionFixture(id, models.StatusScheduled)
			return &s, nil
		},
	}
	svc := NewSessionService(c, newFakeSessionsRepo(), testLogger())
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Zero(t, calls, "cached record must not trigger a fetch")

	got, err = svc.Get(context.Background(), "s9")
	require.NoError(t, err)
	assert.Equal(t, "s9", got.ID)
	assert.Equal(t, 1, calls)
}

func TestUpcomingFilterAndOrder(t *testing.T) {
	a := sessionFixture("a", models.StatusScheduled)
	a.DateTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	b := sessionFixture("b", models.StatusActive)
	b.DateTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	c := sessionFixture("c", models.StatusUpcoming)
	c.DateTime = time.Date(2026, 3, 3, 10, 0, 0, 0, time.Local)
	d := sessionFixture("d", models.StatusCancelled)
	e := sessionFixture("e", models.StatusCompleted)

	fc := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return []models.Session{a, b, c, d, e}, nil
		},
	}
	svc := NewSessionService(fc, newFakeSessionsRepo(), testLogger())
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	up := svc.Upcoming()
	require.Len(t, up, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{up[0].ID, up[1].ID, up[2].ID})
}

func TestCompletedPerViewer(t *testing.T) {
	fc := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return []models.Session{
				sessionFixture("done", models.StatusCompleted),
				sessionFixture("room", models.StatusRoomCompleted),
				sessionFixture("open", models.StatusScheduled),
			}, nil
		},
	}
	svc := NewSessionService(fc, newFakeSessionsRepo(), testLogger())
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Len(t, svc.Completed(models.RoleStudent), 1, "students only count fully completed sessions")
	assert.Len(t, svc.Completed(models.RoleTutor), 2, "tutors also count room-exit sessions")
}

func TestStatsFold(t *testing.T) {
	s1 := sessionFixture("s1", models.StatusCompleted)
	s1.Duration = 90
	s1.Rating = 5
	s2 := sessionFixture("s2", models.StatusCompleted)
	s2.Duration = 0 // missing duration counts as zero hours
	s2.Rating = 0   // unrated, excluded from the average
	s2.TutorID = "21"
	s3 := sessionFixture("s3", models.StatusScheduled)
	s3.TutorID = "20"

	fc := &fakeClient{
		ListSessionsFunc: func(ctx context.Context) ([]models.Session, error) {
			return []models.Session{s1, s2, s3}, nil
		},
	}
	svc := NewSessionService(fc, newFakeSessionsRepo(), testLogger())
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	stats := svc.Stats(models.RoleStudent)
	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.CompletedSessions)
	assert.InDelta(t, 1.5, stats.TotalHours, 1e-9)
	assert.Equal(t, 2, stats.UniqueCounterparts)
	assert.InDelta(t, 5.0, stats.AverageRating, 1e-9)
}

func TestPutAndRemoveKeepMirrorInSync(t *testing.T) {
	repo := newFakeSessionsRepo()
	svc := NewSessionService(&fakeClient{}, repo, testLogger())

	s := sessionFixture("s1", models.StatusScheduled)
	svc.Put(context.Background(), &s)

	got, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, got.Status)

	svc.Remove(context.Background(), "s1")
	_, err = repo.GetByID(context.Background(), "s1")
	assert.Error(t, err)
	assert.Empty(t, svc.Cached())
}
