package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

type lifecycleHarness struct {
	client *fakeClient
	store  SessionService
	svc    *lifecycleService
}

func newLifecycleHarness(t *testing.T, role models.Role, seed ...models.Session) *lifecycleHarness {
	t.Helper()
	c := &fakeClient{
		ReplaceSessionFunc: func(ctx context.Context, s models.Session) (*models.Session, error) {
			cp := s
			return &cp, nil
		},
	}
	store := NewSessionService(c, newFakeSessionsRepo(), testLogger())
	for i := range seed {
		store.Put(context.Background(), &seed[i])
	}
	auth := &fakeAuth{id: Identity{
		Authenticated: true,
		Role:          role,
		User:          &models.User{ID: 10, Name: "Actor", Role: role},
	}}
	svc := NewLifecycleService(c, store, auth, NewCalculator(testLogger()), testLogger()).(*lifecycleService)
	return &lifecycleHarness{client: c, store: store, svc: svc}
}

func TestCanTransitionTable(t *testing.T) {
	tests := []struct {
		name  string
		from  models.SessionStatus
		to    models.SessionStatus
		actor models.Role
		want  bool
	}{
		{"tutor starts scheduled", models.StatusScheduled, models.StatusActive, models.RoleTutor, true},
		{"tutor starts upcoming", models.StatusUpcoming, models.StatusActive, models.RoleTutor, true},
		{"student cannot start", models.StatusScheduled, models.StatusActive, models.RoleStudent, false},
		{"start from completed", models.StatusCompleted, models.StatusActive, models.RoleTutor, false},
		{"cancel scheduled", models.StatusScheduled, models.StatusCancelled, models.RoleStudent, true},
		{"cancel active", models.StatusActive, models.StatusCancelled, models.RoleTutor, true},
		{"cancel completed", models.StatusCompleted, models.StatusCancelled, models.RoleStudent, false},
		{"cancel cancelled", models.StatusCancelled, models.StatusCancelled, models.RoleStudent, false},
		{"end active room", models.StatusActive, models.StatusRoomCompleted, models.RoleTutor, true},
		{"end scheduled room", models.StatusScheduled, models.StatusRoomCompleted, models.RoleTutor, false},
		{"student rates room_completed", models.StatusRoomCompleted, models.StatusCompleted, models.RoleStudent, true},
		{"student amends completed", models.StatusCompleted, models.StatusCompleted, models.RoleStudent, true},
		{"tutor cannot complete", models.StatusRoomCompleted, models.StatusCompleted, models.RoleTutor, false},
		{"complete from active", models.StatusActive, models.StatusCompleted, models.RoleStudent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canTransition(tt.from, tt.to, tt.actor))
		})
	}
}

func TestBookCreatesScheduledSession(t *testing.T) {
	h := newLifecycleHarness(t, models.RoleStudent)
	var sent models.Session
	h.client.CreateSessionFunc = func(ctx context.Context, s models.Session) (*models.Session, error) {
		sent = s
		cp := s
		cp.ID = "srv-1"
		return &cp, nil
	}

	got, err := h.svc.Book(context.Background(), BookingRequest{
		TutorID:    20,
		TutorName:  "T",
		HourlyRate: decimal.NewFromInt(69),
		Subject:    "Math",
		Topic:      "Algebra",
		Date:       "2026-09-15",
		Time:       "14:30",
		Duration:   "2 hours",
		Type:       "Online",
	})

	require.NoError(t, err)
	assert.Equal(t, "srv-1", got.ID)
	assert.Equal(t, models.StatusScheduled, sent.Status)
	assert.Equal(t, "10", sent.StudentID)
	assert.Equal(t, "20", sent.TutorID)
	assert.Equal(t, 120, sent.Duration)
	require.NotNil(t, sent.Price)
	// 69 * 2 plus the 10% platform fee.
	assert.Equal(t, "151.8", sent.Price.String())

	cached, err := h.store.Get(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, cached.Status)
}

func TestBookRejectsTutor(t *testing.T) {
	h := newLifecycleHarness(t, models.RoleTutor)
	_, err := h.svc.Book(context.Background(), BookingRequest{})
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestBookValidatesInput(t *testing.T) {
	h := newLifecycleHarness(t, models.RoleStudent)
	networkCalled := false
	h.client.CreateSessionFunc = func(ctx context.Context, s models.Session) (*models.Session, error) {
		networkCalled = true
		return &s, nil
	}

	_, err := h.svc.Book(context.Background(), BookingRequest{
		TutorID:   20,
		TutorName: "T",
		Subject:   "Math",
		Date:      "15-09-2026", // wrong format
		Time:      "14:30",
		Duration:  "1 hour",
	})

	require.Error(t, err)
	assert.False(t, networkCalled)
}

func TestStartSameDaySession(t *testing.T) {
	sess := sessionFixture("s1", models.StatusScheduled)
	sess.DateTime = time.Date(2026, 9, 15, 18, 0, 0, 0, time.Local)
	h := newLifecycleHarness(t, models.RoleTutor, sess)
	h.svc.now = func() time.Time {
		return time.Date(2026, 9, 15, 9, 0, 0, 0, time.Local)
	}

	got, err := h.svc.Start(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
}

func TestStartRejectsFutureDay(t *testing.T) {
	sess := sessionFixture("s1", models.StatusScheduled)
	sess.DateTime = time.Date(2026, 9, 16, 9, 0, 0, 0, time.Local)
	h := newLifecycleHarness(t, models.RoleTutor, sess)
	h.svc.now = func() time.Time {
		return time.Date(2026, 9, 15, 23, 0, 0, 0, time.Local)
	}

	_, err := h.svc.Start(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNotStartable)
}

func TestStartActiveIsNoOp(t *testing.T) {
	sess := sessionFixture("s1", models.StatusActive)
	h := newLifecycleHarness(t, models.RoleTutor, sess)
	replaced := false
	h.client.ReplaceSessionFunc = func(ctx context.Context, s models.Session) (*models.Session, error) {
		replaced = true
		return &s, nil
	}

	got, err := h.svc.Start(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.False(t, replaced)
}

func TestCancelIsIdempotent(t *testing.T) {
	sess := sessionFixture("s1", models.StatusCancelled)
	h := newLifecycleHarness(t, models.RoleStudent, sess)
	replaced := false
	h.client.ReplaceSessionFunc = func(ctx context.Context, s models.Session) (*models.Session, error) {
		replaced = true
		return &s, nil
	}

	got, err := h.svc.Cancel(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.False(t, replaced, "cancelling a cancelled session must not hit the network")
}

func TestCancelCompletedFails(t *testing.T) {
	sess := sessionFixture("s1", models.StatusCompleted)
	h := newLifecycleHarness(t, models.RoleStudent, sess)

	_, err := h.svc.Cancel(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReplaceSendsCompleteRecord(t *testing.T) {
	sess := sessionFixture("s1", models.StatusScheduled)
	sess.Topic = "Algebra"
	sess.Notes = "bring homework"
	h := newLifecycleHarness(t, models.RoleStudent, sess)

	var sent models.Session
	h.client.ReplaceSessionFunc = func(ctx context.Context, s models.Session) (*models.Session, error) {
		sent = s
		cp := s
		return &cp, nil
	}

	_, err := h.svc.Cancel(context.Background(), "s1")
	require.NoError(t, err)

	// Every field of the original record survives the status change.
	assert.Equal(t, "s1", sent.ID)
	assert.Equal(t, "10", sent.StudentID)
	assert.Equal(t, "20", sent.TutorID)
	assert.Equal(t, "Math", sent.Subject)
	assert.Equal(t, "Algebra", sent.Topic)
	assert.Equal(t, "bring homework", sent.Notes)
	assert.Equal(t, 60, sent.Duration)
	assert.Equal(t, models.StatusCancelled, sent.Status)
}

func TestReplaceRejectsIncompleteRecord(t *testing.T) {
	sess := sessionFixture("s1", models.StatusScheduled)
	sess.Subject = "" // incomplete record in the cache
	h := newLifecycleHarness(t, models.RoleStudent, sess)
	networkCalled := false
	h.client.ReplaceSessionFunc = func(ctx context.Context, s models.Session) (*models.Session, error) {
		networkCalled = true
		return &s, nil
	}

	_, err := h.svc.Cancel(context.Background(), "s1")
	require.ErrorIs(t, err, ErrPartialUpdate)
	assert.False(t, networkCalled, "an incomplete record must never reach the replace endpoint")
}

func TestDeleteScheduledOnly(t *testing.T) {
	scheduled := sessionFixture("s1", models.StatusScheduled)
	active := sessionFixture("s2", models.StatusActive)
	h := newLifecycleHarness(t, models.RoleStudent, scheduled, active)
	deleted := ""
	h.client.DeleteSessionFunc = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}

	require.NoError(t, h.svc.DeleteScheduled(context.Background(), "s1"))
	assert.Equal(t, "s1", deleted)
	assert.Len(t, h.store.Cached(), 1)

	err := h.svc.DeleteScheduled(context.Background(), "s2")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEndRoomCreditsTutor(t *testing.T) {
	sess := sessionFixture("s1", models.StatusActive)
	h := newLifecycleHarness(t, models.RoleTutor, sess)

	res, err := h.svc.EndRoom(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRoomCompleted, res.Session.Status)
	assert.True(t, res.CompensationCredited)
}

func TestEndRoomStudentNoCredit(t *testing.T) {
	sess := sessionFixture("s1", models.StatusActive)
	h := newLifecycleHarness(t, models.RoleStudent, sess)

	res, err := h.svc.EndRoom(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRoomCompleted, res.Session.Status)
	assert.False(t, res.CompensationCredited)
}

func TestRateFinalizesSession(t *testing.T) {
	sess := sessionFixture("s1", models.StatusRoomCompleted)
	h := newLifecycleHarness(t, models.RoleStudent, sess)

	got, err := h.svc.Rate(context.Background(), "s1", 5, "great lesson")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "great lesson", got.Feedback)
}

func TestRateValidatesRange(t *testing.T) {
	sess := sessionFixture("s1", models.StatusRoomCompleted)
	h := newLifecycleHarness(t, models.RoleStudent, sess)

	_, err := h.svc.Rate(context.Background(), "s1", 0, "")
	require.Error(t, err)
	_, err = h.svc.Rate(context.Background(), "s1", 6, "")
	require.Error(t, err)
}

func TestRateByTutorRejected(t *testing.T) {
	sess := sessionFixture("s1", models.StatusRoomCompleted)
	h := newLifecycleHarness(t, models.RoleTutor, sess)

	_, err := h.svc.Rate(context.Background(), "s1", 4, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
